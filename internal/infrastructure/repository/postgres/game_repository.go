package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/nba-stats-api/internal/domain/game"
	"github.com/courtside/nba-stats-api/internal/domain/teamstats"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

// UpsertBulk stores games and their team box scores in one transaction so a
// failed statistics write never leaves a half-written day behind.
func (r *GameRepository) UpsertBulk(ctx context.Context, games []game.Game, stats []teamstats.GameStats) (int, error) {
	if len(games) == 0 && len(stats) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx upsert games: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	if len(games) > 0 {
		rows := make([]gameRowModel, 0, len(games))
		for _, item := range games {
			rows = append(rows, gameRowModel{
				SourceID:      item.SourceID,
				League:        item.League,
				Season:        item.Season,
				GameDate:      item.GameDate,
				Status:        item.Status,
				HomeTeamID:    item.HomeTeamID,
				VisitorTeamID: item.VisitorTeamID,
				HomeScore:     nullableInt(item.HomeScore),
				VisitorScore:  nullableInt(item.VisitorScore),
				ArenaName:     nullableString(item.ArenaName),
				ArenaCity:     nullableString(item.ArenaCity),
				PayloadHash:   item.PayloadHash,
				IsActive:      item.IsActive,
				IngestedAt:    now,
				UpdatedAt:     now,
			})
		}
		if err := upsertBulk(ctx, tx, "games", rows, []string{"source_id"}, hashGuard("games")); err != nil {
			return 0, err
		}
	}

	if len(stats) > 0 {
		rows := teamGameStatsRows(stats, now)
		if err := upsertBulk(ctx, tx, "team_statistics", rows, []string{"game_id", "team_id"}, hashGuard("team_statistics")); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert games tx: %w", err)
	}
	return len(games), nil
}

type gameRowModel struct {
	SourceID      int64          `db:"source_id"`
	League        string         `db:"league"`
	Season        int            `db:"season"`
	GameDate      time.Time      `db:"game_date"`
	Status        string         `db:"status"`
	HomeTeamID    int64          `db:"home_team_id"`
	VisitorTeamID int64          `db:"visitor_team_id"`
	HomeScore     sql.NullInt64  `db:"home_score"`
	VisitorScore  sql.NullInt64  `db:"visitor_score"`
	ArenaName     sql.NullString `db:"arena_name"`
	ArenaCity     sql.NullString `db:"arena_city"`
	PayloadHash   string         `db:"payload_hash"`
	IsActive      bool           `db:"is_active"`
	IngestedAt    time.Time      `db:"ingested_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
