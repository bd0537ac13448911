package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/nba-stats-api/internal/domain/player"
	qb "github.com/courtside/nba-stats-api/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// UpsertBulk stores players and their league links in one transaction.
func (r *PlayerRepository) UpsertBulk(ctx context.Context, players []player.Player, leagues []player.PlayerLeague) (int, error) {
	if len(players) == 0 && len(leagues) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx upsert players: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	if len(players) > 0 {
		rows := make([]playerRowModel, 0, len(players))
		for _, item := range players {
			rows = append(rows, playerRowModel{
				SourceID:        item.SourceID,
				FirstName:       item.FirstName,
				LastName:        item.LastName,
				BirthDate:       item.BirthDate,
				BirthCountry:    nullableString(item.BirthCountry),
				NBAStartYear:    nullableInt(item.NBAStartYear),
				YearsPro:        nullableInt(item.YearsPro),
				HeightMeters:    nullableString(item.HeightMeters),
				WeightKilograms: nullableString(item.WeightKilograms),
				College:         nullableString(item.College),
				Affiliation:     nullableString(item.Affiliation),
				PayloadHash:     item.PayloadHash,
				IsActive:        item.IsActive,
				IngestedAt:      now,
				UpdatedAt:       now,
			})
		}
		if err := upsertBulk(ctx, tx, "players", rows, []string{"source_id"}, hashGuard("players")); err != nil {
			return 0, err
		}
	}

	if len(leagues) > 0 {
		rows := make([]playerLeagueRowModel, 0, len(leagues))
		for _, item := range leagues {
			rows = append(rows, playerLeagueRowModel{
				PlayerID:    item.PlayerID,
				LeagueName:  item.LeagueName,
				Jersey:      nullableInt(item.Jersey),
				Position:    nullableString(item.Position),
				Active:      item.Active,
				PayloadHash: item.PayloadHash,
				IsActive:    item.IsActive,
				IngestedAt:  now,
				UpdatedAt:   now,
			})
		}
		if err := upsertBulk(ctx, tx, "player_leagues", rows, []string{"player_id", "league_name"}, hashGuard("player_leagues")); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert players tx: %w", err)
	}
	return len(players), nil
}

func (r *PlayerRepository) ListSeeds(ctx context.Context) ([]player.Seed, error) {
	query, args, err := qb.Select("source_id").From("players").OrderBy("source_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player seeds query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select player seeds: %w", err)
	}

	out := make([]player.Seed, 0, len(ids))
	for _, id := range ids {
		out = append(out, player.Seed{SourceID: id})
	}
	return out, nil
}

func nullableInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

type playerRowModel struct {
	SourceID        int64          `db:"source_id"`
	FirstName       string         `db:"first_name"`
	LastName        string         `db:"last_name"`
	BirthDate       *time.Time     `db:"birth_date"`
	BirthCountry    sql.NullString `db:"birth_country"`
	NBAStartYear    sql.NullInt64  `db:"nba_start_year"`
	YearsPro        sql.NullInt64  `db:"years_pro"`
	HeightMeters    sql.NullString `db:"height_meters"`
	WeightKilograms sql.NullString `db:"weight_kilograms"`
	College         sql.NullString `db:"college"`
	Affiliation     sql.NullString `db:"affiliation"`
	PayloadHash     string         `db:"payload_hash"`
	IsActive        bool           `db:"is_active"`
	IngestedAt      time.Time      `db:"ingested_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type playerLeagueRowModel struct {
	PlayerID    int64          `db:"player_id"`
	LeagueName  string         `db:"league_name"`
	Jersey      sql.NullInt64  `db:"jersey"`
	Position    sql.NullString `db:"position"`
	Active      bool           `db:"active"`
	PayloadHash string         `db:"payload_hash"`
	IsActive    bool           `db:"is_active"`
	IngestedAt  time.Time      `db:"ingested_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
