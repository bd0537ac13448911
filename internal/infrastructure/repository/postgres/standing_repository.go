package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/nba-stats-api/internal/domain/standing"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) UpsertBulk(ctx context.Context, standings []standing.Standing) (int, error) {
	if len(standings) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]standingRowModel, 0, len(standings))
	for _, item := range standings {
		rows = append(rows, standingRowModel{
			LeagueID:            item.LeagueID,
			Season:              item.Season,
			TeamID:              item.TeamID,
			ConferenceName:      nullableString(item.ConferenceName),
			ConferenceRank:      nullableInt(item.ConferenceRank),
			ConferenceWins:      nullableInt(item.ConferenceWins),
			ConferenceLosses:    nullableInt(item.ConferenceLosses),
			DivisionName:        nullableString(item.DivisionName),
			DivisionRank:        nullableInt(item.DivisionRank),
			DivisionGamesBehind: nullableString(item.DivisionGamesBehind),
			Wins:                nullableInt(item.Wins),
			Losses:              nullableInt(item.Losses),
			WinPercentage:       nullableString(item.WinPercentage),
			GamesBehind:         nullableString(item.GamesBehind),
			Streak:              nullableInt(item.Streak),
			WinStreak:           item.WinStreak,
			PayloadHash:         item.PayloadHash,
			IsActive:            item.IsActive,
			IngestedAt:          now,
			UpdatedAt:           now,
		})
	}

	if err := upsertBulk(ctx, r.db, "standings", rows, []string{"league_id", "season", "team_id"}, hashGuard("standings")); err != nil {
		return 0, err
	}
	return len(rows), nil
}

type standingRowModel struct {
	LeagueID            int64          `db:"league_id"`
	Season              int            `db:"season"`
	TeamID              int64          `db:"team_id"`
	ConferenceName      sql.NullString `db:"conference_name"`
	ConferenceRank      sql.NullInt64  `db:"conference_rank"`
	ConferenceWins      sql.NullInt64  `db:"conference_wins"`
	ConferenceLosses    sql.NullInt64  `db:"conference_losses"`
	DivisionName        sql.NullString `db:"division_name"`
	DivisionRank        sql.NullInt64  `db:"division_rank"`
	DivisionGamesBehind sql.NullString `db:"division_games_behind"`
	Wins                sql.NullInt64  `db:"wins"`
	Losses              sql.NullInt64  `db:"losses"`
	WinPercentage       sql.NullString `db:"win_percentage"`
	GamesBehind         sql.NullString `db:"games_behind"`
	Streak              sql.NullInt64  `db:"streak"`
	WinStreak           bool           `db:"win_streak"`
	PayloadHash         string         `db:"payload_hash"`
	IsActive            bool           `db:"is_active"`
	IngestedAt          time.Time      `db:"ingested_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}
