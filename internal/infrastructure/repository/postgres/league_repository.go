package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/nba-stats-api/internal/domain/league"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) UpsertBulk(ctx context.Context, leagues []league.League) (int, error) {
	if len(leagues) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]leagueRowModel, 0, len(leagues))
	for _, item := range leagues {
		rows = append(rows, leagueRowModel{
			SourceID:    item.SourceID,
			Name:        item.Name,
			Type:        nullableString(item.Type),
			LogoURL:     nullableString(item.LogoURL),
			PayloadHash: item.PayloadHash,
			IsActive:    item.IsActive,
			IngestedAt:  now,
			UpdatedAt:   now,
		})
	}

	// The league name is the identity. Conflicting on it lets a full league
	// object replace the synthetic id an earlier name-only entry produced.
	if err := upsertBulk(ctx, r.db, "leagues", rows, []string{"name"}, hashGuard("leagues")); err != nil {
		return 0, err
	}
	return len(rows), nil
}

type leagueRowModel struct {
	SourceID    int64          `db:"source_id"`
	Name        string         `db:"name"`
	Type        sql.NullString `db:"type"`
	LogoURL     sql.NullString `db:"logo_url"`
	PayloadHash string         `db:"payload_hash"`
	IsActive    bool           `db:"is_active"`
	IngestedAt  time.Time      `db:"ingested_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
