package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/nba-stats-api/internal/domain/season"
	qb "github.com/courtside/nba-stats-api/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) UpsertBulk(ctx context.Context, seasons []season.Season) (int, error) {
	if len(seasons) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	rows := make([]seasonRowModel, 0, len(seasons))
	for _, item := range seasons {
		rows = append(rows, seasonRowModel{
			Season:      item.Season,
			SourceID:    item.SourceID,
			PayloadHash: item.PayloadHash,
			IsActive:    item.IsActive,
			IngestedAt:  now,
			UpdatedAt:   now,
		})
	}

	if err := upsertBulk(ctx, r.db, "seasons", rows, []string{"season"}, hashGuard("seasons")); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *SeasonRepository) List(ctx context.Context) ([]int, error) {
	query, args, err := qb.Select("season").From("seasons").OrderBy("season").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var out []int
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}
	return out, nil
}

type seasonRowModel struct {
	Season      int       `db:"season"`
	SourceID    int64     `db:"source_id"`
	PayloadHash string    `db:"payload_hash"`
	IsActive    bool      `db:"is_active"`
	IngestedAt  time.Time `db:"ingested_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
