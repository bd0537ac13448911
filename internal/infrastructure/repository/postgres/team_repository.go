package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtside/nba-stats-api/internal/domain/team"
	qb "github.com/courtside/nba-stats-api/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// UpsertBulk stores teams and their league links in one transaction so a
// failed link write never leaves half a run behind.
func (r *TeamRepository) UpsertBulk(ctx context.Context, teams []team.Team, leagues []team.TeamLeague) (int, error) {
	if len(teams) == 0 && len(leagues) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx upsert teams: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	if len(teams) > 0 {
		rows := make([]teamRowModel, 0, len(teams))
		for _, item := range teams {
			rows = append(rows, teamRowModel{
				SourceID:       item.SourceID,
				Name:           item.Name,
				Nickname:       nullableString(item.Nickname),
				Code:           nullableString(item.Code),
				City:           nullableString(item.City),
				LogoURL:        nullableString(item.LogoURL),
				IsNBAFranchise: item.IsNBAFranchise,
				IsAllStar:      item.IsAllStar,
				PayloadHash:    item.PayloadHash,
				IsActive:       item.IsActive,
				IngestedAt:     now,
				UpdatedAt:      now,
			})
		}
		if err := upsertBulk(ctx, tx, "teams", rows, []string{"source_id"}, hashGuard("teams")); err != nil {
			return 0, err
		}
	}

	if len(leagues) > 0 {
		rows := make([]teamLeagueRowModel, 0, len(leagues))
		for _, item := range leagues {
			rows = append(rows, teamLeagueRowModel{
				TeamID:      item.TeamID,
				LeagueName:  item.LeagueName,
				Conference:  nullableString(item.Conference),
				Division:    nullableString(item.Division),
				PayloadHash: item.PayloadHash,
				IsActive:    item.IsActive,
				IngestedAt:  now,
				UpdatedAt:   now,
			})
		}
		if err := upsertBulk(ctx, tx, "team_leagues", rows, []string{"team_id", "league_name"}, hashGuard("team_leagues")); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert teams tx: %w", err)
	}
	return len(teams), nil
}

func (r *TeamRepository) ListNBAFranchises(ctx context.Context) ([]team.Seed, error) {
	query, args, err := qb.Select("source_id", "name").From("teams").
		Where(qb.Expr("is_nba_franchise = TRUE")).
		OrderBy("source_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select franchise teams query: %w", err)
	}

	var rows []teamSeedRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select franchise teams: %w", err)
	}

	out := make([]team.Seed, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Seed{SourceID: row.SourceID, Name: row.Name})
	}
	return out, nil
}

type teamRowModel struct {
	SourceID       int64          `db:"source_id"`
	Name           string         `db:"name"`
	Nickname       sql.NullString `db:"nickname"`
	Code           sql.NullString `db:"code"`
	City           sql.NullString `db:"city"`
	LogoURL        sql.NullString `db:"logo_url"`
	IsNBAFranchise bool           `db:"is_nba_franchise"`
	IsAllStar      bool           `db:"is_all_star"`
	PayloadHash    string         `db:"payload_hash"`
	IsActive       bool           `db:"is_active"`
	IngestedAt     time.Time      `db:"ingested_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type teamLeagueRowModel struct {
	TeamID      int64          `db:"team_id"`
	LeagueName  string         `db:"league_name"`
	Conference  sql.NullString `db:"conference"`
	Division    sql.NullString `db:"division"`
	PayloadHash string         `db:"payload_hash"`
	IsActive    bool           `db:"is_active"`
	IngestedAt  time.Time      `db:"ingested_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type teamSeedRowModel struct {
	SourceID int64  `db:"source_id"`
	Name     string `db:"name"`
}
