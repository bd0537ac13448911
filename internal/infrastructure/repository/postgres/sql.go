package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/courtside/nba-stats-api/internal/platform/querybuilder"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

func nullableString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

// hashGuard builds the DO UPDATE filter that skips rows whose provider
// payload did not change since the last run.
func hashGuard(table string) string {
	return table + ".payload_hash IS DISTINCT FROM EXCLUDED.payload_hash"
}

// upsertBulk executes one multi-row ON CONFLICT upsert. models must be a
// non-empty slice of db-tagged structs; callers handle the empty-input
// no-op themselves so counts stay honest.
func upsertBulk(ctx context.Context, ext sqlx.ExtContext, table string, models any, conflict []string, guard string) error {
	query, args, err := qb.UpsertModels(table, models, conflict, guard)
	if err != nil {
		return fmt.Errorf("build upsert %s query: %w", table, err)
	}
	if _, err := ext.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}
