package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	// UpsertBulk stores teams and their league links atomically.
	UpsertBulk(ctx context.Context, teams []Team, leagues []TeamLeague) (int, error)
	// ListNBAFranchises returns persisted franchise teams, the seed list for
	// player and season-statistics ingestion.
	ListNBAFranchises(ctx context.Context) ([]Seed, error)
}
