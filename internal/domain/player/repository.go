package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// UpsertBulk stores players and their league links atomically.
	UpsertBulk(ctx context.Context, players []Player, leagues []PlayerLeague) (int, error)
	// ListSeeds returns the persisted players whose game statistics should
	// be ingested.
	ListSeeds(ctx context.Context) ([]Seed, error)
}
