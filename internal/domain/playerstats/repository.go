package playerstats

import "context"

// Repository describes player statistics persistence needs from use cases.
type Repository interface {
	UpsertBulk(ctx context.Context, stats []GameStats) (int, error)
}
