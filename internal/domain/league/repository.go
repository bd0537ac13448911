package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	UpsertBulk(ctx context.Context, leagues []League) (int, error)
}
