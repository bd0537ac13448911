package standing

import "context"

// Repository describes standings persistence needs from use cases.
type Repository interface {
	UpsertBulk(ctx context.Context, standings []Standing) (int, error)
}
