package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	UpsertBulk(ctx context.Context, seasons []Season) (int, error)
	List(ctx context.Context) ([]int, error)
}
