package teamstats

import "context"

// Repository describes team statistics persistence needs from use cases.
// Per-game box scores are written through the game repository so they commit
// together with their games.
type Repository interface {
	UpsertSeasonStatsBulk(ctx context.Context, stats []SeasonStats) (int, error)
}
