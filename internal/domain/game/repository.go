package game

import (
	"context"

	"github.com/courtside/nba-stats-api/internal/domain/teamstats"
)

// Repository describes game persistence needs from use cases.
type Repository interface {
	// UpsertBulk stores games and the team box scores of the finished ones
	// atomically.
	UpsertBulk(ctx context.Context, games []Game, stats []teamstats.GameStats) (int, error)
}
