// Package cache decorates domain repositories with an in-process TTL cache.
// The composite ingestion loads re-read the same seed lists between runs;
// caching them keeps dependent pipelines off the database. Writes invalidate
// so a fresh team or roster load is visible to the next run.
package cache

import (
	"context"

	"github.com/courtside/nba-stats-api/internal/domain/player"
	"github.com/courtside/nba-stats-api/internal/domain/team"
	basecache "github.com/courtside/nba-stats-api/internal/platform/cache"
)

const (
	teamSeedsKey   = "team:nba-franchises"
	playerSeedsKey = "player:seeds"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) UpsertBulk(ctx context.Context, teams []team.Team, leagues []team.TeamLeague) (int, error) {
	n, err := r.next.UpsertBulk(ctx, teams, leagues)
	if err == nil && n > 0 {
		r.cache.Delete(ctx, teamSeedsKey)
	}
	return n, err
}

func (r *TeamRepository) ListNBAFranchises(ctx context.Context) ([]team.Seed, error) {
	v, err := r.cache.GetOrLoad(ctx, teamSeedsKey, func(ctx context.Context) (any, error) {
		seeds, err := r.next.ListNBAFranchises(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Seed(nil), seeds...), nil
	})
	if err != nil {
		return nil, err
	}

	seeds, _ := v.([]team.Seed)
	return append([]team.Seed(nil), seeds...), nil
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) UpsertBulk(ctx context.Context, players []player.Player, leagues []player.PlayerLeague) (int, error) {
	n, err := r.next.UpsertBulk(ctx, players, leagues)
	if err == nil && n > 0 {
		r.cache.Delete(ctx, playerSeedsKey)
	}
	return n, err
}

func (r *PlayerRepository) ListSeeds(ctx context.Context) ([]player.Seed, error) {
	v, err := r.cache.GetOrLoad(ctx, playerSeedsKey, func(ctx context.Context) (any, error) {
		seeds, err := r.next.ListSeeds(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Seed(nil), seeds...), nil
	})
	if err != nil {
		return nil, err
	}

	seeds, _ := v.([]player.Seed)
	return append([]player.Seed(nil), seeds...), nil
}
