package cache

import (
	"context"
	"testing"
	"time"

	"github.com/courtside/nba-stats-api/internal/domain/team"
	basecache "github.com/courtside/nba-stats-api/internal/platform/cache"
)

type stubTeamRepo struct {
	seeds     []team.Seed
	listCalls int
}

func (s *stubTeamRepo) UpsertBulk(_ context.Context, teams []team.Team, _ []team.TeamLeague) (int, error) {
	return len(teams), nil
}

func (s *stubTeamRepo) ListNBAFranchises(_ context.Context) ([]team.Seed, error) {
	s.listCalls++
	return s.seeds, nil
}

func TestTeamRepository_CachesSeedList(t *testing.T) {
	stub := &stubTeamRepo{seeds: []team.Seed{{SourceID: 1, Name: "Atlanta Hawks"}}}
	repo := NewTeamRepository(stub, basecache.NewStore(time.Minute))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		seeds, err := repo.ListNBAFranchises(ctx)
		if err != nil {
			t.Fatalf("list franchises: %v", err)
		}
		if len(seeds) != 1 || seeds[0].SourceID != 1 {
			t.Fatalf("unexpected seeds: %+v", seeds)
		}
	}

	if stub.listCalls != 1 {
		t.Fatalf("expected 1 backing call, got %d", stub.listCalls)
	}
}

func TestTeamRepository_UpsertInvalidates(t *testing.T) {
	stub := &stubTeamRepo{seeds: []team.Seed{{SourceID: 1, Name: "Atlanta Hawks"}}}
	repo := NewTeamRepository(stub, basecache.NewStore(time.Minute))

	ctx := context.Background()
	if _, err := repo.ListNBAFranchises(ctx); err != nil {
		t.Fatalf("list franchises: %v", err)
	}

	if _, err := repo.UpsertBulk(ctx, []team.Team{{SourceID: 2, Name: "Boston Celtics"}}, nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	stub.seeds = append(stub.seeds, team.Seed{SourceID: 2, Name: "Boston Celtics"})
	seeds, err := repo.ListNBAFranchises(ctx)
	if err != nil {
		t.Fatalf("list franchises: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("expected refreshed seed list, got %+v", seeds)
	}
	if stub.listCalls != 2 {
		t.Fatalf("expected 2 backing calls, got %d", stub.listCalls)
	}
}
