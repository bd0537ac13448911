package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/nba-stats-api/internal/domain/game"
	"github.com/courtside/nba-stats-api/internal/domain/ingestion"
	"github.com/courtside/nba-stats-api/internal/domain/league"
	"github.com/courtside/nba-stats-api/internal/domain/player"
	"github.com/courtside/nba-stats-api/internal/domain/playerstats"
	"github.com/courtside/nba-stats-api/internal/domain/season"
	"github.com/courtside/nba-stats-api/internal/domain/standing"
	"github.com/courtside/nba-stats-api/internal/domain/team"
	"github.com/courtside/nba-stats-api/internal/domain/teamstats"
	"github.com/courtside/nba-stats-api/internal/platform/logging"
)

// StatsGateway fetches raw NBA data from the stats provider. A nil slice with
// a nil error means the provider had no data for the request; gateways retry
// transient failures internally before reporting that.
type StatsGateway interface {
	Seasons(ctx context.Context) ([]int64, error)
	Leagues(ctx context.Context) ([]any, error)
	Teams(ctx context.Context) ([]Record, error)
	TeamStatistics(ctx context.Context, teamID int64, season int) ([]Record, error)
	Players(ctx context.Context, teamID int64, season int) ([]Record, error)
	PlayerStatistics(ctx context.Context, playerID int64, season int) ([]Record, error)
	GamesByDate(ctx context.Context, date string) ([]Record, error)
	GameStatistics(ctx context.Context, gameID int64) ([]Record, error)
	Standings(ctx context.Context, leagueID int64, season int) ([]Record, error)
}

// IngestionService runs the per-entity provider-to-database pipelines.
type IngestionService struct {
	gateway     StatsGateway
	seasons     season.Repository
	leagues     league.Repository
	teams       team.Repository
	players     player.Repository
	games       game.Repository
	standings   standing.Repository
	teamStats   teamstats.Repository
	playerStats playerstats.Repository
	logger      *logging.Logger

	// gameFetchDelay spaces out provider calls during season-long game
	// backfills to stay inside the provider rate limits.
	gameFetchDelay time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
}

type IngestionServiceConfig struct {
	Gateway        StatsGateway
	Seasons        season.Repository
	Leagues        league.Repository
	Teams          team.Repository
	Players        player.Repository
	Games          game.Repository
	Standings      standing.Repository
	TeamStats      teamstats.Repository
	PlayerStats    playerstats.Repository
	Logger         *logging.Logger
	GameFetchDelay time.Duration
}

func NewIngestionService(cfg IngestionServiceConfig) *IngestionService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.GameFetchDelay < 0 {
		cfg.GameFetchDelay = 0
	}

	return &IngestionService{
		gateway:        cfg.Gateway,
		seasons:        cfg.Seasons,
		leagues:        cfg.Leagues,
		teams:          cfg.Teams,
		players:        cfg.Players,
		games:          cfg.Games,
		standings:      cfg.Standings,
		teamStats:      cfg.TeamStats,
		playerStats:    cfg.PlayerStats,
		logger:         logger,
		gameFetchDelay: cfg.GameFetchDelay,
		sleep:          sleepWithContext,
	}
}

// runPipeline is the shared fetch-transform-persist shape every entity run
// follows. fetch returning a nil slice maps to a no_data summary, any error
// maps to failure, and persist decides the processed count.
func runPipeline[R any, T any](
	ctx context.Context,
	logger *logging.Logger,
	source string,
	fetch func(ctx context.Context) ([]R, error),
	transform func(ctx context.Context, items []R) []T,
	persist func(ctx context.Context, rows []T) (int, error),
) ingestion.RunSummary {
	summary := ingestion.RunSummary{Source: source}

	items, err := fetch(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion fetch failed", "source", source, "error", err)
		summary.Status = ingestion.StatusFailure
		summary.Errors = append(summary.Errors, fmt.Sprintf("fetch: %v", err))
		return summary
	}
	if len(items) == 0 {
		logger.InfoContext(ctx, "ingestion found no data", "source", source)
		summary.Status = ingestion.StatusNoData
		return summary
	}

	rows := transform(ctx, items)

	processed, err := persist(ctx, rows)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion persist failed", "source", source, "error", err)
		summary.Status = ingestion.StatusFailure
		summary.Errors = append(summary.Errors, fmt.Sprintf("persist: %v", err))
		return summary
	}

	summary.Status = ingestion.StatusSuccess
	summary.Processed = processed
	logger.InfoContext(ctx, "ingestion run finished", "source", source, "processed", processed)
	return summary
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
