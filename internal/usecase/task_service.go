package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/courtside/nba-stats-api/internal/domain/ingestion"
	"github.com/courtside/nba-stats-api/internal/platform/logging"
)

// Composite task names, also the path segments of the admin trigger routes.
const (
	TaskInitialLoad    = "initial_load"
	TaskPlayerLoad     = "player_load"
	TaskHistoricalLoad = "historical_load"
	TaskDailyUpdate    = "daily_update"
)

// TaskService sequences the per-entity ingestion runs into the composite
// loads exposed to operators, either inline or on a background worker pool.
type TaskService struct {
	ingestion *IngestionService
	pool      *ants.Pool
	logger    *logging.Logger
	leagueID  int64
	now       func() time.Time
}

func NewTaskService(svc *IngestionService, pool *ants.Pool, leagueID int64, logger *logging.Logger) *TaskService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TaskService{
		ingestion: svc,
		pool:      pool,
		logger:    logger,
		leagueID:  leagueID,
		now:       time.Now,
	}
}

// CurrentSeason returns the start year of the NBA season covering the given
// moment. Seasons start in October, so January through September still belong
// to the season that started the previous year.
func CurrentSeason(at time.Time) int {
	if at.Month() >= time.October {
		return at.Year()
	}
	return at.Year() - 1
}

// RunInitialLoad ingests the static catalog: seasons, leagues, teams and the
// current season's rosters, in dependency order.
func (t *TaskService) RunInitialLoad(ctx context.Context) ingestion.TaskReport {
	ctx, span := startUsecaseSpan(ctx, "TaskService.RunInitialLoad")
	defer span.End()

	return t.runTask(ctx, TaskInitialLoad, func(ctx context.Context) []ingestion.RunSummary {
		seasonYear := CurrentSeason(t.now())
		return []ingestion.RunSummary{
			t.ingestion.IngestSeasons(ctx),
			t.ingestion.IngestLeagues(ctx),
			t.ingestion.IngestTeams(ctx),
			t.ingestion.IngestPlayers(ctx, seasonYear),
		}
	})
}

// RunPlayerLoad refreshes the rosters for one season.
func (t *TaskService) RunPlayerLoad(ctx context.Context, seasonYear int) ingestion.TaskReport {
	ctx, span := startUsecaseSpan(ctx, "TaskService.RunPlayerLoad")
	defer span.End()

	return t.runTask(ctx, TaskPlayerLoad, func(ctx context.Context) []ingestion.RunSummary {
		return []ingestion.RunSummary{
			t.ingestion.IngestPlayers(ctx, seasonYear),
		}
	})
}

// RunHistoricalLoad backfills one full season: team totals, rosters, player
// box scores, the day-by-day game log and the final standings.
func (t *TaskService) RunHistoricalLoad(ctx context.Context, seasonYear int) ingestion.TaskReport {
	ctx, span := startUsecaseSpan(ctx, "TaskService.RunHistoricalLoad")
	defer span.End()

	return t.runTask(ctx, TaskHistoricalLoad, func(ctx context.Context) []ingestion.RunSummary {
		return []ingestion.RunSummary{
			t.ingestion.IngestTeamSeasonStatistics(ctx, seasonYear),
			t.ingestion.IngestPlayers(ctx, seasonYear),
			t.ingestion.IngestPlayerStatistics(ctx, seasonYear),
			t.ingestion.IngestGamesBySeason(ctx, seasonYear),
			t.ingestion.IngestStandings(ctx, t.leagueID, seasonYear),
		}
	})
}

// RunDailyUpdate ingests yesterday's games with their box scores and
// refreshes the current standings.
func (t *TaskService) RunDailyUpdate(ctx context.Context) ingestion.TaskReport {
	ctx, span := startUsecaseSpan(ctx, "TaskService.RunDailyUpdate")
	defer span.End()

	return t.runTask(ctx, TaskDailyUpdate, func(ctx context.Context) []ingestion.RunSummary {
		yesterday := t.now().UTC().AddDate(0, 0, -1)
		seasonYear := CurrentSeason(yesterday)
		return []ingestion.RunSummary{
			t.ingestion.IngestGamesByDate(ctx, yesterday.Format(gameDateLayout)),
			t.ingestion.IngestStandings(ctx, t.leagueID, seasonYear),
		}
	})
}

func (t *TaskService) runTask(ctx context.Context, task string, runs func(ctx context.Context) []ingestion.RunSummary) ingestion.TaskReport {
	startedAt := t.now().UTC()
	t.logger.InfoContext(ctx, "ingestion task started", "task", task)

	report := ingestion.TaskReport{Task: task, StartedAt: startedAt}
	if err := ctx.Err(); err != nil {
		report.Status = ingestion.TaskStatusFailed
		report.DurationSeconds = t.now().UTC().Sub(startedAt).Seconds()
		t.logger.ErrorContext(ctx, "ingestion task aborted", "task", task, "error", err)
		return report
	}

	report.Runs = runs(ctx)
	report.Status = ingestion.Aggregate(report.Runs)
	if ctx.Err() != nil {
		report.Status = ingestion.TaskStatusFailed
	}
	report.DurationSeconds = t.now().UTC().Sub(startedAt).Seconds()

	t.logger.InfoContext(ctx, "ingestion task finished",
		"task", task, "status", report.Status, "duration_seconds", report.DurationSeconds)
	return report
}

// dispatch hands a task to the worker pool. The task keeps the caller's trace
// and values but outlives the triggering request.
func (t *TaskService) dispatch(ctx context.Context, task string, run func(ctx context.Context)) error {
	detached := context.WithoutCancel(ctx)
	err := t.pool.Submit(func() {
		run(detached)
	})
	if err != nil {
		return errors.Wrapf(err, "dispatching %s", task)
	}
	t.logger.InfoContext(ctx, "ingestion task dispatched", "task", task)
	return nil
}

func (t *TaskService) DispatchInitialLoad(ctx context.Context) error {
	return t.dispatch(ctx, TaskInitialLoad, func(ctx context.Context) {
		t.RunInitialLoad(ctx)
	})
}

func (t *TaskService) DispatchPlayerLoad(ctx context.Context, seasonYear int) error {
	return t.dispatch(ctx, TaskPlayerLoad, func(ctx context.Context) {
		t.RunPlayerLoad(ctx, seasonYear)
	})
}

func (t *TaskService) DispatchHistoricalLoad(ctx context.Context, seasonYear int) error {
	return t.dispatch(ctx, TaskHistoricalLoad, func(ctx context.Context) {
		t.RunHistoricalLoad(ctx, seasonYear)
	})
}

func (t *TaskService) DispatchDailyUpdate(ctx context.Context) error {
	return t.dispatch(ctx, TaskDailyUpdate, func(ctx context.Context) {
		t.RunDailyUpdate(ctx)
	})
}
