package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/courtside/nba-stats-api/external/apisports"
	"github.com/courtside/nba-stats-api/internal/config"
	"github.com/courtside/nba-stats-api/internal/infrastructure/mail"
	cacherepo "github.com/courtside/nba-stats-api/internal/infrastructure/repository/cache"
	"github.com/courtside/nba-stats-api/internal/infrastructure/repository/postgres"
	"github.com/courtside/nba-stats-api/internal/infrastructure/token"
	"github.com/courtside/nba-stats-api/internal/interfaces/httpapi"
	"github.com/courtside/nba-stats-api/internal/platform/cache"
	"github.com/courtside/nba-stats-api/internal/platform/logging"
	"github.com/courtside/nba-stats-api/internal/platform/resilience"
	"github.com/courtside/nba-stats-api/internal/usecase"
)

// App owns the long-lived resources: the database handle, the ingestion
// worker pool, the cron scheduler and the HTTP server.
type App struct {
	Server *http.Server

	cfg    config.Config
	logger *logging.Logger
	db     *sqlx.DB
	pool   *ants.Pool
	cron   *cron.Cron
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	userRepo := postgres.NewUserRepository(db)
	seasonRepo := postgres.NewSeasonRepository(db)
	leagueRepo := postgres.NewLeagueRepository(db)

	// Seed lists drive dependent ingestion pipelines; cache them briefly so
	// composite loads don't re-read them per run.
	seedCache := cache.NewStore(5 * time.Minute)
	teamRepo := cacherepo.NewTeamRepository(postgres.NewTeamRepository(db), seedCache)
	playerRepo := cacherepo.NewPlayerRepository(postgres.NewPlayerRepository(db), seedCache)
	gameRepo := postgres.NewGameRepository(db)
	standingRepo := postgres.NewStandingRepository(db)
	teamStatsRepo := postgres.NewTeamStatsRepository(db)
	playerStatsRepo := postgres.NewPlayerStatsRepository(db)

	tokenManager := token.NewManager(token.ManagerConfig{
		Secret:          cfg.JWTSecret,
		Issuer:          cfg.ServiceName,
		AccessTTL:       cfg.AccessTokenTTL,
		VerificationTTL: cfg.EmailVerificationTokenTTL,
		ResetTTL:        cfg.PasswordResetTokenTTL,
	})

	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
		BaseURL:  cfg.AppBaseURL,
	}, logger)

	authSvc := usecase.NewAuthService(usecase.AuthServiceConfig{
		Users:           userRepo,
		Tokens:          tokenManager,
		Mailer:          mailer,
		Logger:          logger,
		VerificationTTL: cfg.EmailVerificationTokenTTL,
		ResetTTL:        cfg.PasswordResetTokenTTL,
	})
	userSvc := usecase.NewUserService(userRepo)

	statsClient := apisports.NewClient(apisports.ClientConfig{
		Host:    cfg.NBAAPIHost,
		APIKey:  cfg.NBAAPIKey,
		Timeout: cfg.NBAAPITimeout,
		Retry: apisports.RetryConfig{
			MaxAttempts: cfg.NBAAPIMaxAttempts,
			Delay:       cfg.NBAAPIRetryDelay,
			Jitter:      cfg.NBAAPIRetryJitter,
		},
		Logger: logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NBAAPICircuitEnabled,
			FailureThreshold: cfg.NBAAPICircuitFailureCount,
			OpenTimeout:      cfg.NBAAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NBAAPICircuitHalfOpenReq,
		},
	})

	ingestionSvc := usecase.NewIngestionService(usecase.IngestionServiceConfig{
		Gateway:        statsClient,
		Seasons:        seasonRepo,
		Leagues:        leagueRepo,
		Teams:          teamRepo,
		Players:        playerRepo,
		Games:          gameRepo,
		Standings:      standingRepo,
		TeamStats:      teamStatsRepo,
		PlayerStats:    playerStatsRepo,
		Logger:         logger,
		GameFetchDelay: cfg.GameFetchDelay,
	})

	workers := cfg.IngestionWorkers
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(false))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	taskSvc := usecase.NewTaskService(ingestionSvc, pool, cfg.NBALeagueID, logger)

	handler := httpapi.NewHandler(authSvc, userSvc, taskSvc, ingestionSvc, db, logger)
	router := httpapi.NewRouter(handler, tokenManager, logger, cfg.CORSAllowedOrigins)

	app := &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cfg:    cfg,
		logger: logger,
		db:     db,
		pool:   pool,
	}

	if cfg.DailyCronEnabled {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.DailyCronSchedule, func() {
			if err := taskSvc.DispatchDailyUpdate(context.Background()); err != nil {
				logger.Error("scheduled daily update dispatch failed", "error", err)
			}
		})
		if err != nil {
			pool.Release()
			_ = db.Close()
			return nil, fmt.Errorf("register daily cron %q: %w", cfg.DailyCronSchedule, err)
		}
		app.cron = scheduler
	}

	return app, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Start begins the cron scheduler. The HTTP server is started by the caller
// so it can own ListenAndServe error handling.
func (a *App) Start() {
	if a.cron != nil {
		a.logger.Info("daily cron enabled", "schedule", a.cfg.DailyCronSchedule)
		a.cron.Start()
	}
}

// Shutdown stops the scheduler, drains the worker pool, shuts the HTTP
// server down and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	if a.cron != nil {
		cronCtx := a.cron.Stop()
		select {
		case <-cronCtx.Done():
		case <-ctx.Done():
		}
	}

	err := a.Server.Shutdown(ctx)

	a.pool.Release()
	if closeErr := a.db.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}
