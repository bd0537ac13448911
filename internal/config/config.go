package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/courtside/nba-stats-api/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	DBURL                   string
	DBDisablePreparedBinary bool
	CORSAllowedOrigins      []string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	PprofEnabled            bool
	PprofAddr               string

	JWTSecret                 string
	AccessTokenTTL            time.Duration
	EmailVerificationTokenTTL time.Duration
	PasswordResetTokenTTL     time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailFromName string
	AppBaseURL   string

	NBAAPIHost                string
	NBAAPIKey                 string
	NBAAPITimeout             time.Duration
	NBAAPIMaxAttempts         int
	NBAAPIRetryDelay          time.Duration
	NBAAPIRetryJitter         time.Duration
	NBAAPICircuitEnabled      bool
	NBAAPICircuitFailureCount int
	NBAAPICircuitOpenTimeout  time.Duration
	NBAAPICircuitHalfOpenReq  int
	NBALeagueID               int64
	GameFetchDelay            time.Duration

	IngestionWorkers  int
	DailyCronEnabled  bool
	DailyCronSchedule string

	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	BetterStackEnabled         bool
	BetterStackEndpoint        string
	BetterStackToken           string
	BetterStackTimeout         time.Duration
	BetterStackMinLevel        logging.Level
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	dbURL := strings.TrimSpace(getEnv("DATABASE_URL", ""))
	if dbURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	jwtSecret := strings.TrimSpace(getEnv("SECRET_KEY", ""))
	if len(jwtSecret) < 32 {
		return Config{}, fmt.Errorf("SECRET_KEY must be at least 32 characters")
	}

	accessTokenTTL, err := time.ParseDuration(getEnv("ACCESS_TOKEN_TTL", "60m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ACCESS_TOKEN_TTL: %w", err)
	}

	emailVerificationTTL, err := time.ParseDuration(getEnv("EMAIL_VERIFICATION_TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse EMAIL_VERIFICATION_TOKEN_TTL: %w", err)
	}

	passwordResetTTL, err := time.ParseDuration(getEnv("PASSWORD_RESET_TOKEN_TTL", "3h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PASSWORD_RESET_TOKEN_TTL: %w", err)
	}

	smtpPort, err := getEnvAsInt("SMTP_PORT", 587)
	if err != nil {
		return Config{}, fmt.Errorf("parse SMTP_PORT: %w", err)
	}

	nbaAPIKey := strings.TrimSpace(getEnv("NBA_API_KEY", ""))
	if nbaAPIKey == "" {
		return Config{}, fmt.Errorf("NBA_API_KEY cannot be empty")
	}

	nbaAPITimeout, err := time.ParseDuration(getEnv("NBA_API_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_API_TIMEOUT: %w", err)
	}

	nbaAPIMaxAttempts, err := getEnvAsInt("NBA_API_MAX_ATTEMPTS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_API_MAX_ATTEMPTS: %w", err)
	}
	if nbaAPIMaxAttempts < 1 {
		return Config{}, fmt.Errorf("NBA_API_MAX_ATTEMPTS must be >= 1")
	}

	nbaAPIRetryDelay, err := time.ParseDuration(getEnv("NBA_API_RETRY_DELAY", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_API_RETRY_DELAY: %w", err)
	}
	if nbaAPIRetryDelay < 0 {
		return Config{}, fmt.Errorf("NBA_API_RETRY_DELAY must be >= 0")
	}

	nbaAPIRetryJitter, err := time.ParseDuration(getEnv("NBA_API_RETRY_JITTER", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_API_RETRY_JITTER: %w", err)
	}
	if nbaAPIRetryJitter < 0 {
		return Config{}, fmt.Errorf("NBA_API_RETRY_JITTER must be >= 0")
	}

	nbaCircuitEnabled, err := strconv.ParseBool(getEnv("NBA_API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_API_CIRCUIT_ENABLED: %w", err)
	}

	nbaCircuitFailureCount, err := getEnvAsInt("NBA_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if nbaCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NBA_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	nbaCircuitOpenTimeout, err := time.ParseDuration(getEnv("NBA_API_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_API_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if nbaCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NBA_API_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	nbaCircuitHalfOpenReq, err := getEnvAsInt("NBA_API_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if nbaCircuitHalfOpenReq < 1 {
		return Config{}, fmt.Errorf("NBA_API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	nbaLeagueID, err := getEnvAsInt("NBA_LEAGUE_ID", 12)
	if err != nil {
		return Config{}, fmt.Errorf("parse NBA_LEAGUE_ID: %w", err)
	}

	gameFetchDelay, err := time.ParseDuration(getEnv("GAME_FETCH_DELAY", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GAME_FETCH_DELAY: %w", err)
	}
	if gameFetchDelay < 0 {
		return Config{}, fmt.Errorf("GAME_FETCH_DELAY must be >= 0")
	}

	ingestionWorkers, err := getEnvAsInt("INGESTION_WORKERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGESTION_WORKERS: %w", err)
	}
	if ingestionWorkers < 1 {
		return Config{}, fmt.Errorf("INGESTION_WORKERS must be >= 1")
	}

	dailyCronEnabled, err := strconv.ParseBool(getEnv("DAILY_CRON_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DAILY_CRON_ENABLED: %w", err)
	}
	dailyCronSchedule := strings.TrimSpace(getEnv("DAILY_CRON_SCHEDULE", "0 6 * * *"))
	if dailyCronEnabled && dailyCronSchedule == "" {
		return Config{}, fmt.Errorf("DAILY_CRON_SCHEDULE cannot be empty when DAILY_CRON_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTER_STACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTER_STACK_ENABLED: %w", err)
	}
	betterStackToken := strings.TrimSpace(getEnv("BETTER_STACK_TOKEN", ""))
	if betterStackEnabled && betterStackToken == "" {
		return Config{}, fmt.Errorf("BETTER_STACK_TOKEN is required when BETTER_STACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTER_STACK_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTER_STACK_TIMEOUT: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("SERVICE_NAME", "nba-stats-api"),
		ServiceVersion:          getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		PprofEnabled:            pprofEnabled,
		PprofAddr:               getEnv("PPROF_ADDR", "localhost:6060"),

		JWTSecret:                 jwtSecret,
		AccessTokenTTL:            accessTokenTTL,
		EmailVerificationTokenTTL: emailVerificationTTL,
		PasswordResetTokenTTL:     passwordResetTTL,

		SMTPHost:     strings.TrimSpace(getEnv("SMTP_HOST", "")),
		SMTPPort:     smtpPort,
		SMTPUsername: strings.TrimSpace(getEnv("SMTP_USERNAME", "")),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     strings.TrimSpace(getEnv("MAIL_FROM", "no-reply@localhost")),
		MailFromName: strings.TrimSpace(getEnv("MAIL_FROM_NAME", "NBA Stats")),
		AppBaseURL:   strings.TrimRight(strings.TrimSpace(getEnv("APP_BASE_URL", "http://localhost:8080")), "/"),

		NBAAPIHost:                strings.TrimSpace(getEnv("NBA_API_HOST", "v2.nba.api-sports.io")),
		NBAAPIKey:                 nbaAPIKey,
		NBAAPITimeout:             nbaAPITimeout,
		NBAAPIMaxAttempts:         nbaAPIMaxAttempts,
		NBAAPIRetryDelay:          nbaAPIRetryDelay,
		NBAAPIRetryJitter:         nbaAPIRetryJitter,
		NBAAPICircuitEnabled:      nbaCircuitEnabled,
		NBAAPICircuitFailureCount: nbaCircuitFailureCount,
		NBAAPICircuitOpenTimeout:  nbaCircuitOpenTimeout,
		NBAAPICircuitHalfOpenReq:  nbaCircuitHalfOpenReq,
		NBALeagueID:               int64(nbaLeagueID),
		GameFetchDelay:            gameFetchDelay,

		IngestionWorkers:  ingestionWorkers,
		DailyCronEnabled:  dailyCronEnabled,
		DailyCronSchedule: dailyCronSchedule,

		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		BetterStackEnabled:         betterStackEnabled,
		BetterStackEndpoint:        strings.TrimSpace(getEnv("BETTER_STACK_ENDPOINT", "")),
		BetterStackToken:           betterStackToken,
		BetterStackTimeout:         betterStackTimeout,
		BetterStackMinLevel:        parseLogLevel(getEnv("BETTER_STACK_MIN_LEVEL", "warn")),
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		LogLevel: parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case EnvDev, "development", "local":
		return EnvDev, nil
	case EnvStage, "staging":
		return EnvStage, nil
	case EnvProd, "production":
		return EnvProd, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q, expected dev|stage|prod", v)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
