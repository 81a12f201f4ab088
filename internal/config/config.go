package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/tournament-engine/internal/platform/logging"
	"github.com/riskibarqy/tournament-engine/internal/platform/resilience"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	EventsRedis   = "redis"
	EventsWebhook = "webhook"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	HTTPAddr                string
	StorageDriver           string
	DBURL                   string
	DBDisablePreparedBinary bool
	SeedEnabled             bool
	SwaggerEnabled          bool
	CacheEnabled            bool
	CacheTTL                time.Duration
	CORSAllowedOrigins      []string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	InternalJobToken        string
	RecalcMaxWorkers        int

	EventsEnabled        bool
	EventsDriver         string
	RedisURL             string
	EventsStream         string
	EventsStreamMaxLen   int64
	EventsWebhookURL     string
	EventsWebhookToken   string
	EventsWebhookTimeout time.Duration
	EventsCircuit        resilience.CircuitBreakerConfig

	ScheduleMaxMatchesPerDay int
	ScheduleMatineeSlot      string
	ScheduleEveningSlot      string
	SchedulePlayoffGapDays   int

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	LogLevel                   logging.Level
}

// Load reads the process environment, overlaid on ENV_FILE (default .env)
// when that file exists. Variables already set in the environment win.
func Load() (Config, error) {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	storageDriver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	if storageDriver != StorageMemory && storageDriver != StoragePostgres {
		return Config{}, fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", storageDriver, StorageMemory, StoragePostgres)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if storageDriver == StoragePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	seedEnabled, err := strconv.ParseBool(getEnv("SEED_ENABLED", strconv.FormatBool(appEnv != EnvProd)))
	if err != nil {
		return Config{}, fmt.Errorf("parse SEED_ENABLED: %w", err)
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", strconv.FormatBool(appEnv != EnvProd)))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	recalcMaxWorkers, err := getEnvAsInt("RECALC_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECALC_MAX_WORKERS: %w", err)
	}
	if recalcMaxWorkers < 1 {
		return Config{}, fmt.Errorf("RECALC_MAX_WORKERS must be >= 1")
	}

	events, err := loadEvents()
	if err != nil {
		return Config{}, err
	}

	maxPerDay, err := getEnvAsInt("SCHEDULE_MAX_MATCHES_PER_DAY", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_MAX_MATCHES_PER_DAY: %w", err)
	}
	if maxPerDay < 1 {
		return Config{}, fmt.Errorf("SCHEDULE_MAX_MATCHES_PER_DAY must be >= 1")
	}
	playoffGap, err := getEnvAsInt("SCHEDULE_PLAYOFF_GAP_DAYS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_PLAYOFF_GAP_DAYS: %w", err)
	}
	if playoffGap < 0 {
		return Config{}, fmt.Errorf("SCHEDULE_PLAYOFF_GAP_DAYS must be >= 0")
	}
	matinee, err := parseClock("SCHEDULE_MATINEE_SLOT", getEnv("SCHEDULE_MATINEE_SLOT", "14:00"))
	if err != nil {
		return Config{}, err
	}
	evening, err := parseClock("SCHEDULE_EVENING_SLOT", getEnv("SCHEDULE_EVENING_SLOT", "19:30"))
	if err != nil {
		return Config{}, err
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
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
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

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("SERVICE_NAME", "tournament-engine-api"),
		ServiceVersion:             getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("HTTP_ADDR", ":8080"),
		StorageDriver:              storageDriver,
		DBURL:                      dbURL,
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		SeedEnabled:                seedEnabled,
		SwaggerEnabled:             swaggerEnabled,
		CacheEnabled:               cacheEnabled,
		CacheTTL:                   cacheTTL,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		RecalcMaxWorkers:           recalcMaxWorkers,
		ScheduleMaxMatchesPerDay:   maxPerDay,
		ScheduleMatineeSlot:        matinee,
		ScheduleEveningSlot:        evening,
		SchedulePlayoffGapDays:     playoffGap,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		LogLevel:                   logLevel,
	}
	events.apply(&cfg)

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	return cfg, nil
}

type eventsConfig struct {
	enabled        bool
	driver         string
	redisURL       string
	stream         string
	streamMaxLen   int64
	webhookURL     string
	webhookToken   string
	webhookTimeout time.Duration
	circuit        resilience.CircuitBreakerConfig
}

func (e eventsConfig) apply(cfg *Config) {
	cfg.EventsEnabled = e.enabled
	cfg.EventsDriver = e.driver
	cfg.RedisURL = e.redisURL
	cfg.EventsStream = e.stream
	cfg.EventsStreamMaxLen = e.streamMaxLen
	cfg.EventsWebhookURL = e.webhookURL
	cfg.EventsWebhookToken = e.webhookToken
	cfg.EventsWebhookTimeout = e.webhookTimeout
	cfg.EventsCircuit = e.circuit
}

func loadEvents() (eventsConfig, error) {
	enabled, err := strconv.ParseBool(getEnv("EVENTS_ENABLED", "false"))
	if err != nil {
		return eventsConfig{}, fmt.Errorf("parse EVENTS_ENABLED: %w", err)
	}
	out := eventsConfig{
		enabled:      enabled,
		driver:       strings.ToLower(strings.TrimSpace(getEnv("EVENTS_DRIVER", EventsRedis))),
		redisURL:     strings.TrimSpace(getEnv("REDIS_URL", "")),
		stream:       strings.TrimSpace(getEnv("EVENTS_STREAM", "tournament.events")),
		webhookURL:   strings.TrimSpace(getEnv("EVENTS_WEBHOOK_URL", "")),
		webhookToken: strings.TrimSpace(getEnv("EVENTS_WEBHOOK_TOKEN", "")),
	}

	maxLen, err := getEnvAsInt("EVENTS_STREAM_MAXLEN", 10000)
	if err != nil {
		return eventsConfig{}, fmt.Errorf("parse EVENTS_STREAM_MAXLEN: %w", err)
	}
	if maxLen < 0 {
		return eventsConfig{}, fmt.Errorf("EVENTS_STREAM_MAXLEN must be >= 0")
	}
	out.streamMaxLen = int64(maxLen)

	out.webhookTimeout, err = time.ParseDuration(getEnv("EVENTS_WEBHOOK_TIMEOUT", "5s"))
	if err != nil {
		return eventsConfig{}, fmt.Errorf("parse EVENTS_WEBHOOK_TIMEOUT: %w", err)
	}
	if out.webhookTimeout <= 0 {
		return eventsConfig{}, fmt.Errorf("EVENTS_WEBHOOK_TIMEOUT must be > 0")
	}

	defaults := resilience.DefaultCircuitBreakerConfig()
	circuitEnabled, err := strconv.ParseBool(getEnv("EVENTS_CIRCUIT_ENABLED", strconv.FormatBool(defaults.Enabled)))
	if err != nil {
		return eventsConfig{}, fmt.Errorf("parse EVENTS_CIRCUIT_ENABLED: %w", err)
	}
	failureCount, err := getEnvAsInt("EVENTS_CIRCUIT_FAILURE_COUNT", defaults.FailureThreshold)
	if err != nil {
		return eventsConfig{}, fmt.Errorf("parse EVENTS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	openTimeout, err := time.ParseDuration(getEnv("EVENTS_CIRCUIT_OPEN_TIMEOUT", defaults.OpenTimeout.String()))
	if err != nil {
		return eventsConfig{}, fmt.Errorf("parse EVENTS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	halfOpenMaxReq, err := getEnvAsInt("EVENTS_CIRCUIT_HALF_OPEN_MAX_REQ", defaults.HalfOpenMaxReq)
	if err != nil {
		return eventsConfig{}, fmt.Errorf("parse EVENTS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	out.circuit = resilience.CircuitBreakerConfig{
		Enabled:          circuitEnabled,
		FailureThreshold: failureCount,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}
	if err := out.circuit.Validate(); err != nil {
		return eventsConfig{}, fmt.Errorf("EVENTS_CIRCUIT: %w", err)
	}

	if !enabled {
		return out, nil
	}
	switch out.driver {
	case EventsRedis:
		if out.redisURL == "" {
			return eventsConfig{}, fmt.Errorf("REDIS_URL is required when EVENTS_DRIVER=redis")
		}
		if out.stream == "" {
			return eventsConfig{}, fmt.Errorf("EVENTS_STREAM cannot be empty when EVENTS_DRIVER=redis")
		}
	case EventsWebhook:
		if out.webhookURL == "" {
			return eventsConfig{}, fmt.Errorf("EVENTS_WEBHOOK_URL is required when EVENTS_DRIVER=webhook")
		}
	default:
		return eventsConfig{}, fmt.Errorf("invalid EVENTS_DRIVER %q: valid values are %s, %s", out.driver, EventsRedis, EventsWebhook)
	}
	return out, nil
}

// LoadEnvFile applies ENV_FILE (default .env) without building a Config, for
// tools that only need a few variables.
func LoadEnvFile() error {
	return loadDotEnv(getEnv("ENV_FILE", ".env"))
}

func loadDotEnv(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func parseClock(key, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if _, err := time.Parse("15:04", value); err != nil {
		return "", fmt.Errorf("parse %s: expected HH:MM, got %q", key, raw)
	}
	return value, nil
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

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
