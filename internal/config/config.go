package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
)

const (
	DataSourceFile     = "file"
	DataSourcePostgres = "postgres"

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	LogLevel                   logging.Level
	CORSAllowedOrigins         []string
	SwaggerEnabled             bool
	DataSource                 string
	DataDir                    string
	DataRefreshInterval        time.Duration
	DataLoadMaxAttempts        int
	DataLoadInitialBackoff     time.Duration
	DataLoadMaxBackoff         time.Duration
	StatsWorkers               int
	DBURL                      string
	DBDisablePreparedBinary    bool
	CacheEnabled               bool
	CacheBackend               string
	CacheTTL                   time.Duration
	RedisURL                   string
	InternalJobToken           string
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
}

// Load reads the environment, after merging an optional .env file
// (APP_ENV_FILE, default ".env"). Variables already set win over the file.
func Load() (Config, error) {
	if err := loadEnvFile(getEnv("APP_ENV_FILE", ".env")); err != nil {
		return Config{}, err
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	logLevel, err := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dataSource, err := parseDataSource(getEnv("DATA_SOURCE", DataSourceFile))
	if err != nil {
		return Config{}, err
	}
	dataDir := strings.TrimSpace(getEnv("DATA_DIR", "./data"))
	if dataSource == DataSourceFile && dataDir == "" {
		return Config{}, fmt.Errorf("DATA_DIR is required when DATA_SOURCE=%s", DataSourceFile)
	}
	dataRefreshInterval, err := time.ParseDuration(getEnv("DATA_REFRESH_INTERVAL", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATA_REFRESH_INTERVAL: %w", err)
	}
	if dataRefreshInterval < 0 {
		return Config{}, fmt.Errorf("DATA_REFRESH_INTERVAL must be >= 0")
	}
	dataLoadMaxAttempts, err := getEnvAsInt("DATA_LOAD_MAX_ATTEMPTS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse DATA_LOAD_MAX_ATTEMPTS: %w", err)
	}
	if dataLoadMaxAttempts < 1 {
		return Config{}, fmt.Errorf("DATA_LOAD_MAX_ATTEMPTS must be >= 1")
	}
	dataLoadInitialBackoff, err := time.ParseDuration(getEnv("DATA_LOAD_INITIAL_BACKOFF", "500ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATA_LOAD_INITIAL_BACKOFF: %w", err)
	}
	if dataLoadInitialBackoff <= 0 {
		return Config{}, fmt.Errorf("DATA_LOAD_INITIAL_BACKOFF must be > 0")
	}
	dataLoadMaxBackoff, err := time.ParseDuration(getEnv("DATA_LOAD_MAX_BACKOFF", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DATA_LOAD_MAX_BACKOFF: %w", err)
	}
	if dataLoadMaxBackoff < dataLoadInitialBackoff {
		return Config{}, fmt.Errorf("DATA_LOAD_MAX_BACKOFF must be >= DATA_LOAD_INITIAL_BACKOFF")
	}

	statsWorkers, err := getEnvAsInt("STATS_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_WORKERS: %w", err)
	}
	if statsWorkers < 1 {
		return Config{}, fmt.Errorf("STATS_WORKERS must be >= 1")
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dataSource == DataSourcePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when DATA_SOURCE=%s", DataSourcePostgres)
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheBackend, err := parseCacheBackend(getEnv("CACHE_BACKEND", CacheBackendMemory))
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	redisURL := strings.TrimSpace(getEnv("REDIS_URL", ""))
	if cacheEnabled && cacheBackend == CacheBackendRedis && redisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=%s", CacheBackendRedis)
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
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
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
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "tournament-dashboard-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		LogLevel:                   logLevel,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:             swaggerEnabled,
		DataSource:                 dataSource,
		DataDir:                    dataDir,
		DataRefreshInterval:        dataRefreshInterval,
		DataLoadMaxAttempts:        dataLoadMaxAttempts,
		DataLoadInitialBackoff:     dataLoadInitialBackoff,
		DataLoadMaxBackoff:         dataLoadMaxBackoff,
		StatsWorkers:               statsWorkers,
		DBURL:                      dbURL,
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		CacheEnabled:               cacheEnabled,
		CacheBackend:               cacheBackend,
		CacheTTL:                   cacheTTL,
		RedisURL:                   redisURL,
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
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

func loadEnvFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
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

func parseDataSource(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case DataSourceFile, DataSourcePostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid DATA_SOURCE %q: valid values are %s, %s", v, DataSourceFile, DataSourcePostgres)
	}
}

func parseCacheBackend(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case CacheBackendMemory, CacheBackendRedis:
		return value, nil
	default:
		return "", fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s", v, CacheBackendMemory, CacheBackendRedis)
	}
}
