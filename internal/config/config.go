package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/obhl/rinkside/internal/platform/logging"
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
	CacheEnabled            bool
	CacheTTL                time.Duration
	CORSAllowedOrigins      []string
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	PprofEnabled            bool
	PprofAddr               string
	SwaggerEnabled          bool

	GatekeeperBaseURL              string
	GatekeeperIntrospectPath       string
	GatekeeperTimeout              time.Duration
	GatekeeperCacheTTL             time.Duration
	GatekeeperCacheMaxSize         int
	GatekeeperCircuitEnabled       bool
	GatekeeperCircuitFailureCount  int
	GatekeeperCircuitOpenTimeout   time.Duration
	GatekeeperCircuitHalfOpenMax   int

	LeagueOfficeEnabled             bool
	LeagueOfficeBaseURL             string
	LeagueOfficeResultsPath         string
	LeagueOfficeAPIKey              string
	LeagueOfficeTimeout             time.Duration
	LeagueOfficeCircuitEnabled      bool
	LeagueOfficeCircuitFailureCount int
	LeagueOfficeCircuitOpenTimeout  time.Duration
	LeagueOfficeCircuitHalfOpenMax  int

	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceCaptureRequestBody  bool
	UptraceRequestBodyMaxBytes int

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration

	InternalJobToken string
	LogLevel         logging.Level
}

func Load() (Config, error) {
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
	uptraceCaptureRequestBody, err := strconv.ParseBool(getEnv("UPTRACE_CAPTURE_REQUEST_BODY", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_CAPTURE_REQUEST_BODY: %w", err)
	}
	uptraceRequestBodyMaxBytes, err := getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if uptraceRequestBodyMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
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

	leagueOfficeEnabled, err := strconv.ParseBool(getEnv("LEAGUE_OFFICE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_OFFICE_ENABLED: %w", err)
	}
	leagueOfficeBaseURL := strings.TrimSpace(getEnv("LEAGUE_OFFICE_BASE_URL", ""))
	leagueOfficeAPIKey := strings.TrimSpace(getEnv("LEAGUE_OFFICE_API_KEY", ""))
	if leagueOfficeEnabled {
		if leagueOfficeBaseURL == "" {
			return Config{}, fmt.Errorf("LEAGUE_OFFICE_BASE_URL is required when LEAGUE_OFFICE_ENABLED=true")
		}
		if leagueOfficeAPIKey == "" {
			return Config{}, fmt.Errorf("LEAGUE_OFFICE_API_KEY is required when LEAGUE_OFFICE_ENABLED=true")
		}
	}
	leagueOfficeTimeout, err := time.ParseDuration(getEnv("LEAGUE_OFFICE_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_OFFICE_TIMEOUT: %w", err)
	}
	if leagueOfficeTimeout <= 0 {
		return Config{}, fmt.Errorf("LEAGUE_OFFICE_TIMEOUT must be > 0")
	}
	leagueOfficeCircuitEnabled, err := strconv.ParseBool(getEnv("LEAGUE_OFFICE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_OFFICE_CIRCUIT_ENABLED: %w", err)
	}
	leagueOfficeCircuitFailureCount, err := getEnvAsInt("LEAGUE_OFFICE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_OFFICE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if leagueOfficeCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("LEAGUE_OFFICE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	leagueOfficeCircuitOpenTimeout, err := time.ParseDuration(getEnv("LEAGUE_OFFICE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_OFFICE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if leagueOfficeCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("LEAGUE_OFFICE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	leagueOfficeCircuitHalfOpenMax, err := getEnvAsInt("LEAGUE_OFFICE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_OFFICE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if leagueOfficeCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("LEAGUE_OFFICE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	gatekeeperTimeout, err := time.ParseDuration(getEnv("GATEKEEPER_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_TIMEOUT: %w", err)
	}
	gatekeeperCacheTTL, err := time.ParseDuration(getEnv("GATEKEEPER_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CACHE_TTL: %w", err)
	}
	gatekeeperCacheMaxSize, err := getEnvAsInt("GATEKEEPER_CACHE_MAX_SIZE", 1024)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CACHE_MAX_SIZE: %w", err)
	}
	if gatekeeperCacheMaxSize < 0 {
		return Config{}, fmt.Errorf("GATEKEEPER_CACHE_MAX_SIZE must be >= 0")
	}
	gatekeeperCircuitEnabled, err := strconv.ParseBool(getEnv("GATEKEEPER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_ENABLED: %w", err)
	}
	gatekeeperCircuitFailureCount, err := getEnvAsInt("GATEKEEPER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if gatekeeperCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GATEKEEPER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	gatekeeperCircuitOpenTimeout, err := time.ParseDuration(getEnv("GATEKEEPER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if gatekeeperCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("GATEKEEPER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	gatekeeperCircuitHalfOpenMax, err := getEnvAsInt("GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if gatekeeperCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
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

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "rinkside-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                   getEnv("DB_URL", ""),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CacheEnabled:            cacheEnabled,
		CacheTTL:                cacheTTL,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		PprofEnabled:            pprofEnabled,
		PprofAddr:               pprofAddr,
		SwaggerEnabled:          swaggerEnabled,

		GatekeeperBaseURL:             getEnv("GATEKEEPER_BASE_URL", "http://localhost:8081"),
		GatekeeperIntrospectPath:      getEnv("GATEKEEPER_INTROSPECT_PATH", "/v1/auth/introspect"),
		GatekeeperTimeout:             gatekeeperTimeout,
		GatekeeperCacheTTL:            gatekeeperCacheTTL,
		GatekeeperCacheMaxSize:        gatekeeperCacheMaxSize,
		GatekeeperCircuitEnabled:      gatekeeperCircuitEnabled,
		GatekeeperCircuitFailureCount: gatekeeperCircuitFailureCount,
		GatekeeperCircuitOpenTimeout:  gatekeeperCircuitOpenTimeout,
		GatekeeperCircuitHalfOpenMax:  gatekeeperCircuitHalfOpenMax,

		LeagueOfficeEnabled:             leagueOfficeEnabled,
		LeagueOfficeBaseURL:             leagueOfficeBaseURL,
		LeagueOfficeResultsPath:         getEnv("LEAGUE_OFFICE_RESULTS_PATH", "/v1/results"),
		LeagueOfficeAPIKey:              leagueOfficeAPIKey,
		LeagueOfficeTimeout:             leagueOfficeTimeout,
		LeagueOfficeCircuitEnabled:      leagueOfficeCircuitEnabled,
		LeagueOfficeCircuitFailureCount: leagueOfficeCircuitFailureCount,
		LeagueOfficeCircuitOpenTimeout:  leagueOfficeCircuitOpenTimeout,
		LeagueOfficeCircuitHalfOpenMax:  leagueOfficeCircuitHalfOpenMax,

		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceCaptureRequestBody:  uptraceCaptureRequestBody,
		UptraceRequestBodyMaxBytes: uptraceRequestBodyMaxBytes,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,

		InternalJobToken: strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		LogLevel:         logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
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

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
