package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Google   GoogleConfig
	Sync     SyncConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	BootstrapAdminHandle  string
	BootstrapAdminEmail   string
	BootstrapAdminPass    string
}

// GoogleConfig carries the service-account credential blob and the external
// document identifiers. An empty identifier means that domain's sync is not
// configured and is skipped with a reportable message.
type GoogleConfig struct {
	CredentialsJSON       string
	EmployeeSpreadsheetID string
	EmployeeSheetName     string
	CareerPathsDocID      string
	EventsDocID           string
	OperationsDocID       string
}

// SyncConfig controls the recurring reconciliation schedule. Intervals are
// staggered by offset so the four passes do not start simultaneously.
type SyncConfig struct {
	Enabled               bool
	EmployeeIntervalMin   int
	CareerPathIntervalMin int
	EventIntervalMin      int
	OperationIntervalMin  int
	EmployeeOffsetMin     int
	CareerPathOffsetMin   int
	EventOffsetMin        int
	OperationOffsetMin    int
	StatusCacheTTLMinutes int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "aydocorp-portal-api"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			BootstrapAdminHandle:  getEnv("AUTH_BOOTSTRAP_ADMIN_HANDLE", ""),
			BootstrapAdminEmail:   getEnv("AUTH_BOOTSTRAP_ADMIN_EMAIL", ""),
			BootstrapAdminPass:    os.Getenv("AUTH_BOOTSTRAP_ADMIN_PASSWORD"),
		},
		Google: GoogleConfig{
			CredentialsJSON:       os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
			EmployeeSpreadsheetID: os.Getenv("GOOGLE_EMPLOYEE_SPREADSHEET_ID"),
			EmployeeSheetName:     getEnv("GOOGLE_EMPLOYEE_SHEET_NAME", "Employees"),
			CareerPathsDocID:      os.Getenv("GOOGLE_CAREER_PATHS_DOC_ID"),
			EventsDocID:           os.Getenv("GOOGLE_EVENTS_DOC_ID"),
			OperationsDocID:       os.Getenv("GOOGLE_OPERATIONS_DOC_ID"),
		},
		Sync: SyncConfig{
			Enabled:               getEnvAsBool("SYNC_SCHEDULER_ENABLED", true),
			EmployeeIntervalMin:   getEnvAsInt("SYNC_EMPLOYEE_INTERVAL_MINUTES", 60),
			CareerPathIntervalMin: getEnvAsInt("SYNC_CAREER_PATH_INTERVAL_MINUTES", 120),
			EventIntervalMin:      getEnvAsInt("SYNC_EVENT_INTERVAL_MINUTES", 180),
			OperationIntervalMin:  getEnvAsInt("SYNC_OPERATION_INTERVAL_MINUTES", 240),
			EmployeeOffsetMin:     getEnvAsInt("SYNC_EMPLOYEE_OFFSET_MINUTES", 0),
			CareerPathOffsetMin:   getEnvAsInt("SYNC_CAREER_PATH_OFFSET_MINUTES", 10),
			EventOffsetMin:        getEnvAsInt("SYNC_EVENT_OFFSET_MINUTES", 20),
			OperationOffsetMin:    getEnvAsInt("SYNC_OPERATION_OFFSET_MINUTES", 30),
			StatusCacheTTLMinutes: getEnvAsInt("SYNC_STATUS_CACHE_TTL_MINUTES", 1440),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
