package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	LLM      LLMConfig
	JSearch  JSearchConfig
	Ingest   IngestConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string

	FreshnessMinutes int
	// AutoMigrate applies embedded migrations when the server starts.
	AutoMigrate bool
	// WSAllowedOrigins restricts websocket upgrades; empty allows any origin.
	WSAllowedOrigins []string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
}

// LLMConfig configures the external text/reasoning service. An empty APIKey
// disables the LLM paths and every caller falls back to local heuristics.
type LLMConfig struct {
	APIKey           string
	Model            string
	FallbackModel    string
	Timeout          time.Duration
	BatchConcurrency int
}

type JSearchConfig struct {
	APIKey  string
	BaseURL string
	Host    string
	RPS     float64
	Timeout time.Duration
}

type IngestConfig struct {
	Queries         []string
	Pages           int
	Workers         int
	RemoteOnly      bool
	LinkedInEnabled bool
	LinkedInBaseURL string
}

var DefaultIngestQueries = []string{
	"software engineer",
	"data scientist",
	"web developer",
	"machine learning",
	"devops engineer",
	"cloud architect",
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the process environment, after merging a .env file from the
// working directory when one exists. Variables already set win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFromEnv(os.Getenv)
}

func LoadFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	seconds := func(key string, def int) time.Duration {
		return time.Duration(optInt(key, def)) * time.Second
	}

	cfg.App = AppConfig{
		AppName:          req("APP_NAME"),
		Environment:      req("APP_ENV"),
		HTTPPort:         req("HTTP_PORT"),
		FreshnessMinutes: optInt("JOBS_FRESHNESS_MINUTES", 30),
		AutoMigrate:      optBool("APP_AUTO_MIGRATE", false),
		WSAllowedOrigins: splitList(opt("WS_ALLOWED_ORIGINS", "")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST", "localhost"),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", ""),
		DBUser:                opt("DB_USER", ""),
		DBPassword:            opt("DB_PASSWORD", ""),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        seconds("DB_CONNECT_TIMEOUT_SECONDS", 5),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   seconds("DB_POOL_MAX_CONN_LIFETIME_SECONDS", 3600),
		PoolMaxConnIdleTime:   seconds("DB_POOL_MAX_CONN_IDLE_SECONDS", 600),
		PoolHealthCheckPeriod: seconds("DB_POOL_HEALTH_CHECK_SECONDS", 60),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      seconds("REDIS_TTL", 600),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    req("JWT_ACCESS_SECRET"),
		AccessExpiresIn: time.Duration(optInt("JWT_ACCESS_EXPIRES_MINUTES", 60)) * time.Minute,
	}

	cfg.LLM = LLMConfig{
		APIKey:           opt("GEMINI_API_KEY", ""),
		Model:            opt("LLM_MODEL", "gemini-2.5-flash"),
		FallbackModel:    opt("LLM_FALLBACK_MODEL", "gemini-2.0-flash"),
		Timeout:          seconds("LLM_TIMEOUT_SECONDS", 30),
		BatchConcurrency: optInt("LLM_BATCH_CONCURRENCY", 2),
	}

	cfg.JSearch = JSearchConfig{
		APIKey:  opt("JSEARCH_API_KEY", ""),
		BaseURL: opt("JSEARCH_BASE_URL", "https://jsearch.p.rapidapi.com"),
		Host:    opt("JSEARCH_HOST", "jsearch.p.rapidapi.com"),
		RPS:     optFloat("JSEARCH_RPS", 1),
		Timeout: seconds("JSEARCH_TIMEOUT_SECONDS", 15),
	}

	cfg.Ingest = IngestConfig{
		Queries:         splitList(opt("INGEST_QUERIES", "")),
		Pages:           optInt("INGEST_PAGES", 1),
		Workers:         optInt("INGEST_WORKERS", 3),
		RemoteOnly:      optBool("INGEST_REMOTE_ONLY", false),
		LinkedInEnabled: optBool("LINKEDIN_ENABLED", false),
		LinkedInBaseURL: opt("LINKEDIN_BASE_URL", "https://www.linkedin.com"),
	}
	if len(cfg.Ingest.Queries) == 0 {
		cfg.Ingest.Queries = append([]string(nil), DefaultIngestQueries...)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
