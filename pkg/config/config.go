package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Solver    SolverConfig
	Sessions  SessionsConfig
	Exports   ExportsConfig
	Redis     RedisConfig
	Clipboard ClipboardConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
}

// SolverConfig points at the external constraint-solving backend.
type SolverConfig struct {
	BaseURL         string
	RequestTimeout  time.Duration
	DefaultVariants int
	UseMock         bool
	MockSeed        int64
}

// SessionsConfig tunes the in-memory variant session store.
type SessionsConfig struct {
	TTL time.Duration
}

// ExportsConfig configures grid export rendering and downloads.
type ExportsConfig struct {
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	CleanupInterval   time.Duration
	WorkerConcurrency int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ClipboardConfig controls the process-wide slot clipboard.
type ClipboardConfig struct {
	UseRedis bool
	Key      string
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Solver = SolverConfig{
		BaseURL:         v.GetString("SOLVER_BASE_URL"),
		RequestTimeout:  parseDuration(v.GetString("SOLVER_REQUEST_TIMEOUT"), 60*time.Second),
		DefaultVariants: v.GetInt("SOLVER_DEFAULT_VARIANTS"),
		UseMock:         v.GetBool("SOLVER_USE_MOCK"),
		MockSeed:        v.GetInt64("SOLVER_MOCK_SEED"),
	}

	cfg.Sessions = SessionsConfig{
		TTL: parseDuration(v.GetString("SESSION_TTL"), 2*time.Hour),
	}

	cfg.Exports = ExportsConfig{
		StorageDir:        v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		CleanupInterval:   parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
		WorkerConcurrency: v.GetInt("EXPORTS_WORKER_CONCURRENCY"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Clipboard = ClipboardConfig{
		UseRedis: v.GetBool("CLIPBOARD_USE_REDIS"),
		Key:      v.GetString("CLIPBOARD_REDIS_KEY"),
	}

	cfg.JWT = JWTConfig{Secret: v.GetString("JWT_SECRET")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("SOLVER_BASE_URL", "http://localhost:9000/api")
	v.SetDefault("SOLVER_REQUEST_TIMEOUT", "60s")
	v.SetDefault("SOLVER_DEFAULT_VARIANTS", 3)
	v.SetDefault("SOLVER_USE_MOCK", false)
	v.SetDefault("SOLVER_MOCK_SEED", 0)

	v.SetDefault("SESSION_TTL", "2h")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("EXPORTS_WORKER_CONCURRENCY", 1)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CLIPBOARD_USE_REDIS", false)
	v.SetDefault("CLIPBOARD_REDIS_KEY", "timetable:clipboard")

	v.SetDefault("JWT_SECRET", "dev_secret")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
