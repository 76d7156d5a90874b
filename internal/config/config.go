package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"rps_arena/internal/logger"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

type Config struct {
	AppPort       string
	Version       string
	Storage       string
	DatabaseURL   string
	AllowedOrigin string

	LogLevel string
	LogJSON  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow time.Duration

	LeaderboardCacheTTL time.Duration
	LeaderboardRefresh  time.Duration
}

// Load reads the config from env (and .env if present)
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		Version:       getEnv("APP_VERSION", "dev"),
		Storage:       strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogJSON:       os.Getenv("LOG_JSON") == "true",
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		APIRateLimit:  getInt("API_RATE_LIMIT", 60),
		APIRateWindow: time.Duration(getInt("API_RATE_WINDOW_SECONDS", 60)) * time.Second,

		LeaderboardCacheTTL: time.Duration(getInt("LEADERBOARD_CACHE_TTL_SECONDS", 30)) * time.Second,
		LeaderboardRefresh:  time.Duration(getInt("LEADERBOARD_REFRESH_SECONDS", 60)) * time.Second,
	}

	if cfg.Storage != StorageMemory {
		cfg.Storage = StoragePostgres
		if cfg.DatabaseURL == "" {
			return nil, ErrMissingDatabaseURL
		}
	}

	return cfg, nil
}

// MustLoad is Load for main packages
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getInt falls back to def on empty, unparsable or negative values
func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return def
	}
	return n
}
