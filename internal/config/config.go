package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the CineMood service.
type Config struct {
	DB        DBConfig
	Redis     RedisConfig
	TMDB      TMDBConfig
	OpenAI    OpenAIConfig
	RateLimit RateLimitConfig
	Port      string
	Env       string
	LogLevel  slog.Level
}

// DBConfig holds PostgreSQL configuration.
// URL takes precedence over the discrete fields when set.
type DBConfig struct {
	URL         string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// Configured reports whether a database location was supplied explicitly.
func (d DBConfig) Configured() bool {
	return d.URL != "" || d.Password != ""
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TMDBConfig holds TMDB API configuration.
type TMDBConfig struct {
	APIKey  string
	BaseURL string
}

// OpenAIConfig holds language-model API configuration.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	VisionModel string
}

// RateLimitConfig holds the per-IP request budget.
type RateLimitConfig struct {
	Max           int
	WindowSeconds int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	rateMax, _ := strconv.Atoi(getEnv("RATE_LIMIT_MAX", "60"))
	rateWindow, _ := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))

	cfg := &Config{
		DB: DBConfig{
			URL:         getEnv("DATABASE_URL", ""),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			DBName:      getEnv("DB_NAME", "cinemood"),
			SSLMode:     getEnv("DB_SSLMODE", "require"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		TMDB: TMDBConfig{
			APIKey:  tmdbAPIKey(),
			BaseURL: strings.TrimRight(getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"), "/"),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o"),
			VisionModel: getEnv("OPENAI_VISION_MODEL", "gpt-4o-mini"),
		},
		RateLimit: RateLimitConfig{
			Max:           rateMax,
			WindowSeconds: rateWindow,
		},
		Port:     getEnv("SERVER_PORT", getEnv("PORT", "3000")),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),
	}

	return cfg, nil
}

// Missing returns the names of required credentials that are absent.
func (c *Config) Missing() []string {
	var missing []string
	if c.OpenAI.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.TMDB.APIKey == "" {
		missing = append(missing, "TMDB_API_KEY")
	}
	if !c.DB.Configured() {
		missing = append(missing, "DATABASE_URL")
	}
	return missing
}

// tmdbAPIKey prefers TMDB_API_KEY and falls back to the deprecated TMDB_KEY.
func tmdbAPIKey() string {
	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		if os.Getenv("TMDB_KEY") != "" {
			slog.Warn("TMDB_KEY is deprecated and ignored, remove it in favour of TMDB_API_KEY")
		}
		return v
	}
	if v := os.Getenv("TMDB_KEY"); v != "" {
		slog.Warn("TMDB_KEY is deprecated, rename it to TMDB_API_KEY")
		return v
	}
	return ""
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
