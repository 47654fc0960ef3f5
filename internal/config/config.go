// Package config reads process configuration from the environment and the
// optional YAML game tuning file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN builds the postgres connection string understood by both pgx and lib/pq.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type Config struct {
	Env         string
	Port        string
	DB          DBConfig
	Redis       RedisConfig
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	RateLimit   int
	RateWindow  time.Duration
	CatalogFile string
	SQLitePath  string
	SessionIdle time.Duration
	Game        domain.GameConfig
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:  getEnv("APP_ENV", "production"),
		Port: getEnv("PORT", "8080"),
		DB: DBConfig{
			Driver:   getEnv("DB_DRIVER", "pgx"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "healthquest"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTIssuer:   getEnv("JWT_ISSUER", "kanso-quest"),
		JWTTTL:      getEnvDuration("JWT_TTL", 72*time.Hour),
		RateLimit:   getEnvInt("RATE_LIMIT", 100),
		RateWindow:  getEnvDuration("RATE_WINDOW", time.Minute),
		CatalogFile: os.Getenv("QUEST_CATALOG_FILE"),
		SQLitePath:  getEnv("HQ_DB_PATH", defaultSQLitePath()),
		SessionIdle: getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
	}

	switch cfg.DB.Driver {
	case "pgx", "postgres":
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	game, err := LoadGameConfig(os.Getenv("GAME_CONFIG_FILE"))
	if err != nil {
		return nil, err
	}
	cfg.Game = game

	return cfg, nil
}

// LoadGameConfig overlays the YAML file at path on the default tuning.
func LoadGameConfig(path string) (domain.GameConfig, error) {
	game := domain.DefaultGameConfig()
	if path == "" {
		return game, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return game, fmt.Errorf("config: read game config: %w", err)
	}
	if err := yaml.Unmarshal(data, &game); err != nil {
		return game, fmt.Errorf("config: decode game config: %w", err)
	}
	return game.Normalized(), nil
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "healthquest.db"
	}
	return home + "/.healthquest.db"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
