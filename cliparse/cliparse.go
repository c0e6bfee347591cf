package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = 3000
	defaultMaxConns      = 100
	defaultSessionName   = "quickpoll.sid"
	defaultSessionMaxAge = 2 * time.Hour
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	MaxConns      int
	SessionSecret string
	SessionName   string
	SessionMaxAge time.Duration
	StaticDir     string
	LogLevel      string
	Production    bool
}

// LoadDotEnv loads .env and .env.local into the environment outside of
// production. Missing files are ignored and existing variables win.
func LoadDotEnv() {
	if os.Getenv("APP_ENV") == "production" {
		return
	}
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickpoll", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.MaxConns, "max-conns", 0, "Maximum open database connections")
	fs.StringVar(&cfg.StaticDir, "static", "", "Directory of static frontend files")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Sessions (prefer env variables for the secret, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session cookie secret (prefer env)")
	fs.StringVar(&cfg.SessionName, "session-name", "", "Session cookie name")
	fs.DurationVar(&cfg.SessionMaxAge, "session-max-age", 0, "Session cookie max age")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", defaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = postgresURLFromParts()
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d, DATABASE_URL or DB_HOST/DB_USER/DB_PASS/DB_NAME)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = inferDatabaseType(cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, fmt.Errorf("invalid database type %q (expected sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.MaxConns == 0 {
		maxConns, err := envInt("DB_MAX_CONNS", defaultMaxConns)
		if err != nil {
			return Config{}, err
		}
		cfg.MaxConns = maxConns
	}
	if cfg.MaxConns < 1 {
		return Config{}, errors.New("max connections must be at least 1")
	}

	// Secret - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = firstEnv("SESSION_SECRET", "SESS_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if cfg.SessionName == "" {
		cfg.SessionName = firstEnv("SESSION_NAME", "SESS_NAME")
	}
	if cfg.SessionName == "" {
		cfg.SessionName = defaultSessionName
	}

	if cfg.SessionMaxAge == 0 {
		if raw := os.Getenv("SESSION_MAX_AGE"); raw != "" {
			maxAge, err := time.ParseDuration(raw)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_MAX_AGE env variable")
			}
			cfg.SessionMaxAge = maxAge
		} else {
			cfg.SessionMaxAge = defaultSessionMaxAge
		}
	}

	if cfg.StaticDir == "" {
		cfg.StaticDir = os.Getenv("STATIC_DIR")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Production = os.Getenv("APP_ENV") == "production"

	return cfg, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// postgresURLFromParts builds a connection string from DB_HOST, DB_USER,
// DB_PASS and DB_NAME. Returns "" when DB_HOST is not set.
func postgresURLFromParts() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     host,
		Path:     "/" + os.Getenv("DB_NAME"),
		RawQuery: "sslmode=disable",
	}
	if user := os.Getenv("DB_USER"); user != "" {
		if pass := os.Getenv("DB_PASS"); pass != "" {
			u.User = url.UserPassword(user, pass)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}

func inferDatabaseType(databaseURL string) string {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}
