// internal/config/config.go
//
// Runtime configuration. A .env file in the working directory is loaded
// first (missing is fine), then the process environment is read. CLI flags
// may override individual fields afterwards.
//
//	PORT                  listen port (5175)
//	LOG_LEVEL             zerolog level (info)
//	LOG_FORMAT            "console" for human output, anything else JSON
//	DB_PATH               SQLite file (./data/wordlet.db)
//	JWT_SECRET            signs the anonymous player cookie
//	CLIENT_ORIGIN         CORS origin (http://localhost:5173)
//	PUBLIC_BASE_URL       where juego.html / resultado.html are served
//	DAILY_SALT            key for the word of the day
//	WORDS_FILE            word list replacing the embedded one
//	MIN_WORD_LENGTH / MAX_WORD_LENGTH
//	MIN_ATTEMPTS / MAX_ATTEMPTS / DEFAULT_ATTEMPTS
//	SESSION_IDLE_MINUTES  idle sessions are swept after this long (60)

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/robalobadob/wordlet/internal/game"
)

const devSecret = "dev_secret_change_me"

type Config struct {
	Port          string
	LogLevel      string
	LogFormat     string
	DBPath        string
	JWTSecret     string
	ClientOrigin  string
	PublicBaseURL string
	DailySalt     string
	WordsFile     string
	SessionIdle   time.Duration
	Game          game.Config
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	env := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}
	var errs []error
	num := func(k string, def int) int {
		v := env(k, "")
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
			return def
		}
		return n
	}

	g := game.DefaultConfig()
	g.MinWordLength = num("MIN_WORD_LENGTH", g.MinWordLength)
	g.MaxWordLength = num("MAX_WORD_LENGTH", g.MaxWordLength)
	g.MinAttempts = num("MIN_ATTEMPTS", g.MinAttempts)
	g.MaxAttempts = num("MAX_ATTEMPTS", g.MaxAttempts)
	g.DefaultAttempts = num("DEFAULT_ATTEMPTS", g.DefaultAttempts)

	c := Config{
		Port:          env("PORT", "5175"),
		LogLevel:      env("LOG_LEVEL", "info"),
		LogFormat:     env("LOG_FORMAT", "json"),
		DBPath:        env("DB_PATH", "./data/wordlet.db"),
		JWTSecret:     env("JWT_SECRET", devSecret),
		ClientOrigin:  env("CLIENT_ORIGIN", "http://localhost:5173"),
		PublicBaseURL: strings.TrimRight(env("PUBLIC_BASE_URL", "http://localhost:5173"), "/"),
		DailySalt:     env("DAILY_SALT", "local_dev_salt"),
		WordsFile:     env("WORDS_FILE", ""),
		SessionIdle:   time.Duration(num("SESSION_IDLE_MINUTES", 60)) * time.Minute,
		Game:          g,
	}
	if err := c.Validate(); err != nil {
		errs = append(errs, err)
	}
	return c, errors.Join(errs...)
}

// Validate checks the bounds are consistent.
func (c Config) Validate() error {
	g := c.Game
	switch {
	case g.MinWordLength < 1 || g.MinWordLength > g.MaxWordLength:
		return fmt.Errorf("word length bounds [%d, %d] are invalid", g.MinWordLength, g.MaxWordLength)
	case g.MinAttempts < 1 || g.MinAttempts > g.MaxAttempts:
		return fmt.Errorf("attempt bounds [%d, %d] are invalid", g.MinAttempts, g.MaxAttempts)
	case g.DefaultAttempts < g.MinAttempts || g.DefaultAttempts > g.MaxAttempts:
		return fmt.Errorf("default attempts %d outside [%d, %d]", g.DefaultAttempts, g.MinAttempts, g.MaxAttempts)
	case c.SessionIdle < 0:
		return errors.New("SESSION_IDLE_MINUTES must not be negative")
	}
	return nil
}

// InsecureSecret reports whether the JWT secret is the development default.
func (c Config) InsecureSecret() bool { return c.JWTSecret == devSecret }

// GameBase is the page game links point at.
func (c Config) GameBase() string { return c.PublicBaseURL + "/juego.html" }

// ResultBase is the page shared results point at.
func (c Config) ResultBase() string { return c.PublicBaseURL + "/resultado.html" }
