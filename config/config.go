package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
)

type Config struct {
	Showdeck ShowdeckConfig
	Pushover PushoverConfig
	TVMaze   TVMazeConfig
}

type ShowdeckConfig struct {
	BackgroundJobsEnabled bool   `env:"BACKGROUND_JOBS_ENABLED"`
	DbPath                string `env:"DB_PATH"`
	LogLevel              string `env:"LOG_LEVEL"`
	Port                  string `env:"PORT"`
}

type PushoverConfig struct {
	Recipient string `env:"PUSHOVER_RECIPIENT"`
	Token     string `env:"PUSHOVER_TOKEN"`
}

type TVMazeConfig struct {
	BaseURL string `env:"TVMAZE_BASE_URL"`
}

// Load feeds the struct from the environment. godotenv has already pulled
// any .env file into the environment by the time this runs.
func Load() (Config, error) {
	var c Config
	if err := config.New().AddFeeder(feeder.Env{}).AddStruct(&c).Feed(); err != nil {
		return c, err
	}
	if c.Showdeck.DbPath == "" {
		c.Showdeck.DbPath = "showdeck.db"
	}
	if c.Showdeck.Port == "" {
		c.Showdeck.Port = "8080"
	}
	if _, ok := os.LookupEnv("BACKGROUND_JOBS_ENABLED"); !ok {
		c.Showdeck.BackgroundJobsEnabled = true
	}
	return c, nil
}

func (c *Config) GetLogLevel() slog.Leveler {
	logLevel := strings.ToLower(c.Showdeck.LogLevel)
	if logLevel == "error" {
		return slog.LevelError
	}
	if logLevel == "warning" {
		return slog.LevelWarn
	}
	if logLevel == "info" {
		return slog.LevelInfo
	}
	if logLevel == "debug" {
		return slog.LevelDebug
	}
	// default to info if unknown
	slog.With(slog.String("log_level", logLevel)).Info("Received invalid log level. Defaulting to INFO.")
	return slog.LevelInfo
}
