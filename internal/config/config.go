package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

// Config holds the server settings. Values come from the environment (and a
// .env file when present) and may be overridden by command-line flags.
type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	GinMode       string `env:"GIN_MODE" envDefault:"debug"`
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"fr"`
	MessagesDir   string `env:"MESSAGES_DIR"`
	TemplatesGlob string `env:"TEMPLATES_GLOB" envDefault:"templates/*"`

	DatabasePath  string `env:"DATABASE_PATH" envDefault:"portfolio.db"`
	TrackVisitors bool   `env:"TRACK_VISITORS" envDefault:"true"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"pretty"`
}

// Load parses the environment, then applies flags from args.
func Load(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := pflag.NewFlagSet("portfolio", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Port, "port", "p", cfg.Port, "HTTP listen port")
	fs.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "Locale served when negotiation finds no match")
	fs.StringVar(&cfg.MessagesDir, "messages", cfg.MessagesDir, "Directory of <locale>/*.json catalogs; embedded catalogs when empty")
	fs.StringVar(&cfg.TemplatesGlob, "templates", cfg.TemplatesGlob, "Glob of HTML templates")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "SQLite database path for visitor tracking")
	fs.BoolVar(&cfg.TrackVisitors, "track-visitors", cfg.TrackVisitors, "Record privacy-conscious visitor metrics")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	return cfg, nil
}
