// Package config loads runtime settings from the environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the full runtime configuration.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	CORS      CORSConfig
	Log       LogConfig
	Schedule  ScheduleConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
}

// StoreConfig selects the backing document store.
type StoreConfig struct {
	Driver   string `envconfig:"STORE_DRIVER" default:"mongo"` // mongo | memory
	MongoURI string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database string `envconfig:"MONGO_DB" default:"prevmaint"`
}

type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"` // text | json
}

type ScheduleConfig struct {
	HorizonMonths int           `envconfig:"SCHEDULE_HORIZON_MONTHS" default:"12"`
	TimeZone      string        `envconfig:"SCHEDULE_TIMEZONE" default:"Local"`
	TopUpInterval time.Duration `envconfig:"SCHEDULE_TOPUP_INTERVAL" default:"0s"`
}

type RateLimitConfig struct {
	Requests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"0"`
	Window   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// Load reads envFile (if it exists) into the process environment and then
// processes the environment into a Config.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values envconfig cannot express.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Driver) {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Schedule.HorizonMonths < 1 {
		return fmt.Errorf("SCHEDULE_HORIZON_MONTHS must be at least 1, got %d", c.Schedule.HorizonMonths)
	}
	if _, err := c.Schedule.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the time zone used to decide what "today" is.
func (s ScheduleConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_TIMEZONE %q: %w", s.TimeZone, err)
	}
	return loc, nil
}

// NewTestConfig returns a configuration backed by the in-memory store.
func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{Port: "8889", RequestTimeout: 5 * time.Second},
		Store:  StoreConfig{Driver: "memory", Database: "prevmaint_test"},
		CORS:   CORSConfig{Origins: []string{"*"}},
		Log:    LogConfig{Level: "error", Format: "text"},
		Schedule: ScheduleConfig{
			HorizonMonths: 12,
			TimeZone:      "UTC",
		},
		RateLimit: RateLimitConfig{Window: time.Minute},
	}
}
