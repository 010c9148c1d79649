// Package config reads the application settings from CONTACTS_ prefixed environment
// variables. A .env file in the working directory is loaded first if it exists.
//
// The first underscore after the prefix separates the section from the key, so
// CONTACTS_SERVER_PORT ends up in Server.Port and CONTACTS_DATABASE_MAX_OPEN_CONNS in
// Database.MaxOpenConns.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CONTACTS_"

// Config is the root configuration object.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Database DatabaseConfig `koanf:"database"`
	Mongo    MongoConfig    `koanf:"mongo"`
	Log      LogConfig      `koanf:"log"`
	Flash    FlashConfig    `koanf:"flash"`
}

// ServerConfig groups the HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port         int    `koanf:"port"          validate:"min=1,max=65535"`
	ReadTimeout  int    `koanf:"read_timeout"  validate:"min=0"`
	WriteTimeout int    `koanf:"write_timeout" validate:"min=0"`
	IdleTimeout  int    `koanf:"idle_timeout"  validate:"min=0"`
	GinMode      string `koanf:"gin_mode"      validate:"oneof=debug release test"`
	GinLogging   string `koanf:"gin_logging"   validate:"oneof=on off"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string `koanf:"backend" validate:"oneof=mongo mysql memory"`
}

// DatabaseConfig contains the MySQL connection parameters.
type DatabaseConfig struct {
	Host            string `koanf:"host"`
	User            string `koanf:"user"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name"`
	MaxOpenConns    int    `koanf:"max_open_conns"    validate:"min=0"`
	MaxIdleConns    int    `koanf:"max_idle_conns"    validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
}

// MongoConfig contains the MongoDB connection parameters.
type MongoConfig struct {
	URI            string `koanf:"uri"`
	Database       string `koanf:"database"        validate:"required"`
	Collection     string `koanf:"collection"      validate:"required"`
	ConnectTimeout int    `koanf:"connect_timeout" validate:"min=1"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=console json"`
}

// FlashConfig controls the cookie that carries one-shot messages between a redirect and the
// next page render.
type FlashConfig struct {
	Cookie string `koanf:"cookie"  validate:"required"`
	MaxAge int    `koanf:"max_age" validate:"min=1"`
}

// Default returns the configuration used when no environment variables are set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         3000,
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  60,
			GinMode:      "release",
			GinLogging:   "on",
		},
		Store: StoreConfig{Backend: "mongo"},
		Database: DatabaseConfig{
			Host:            "localhost:3306",
			Name:            "contacts",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Mongo: MongoConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "contacts",
			Collection:     "contacts",
			ConnectTimeout: 10,
		},
		Log:   LogConfig{Level: "info", Format: "console"},
		Flash: FlashConfig{Cookie: "flash", MaxAge: 60},
	}
}

// Load reads the configuration from the process environment on top of the defaults and
// validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}
	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}
	cfg.Server.GinLogging = strings.ToLower(cfg.Server.GinLogging)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags and the fields that are required by the chosen backend.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	switch c.Store.Backend {
	case "mysql":
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			return fmt.Errorf("config validation failed: mysql backend needs database host, user and name")
		}
	case "mongo":
		if c.Mongo.URI == "" {
			return fmt.Errorf("config validation failed: mongo backend needs a uri")
		}
	}
	return nil
}

// envKey maps CONTACTS_SERVER_READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// Addr is the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func (s ServerConfig) ReadTimeoutDuration() time.Duration  { return seconds(s.ReadTimeout) }
func (s ServerConfig) WriteTimeoutDuration() time.Duration { return seconds(s.WriteTimeout) }
func (s ServerConfig) IdleTimeoutDuration() time.Duration  { return seconds(s.IdleTimeout) }

func (d DatabaseConfig) ConnMaxLifetimeDuration() time.Duration { return seconds(d.ConnMaxLifetime) }

func (m MongoConfig) ConnectTimeoutDuration() time.Duration { return seconds(m.ConnectTimeout) }
