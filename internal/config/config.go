package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DefaultConfigPath is read when CONFIG_FILE is not set
const DefaultConfigPath = "configs/config.yaml"

// DefaultFrontendURL is the origin allowed by CORS when none is configured
const DefaultFrontendURL = "https://chimerical-pothos-5de83a.netlify.app"

// Config structure represents the application configuration
type Config struct {
	// Store waits (request, health, server selection timeouts) must be
	// shorter than WriteTimeout.
	Server struct {
		Port           string `yaml:"port" envconfig:"PORT"`
		Mode           string `yaml:"mode" envconfig:"SERVER_MODE"`
		FrontendURL    string `yaml:"frontend_url" envconfig:"FRONTEND_URL"`
		WriteTimeout   string `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
		RequestTimeout string `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
		HealthTimeout  string `yaml:"health_timeout" envconfig:"HEALTH_TIMEOUT"`
	} `yaml:"server"`

	Store struct {
		Driver                 string `yaml:"driver" envconfig:"STORE_DRIVER"`
		MongoURI               string `yaml:"mongo_uri" envconfig:"MONGO_URI"`
		MongoDatabase          string `yaml:"mongo_database" envconfig:"MONGO_DATABASE"`
		PostgresURL            string `yaml:"postgres_url" envconfig:"DATABASE_URL"`
		MaxConns               int    `yaml:"max_conns" envconfig:"DB_MAX_CONNS"`
		MinConns               int    `yaml:"min_conns" envconfig:"DB_MIN_CONNS"`
		ConnMaxLifetime        string `yaml:"conn_max_lifetime" envconfig:"DB_CONN_MAX_LIFETIME"`
		ConnectTimeout         string `yaml:"connect_timeout" envconfig:"DB_CONNECT_TIMEOUT"`
		ServerSelectionTimeout string `yaml:"server_selection_timeout" envconfig:"MONGO_SERVER_SELECTION_TIMEOUT"`
	} `yaml:"store"`

	Logging struct {
		Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
		Format string `yaml:"format" envconfig:"LOG_FORMAT"`
	} `yaml:"logging"`

	Seed struct {
		Enabled bool     `yaml:"enabled" envconfig:"SEED_ENABLED"`
		Courses []string `yaml:"courses" envconfig:"SEED_COURSES"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; defaults and environment are enough to run.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"
	config.Server.FrontendURL = DefaultFrontendURL
	config.Server.WriteTimeout = "10s"
	config.Server.RequestTimeout = "5s"
	config.Server.HealthTimeout = "2s"

	config.Store.Driver = DriverMongo
	config.Store.MongoURI = "mongodb://localhost:27017"
	config.Store.MaxConns = 20
	config.Store.MinConns = 2
	config.Store.ConnMaxLifetime = "1h"
	config.Store.ConnectTimeout = "10s"
	config.Store.ServerSelectionTimeout = "3s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Seed.Courses = []string{"Algebra", "Biology", "Chemistry"}
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return fmt.Errorf("server port is required")
	}

	config.Store.Driver = strings.ToLower(strings.TrimSpace(config.Store.Driver))
	switch config.Store.Driver {
	case DriverMongo:
		if config.Store.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo store")
		}
	case DriverPostgres:
		if config.Store.PostgresURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	if _, err := time.ParseDuration(config.Store.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime format: %w", err)
	}

	durations := []struct {
		name  string
		value string
	}{
		{name: "connect timeout", value: config.Store.ConnectTimeout},
		{name: "server selection timeout", value: config.Store.ServerSelectionTimeout},
		{name: "write timeout", value: config.Server.WriteTimeout},
		{name: "request timeout", value: config.Server.RequestTimeout},
		{name: "health timeout", value: config.Server.HealthTimeout},
	}
	parsed := make(map[string]time.Duration, len(durations))
	for _, d := range durations {
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("invalid %s format: %w", d.name, err)
		}
		if v <= 0 {
			return fmt.Errorf("%s must be positive", d.name)
		}
		parsed[d.name] = v
	}

	// Store waits must end before the response deadline.
	write := parsed["write timeout"]
	for _, name := range []string{"request timeout", "health timeout", "server selection timeout"} {
		if parsed[name] >= write {
			return fmt.Errorf("%s (%s) must be shorter than the write timeout (%s)", name, parsed[name], write)
		}
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}

// PrettyLogs reports whether logs should be human-readable
func (c *Config) PrettyLogs() bool {
	return strings.ToLower(c.Logging.Format) == "text"
}
