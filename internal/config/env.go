package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// LoadDotEnv reads a .env file into the process environment, if present.
// Variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// loadFromEnv overrides configuration with environment variables.
// Each section is processed without a prefix so the variable names are
// exactly the envconfig tags (PORT, MONGO_URI, ...). Unset variables leave
// the file or default value in place.
func loadFromEnv(config *Config) error {
	sections := []interface{}{
		&config.Server,
		&config.Store,
		&config.Logging,
		&config.Seed,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return err
		}
	}
	return nil
}
