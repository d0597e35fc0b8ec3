package cli

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix is the environment variable prefix: DEMONAX_DATABASE,
// DEMONAX_LOG_FILE, DEMONAX_WORKERS.
const envPrefix = "demonax"

// DefaultDatabase is where the store lives when no flag, environment
// variable or config file says otherwise.
const DefaultDatabase = "./demonax.sqlite"

// Config holds the resolved global settings. Precedence is flags over
// environment over config file over defaults.
type Config struct {
	Database string `yaml:"database"`
	LogFile  string `yaml:"log_file" envconfig:"LOG_FILE"`
	Workers  int    `yaml:"workers"`
}

// LoadConfig reads the optional YAML config at path (empty means none),
// then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{Database: DefaultDatabase}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return cfg, nil
}
