// Package app loads configuration and wires the dependency graph for
// the CLI.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"courier/internal/services/conversation"
)

const configFile = "config.yml"

// Duration is a time.Duration that unmarshals from YAML strings like
// "200ms" or "1s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// DeleteConfig holds the deletion pacing knobs. They are backend
// etiquette and therefore configuration, not constants.
type DeleteConfig struct {
	BatchSize    int      `yaml:"batch_size"`
	BatchPause   Duration `yaml:"batch_pause"`
	RetryBackoff Duration `yaml:"retry_backoff"`
}

// Config is the on-disk configuration under the home directory.
type Config struct {
	Homeserver string       `yaml:"homeserver"`
	LogLevel   string       `yaml:"log_level"`
	Delete     DeleteConfig `yaml:"delete"`

	// Home is the directory the config was loaded from; not serialized.
	Home string `yaml:"-"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Homeserver: "http://127.0.0.1:8080",
		LogLevel:   "info",
		Delete: DeleteConfig{
			BatchSize:    5,
			BatchPause:   Duration(200 * time.Millisecond),
			RetryBackoff: Duration(time.Second),
		},
	}
}

// LoadConfig reads home/config.yml over the defaults. A missing file is
// not an error; a malformed one is.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Home = home

	b, err := os.ReadFile(filepath.Join(home, configFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", configFile, err)
	}
	return cfg, nil
}

// Policy converts the delete configuration for the conversation service.
func (c Config) Policy() conversation.Policy {
	return conversation.Policy{
		DeleteBatchSize:  c.Delete.BatchSize,
		BatchPause:       time.Duration(c.Delete.BatchPause),
		RateLimitBackoff: time.Duration(c.Delete.RetryBackoff),
	}
}
