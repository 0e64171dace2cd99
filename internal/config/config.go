// Package config loads the optional YAML configuration file for a probe
// run: extra SQL dialects, category/test exclusions, and an advisory
// connect timeout. Grounded on muster's internal/context/storage.go for
// the load-or-default yaml.v3 idiom.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the parsed shape of the --config YAML file. The zero Config is
// a valid, empty configuration: every field is optional.
type Config struct {
	// Dialects are extra multi-dialect SQL probe strings appended ahead of
	// the built-in fallback list (§4.8).
	Dialects []string `yaml:"dialects"`

	// SkipCategories names categories excluded from the run entirely.
	SkipCategories []string `yaml:"skip_categories"`

	// SkipTests names individual tests excluded from the run, identified
	// by their TestResult.TestName.
	SkipTests []string `yaml:"skip_tests"`

	// ConnectTimeout is informational only (§5: the harness offers no
	// real timeout); it is parsed but not read anywhere else: no report
	// shows it and it is never wired to a context deadline.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// Load reads and parses path. A path that does not exist is not an error:
// it returns an empty Config, since the config file is optional.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return &cfg, nil
}

// SkipsCategory reports whether name is listed in SkipCategories.
func (c *Config) SkipsCategory(name string) bool {
	return c.contains(c.SkipCategories, name)
}

// SkipsTest reports whether testName is listed in SkipTests.
func (c *Config) SkipsTest(testName string) bool {
	return c.contains(c.SkipTests, testName)
}

func (c *Config) contains(list []string, name string) bool {
	if c == nil {
		return false
	}
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
