// Package config loads the optional YAML configuration file of the test harness.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jokeapi-tests/jokeapi-contract-tests/logging"

	"github.com/drone/envsubst"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultBaseURL         = "https://v2.jokeapi.dev"
	DefaultTimeout         = 60 * time.Second
	DefaultMaxResponseTime = 10 * time.Second
	DefaultSlowThreshold   = 2 * time.Second
	DefaultLogLevel        = "info"

	LogLevelEnvVar = logging.LevelEnvVar
)

type fileConfig struct {
	BaseURL         string `yaml:"baseURL"`
	Timeout         string `yaml:"timeout"`
	MaxResponseTime string `yaml:"maxResponseTime"`
	ExcelReport     string `yaml:"excelReport"`
	Definitions     string `yaml:"definitions"`
	SlowThreshold   string `yaml:"slowThreshold"`
	LogLevel        string `yaml:"logLevel"`
}

type Config struct {
	BaseURL         string
	Timeout         time.Duration
	MaxResponseTime time.Duration
	ExcelReport     string
	Definitions     string
	SlowThreshold   time.Duration
	LogLevel        string
}

// Default returns the configuration used when there is no configuration file. The log
// level comes from the environment if it is set there.
func Default() Config {
	level := os.Getenv(LogLevelEnvVar)
	if level == "" {
		level = DefaultLogLevel
	}
	return Config{
		BaseURL:         DefaultBaseURL,
		Timeout:         DefaultTimeout,
		MaxResponseTime: DefaultMaxResponseTime,
		SlowThreshold:   DefaultSlowThreshold,
		LogLevel:        level,
	}
}

// Load reads a YAML configuration file on top of Default. References to environment
// variables in the form ${NAME} are substituted first. A relative definitions path is
// resolved against the directory of the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	subst, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("unable to substitute variables in %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.UnmarshalStrict([]byte(subst), &fc); err != nil {
		return nil, fmt.Errorf("invalid configuration file %s: %w", path, err)
	}

	cfg := Default()
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	cfg.ExcelReport = fc.ExcelReport
	if fc.Definitions != "" {
		cfg.Definitions = fc.Definitions
		if !filepath.IsAbs(cfg.Definitions) {
			cfg.Definitions = filepath.Join(filepath.Dir(path), cfg.Definitions)
		}
	}

	for _, d := range []struct {
		name  string
		value string
		dest  *time.Duration
	}{
		{"timeout", fc.Timeout, &cfg.Timeout},
		{"maxResponseTime", fc.MaxResponseTime, &cfg.MaxResponseTime},
		{"slowThreshold", fc.SlowThreshold, &cfg.SlowThreshold},
	} {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid %s %q in %s", d.name, d.value, path)
		}
		*d.dest = parsed
	}
	return &cfg, nil
}

// LoadEnvFile sets environment variables from a .env file, if there is one. Variables
// that are already set are not changed.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}
