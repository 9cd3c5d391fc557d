package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging  Logging  `yaml:"logging"`
	FreePort FreePort `yaml:"freeport"`
}

type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// FreePort bounds the ports probed by the freeport command. A zero From lets
// the OS pick any free port.
type FreePort struct {
	Host string `yaml:"host"`
	From int    `yaml:"from"`
	To   int    `yaml:"to"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file, expanding ${VAR} references
// from the environment. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.FreePort.Host == "" {
		c.FreePort.Host = "127.0.0.1"
	}
	if c.FreePort.From > 0 && c.FreePort.To == 0 {
		c.FreePort.To = c.FreePort.From
	}
}

func (c *Config) validate() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}

	fp := c.FreePort
	if fp.From < 0 || fp.To < 0 || fp.From > 65535 || fp.To > 65535 || fp.To < fp.From {
		return fmt.Errorf("invalid freeport range %d-%d", fp.From, fp.To)
	}
	return nil
}
