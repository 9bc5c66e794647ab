package log

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a logger setup as read from a log config file.
//
//	level: debug
//	format: json
//	filter: "*:roster,laptime"
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Filter string `yaml:"filter"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid log config: %w", err)
	}
	return cfg, nil
}

// Build creates the logger described by c.
// An empty or unknown level falls back to defaultLevel.
func (c *Config) Build(w io.Writer, defaultLevel Level, opts ...Option) (*Logger, error) {
	level := defaultLevel
	if c.Level != "" {
		lvl, err := ParseLevel(c.Level)
		if err != nil {
			return nil, err
		}
		level = lvl
	}
	var logger *Logger
	switch c.Format {
	case "json":
		logger = New(w, level, opts...)
	case "", "text":
		logger = DevLogger(w, level, opts...)
	default:
		return nil, fmt.Errorf("unknown log format %q", c.Format)
	}
	return logger.WithFilter(c.Filter)
}
