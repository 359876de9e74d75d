package cmd

import (
	"os"

	"github.com/jackc/pgcopy"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the file read with --config. Flags override its values.
type Config struct {
	Schema     string             `yaml:"schema"`
	LogLevel   string             `yaml:"log_level"`
	FlushBytes int                `yaml:"flush_bytes"`
	Copy       pgcopy.CopyOptions `yaml:"copy"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "warn",
		FlushBytes: 65536,
		Copy:       pgcopy.CopyOptions{Format: "binary"},
	}
}

// LoadConfig reads path over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "parse config file")
	}
	if config.Copy.Format == "" {
		config.Copy.Format = "binary"
	}
	return config, nil
}

func (c *Config) schema() (pgcopy.Schema, error) {
	if c.Schema == "" {
		return nil, errors.New("no schema given, use --schema or the schema config key")
	}
	return pgcopy.ParseSchema(c.Schema)
}

func (c *Config) logLevel() (pgcopy.LogLevel, error) {
	level, err := pgcopy.LogLevelFromString(c.LogLevel)
	if err != nil {
		return 0, errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return level, nil
}

// binaryOnly rejects COPY options this tool cannot honor.
func binaryOnly(format pgcopy.Format) error {
	if format != pgcopy.FormatBinary {
		return errors.Errorf("FORMAT %s is not supported, only binary", format)
	}
	return nil
}
