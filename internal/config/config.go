package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/thechriswalker/go-electionguard/crypto/dlog"
	"github.com/thechriswalker/go-electionguard/crypto/precompute"
)

// Config is everything the command line tools read from their TOML file. The
// group parameters are constants and cannot be configured.
type Config struct {
	LogLevel   string           `toml:"log_level"`
	DLog       DLogConfig       `toml:"dlog"`
	Precompute PrecomputeConfig `toml:"precompute"`
}

type DLogConfig struct {
	// MaxExponent bounds the discrete log search, i.e. the largest tally that
	// can be decrypted.
	MaxExponent uint64 `toml:"max_exponent"`
	// Database is the SQLite snapshot of the table, empty for none.
	Database string `toml:"database"`
}

type PrecomputeConfig struct {
	BufferSize int `toml:"buffer_size"`
	// MetricsAddr, when set, serves the precompute metrics over http.
	MetricsAddr string `toml:"metrics_addr"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		DLog: DLogConfig{
			MaxExponent: dlog.DefaultMaxExponent,
		},
		Precompute: PrecomputeConfig{
			BufferSize: precompute.DefaultSize,
		},
	}
}

// Load reads the file at path over the defaults. An empty path gives the
// defaults. Unknown keys are an error, as they are almost always typos.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Save writes the configuration as TOML.
func (c *Config) Save(path string) error {
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer fd.Close()
	return toml.NewEncoder(fd).Encode(c)
}

func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.DLog.MaxExponent == 0 {
		return fmt.Errorf("dlog.max_exponent must be positive")
	}
	if c.Precompute.BufferSize <= 0 {
		return fmt.Errorf("precompute.buffer_size must be positive")
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
