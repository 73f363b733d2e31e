// Package config loads the settings of the colframe tools.
package config

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/miretskiy/colframe/frame"
)

type Config struct {
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Join struct {
		LeftSuffix  string `mapstructure:"left_suffix"`
		RightSuffix string `mapstructure:"right_suffix"`
	} `mapstructure:"join"`

	Display struct {
		MaxRows int `mapstructure:"max_rows"`
	} `mapstructure:"display"`

	Sample struct {
		Seed uint64 `mapstructure:"seed"`
	} `mapstructure:"sample"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("join.left_suffix", frame.DefaultLeftSuffix)
	v.SetDefault("join.right_suffix", frame.DefaultRightSuffix)
	v.SetDefault("display.max_rows", frame.DefaultMaxDisplayRows)
	v.SetDefault("sample.seed", frame.DefaultSampleSeed)
	v.SetEnvPrefix("COLFRAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if cfg.Display.MaxRows < 0 {
		return nil, errors.Errorf("display.max_rows must not be negative, got %d", cfg.Display.MaxRows)
	}
	return &cfg, nil
}

// Default returns the built-in settings with COLFRAME_* environment
// overrides applied.
func Default() (*Config, error) {
	return unmarshal(newViper())
}

// Load reads a YAML config file. Keys it omits keep their defaults and
// COLFRAME_* environment variables override both.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return unmarshal(v)
}

// SlogLevel parses log.level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.Wrapf(err, "log.level %q", c.Log.Level)
	}
	return l, nil
}

// JoinSpec applies the configured suffixes to spec.
func (c *Config) JoinSpec(spec frame.JoinSpec) frame.JoinSpec {
	return spec.WithSuffixes(c.Join.LeftSuffix, c.Join.RightSuffix)
}
