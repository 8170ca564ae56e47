// Package config loads goregression settings from defaults, an optional
// yaml file and GOREGRESSION_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/goregression/pairs"
	"github.com/sartorproj/goregression/stats"
)

// Config holds the defaults applied to every command.
type Config struct {
	// Output is the report format: "json" or "yaml".
	Output string `mapstructure:"output" yaml:"output"`
	// Significance is the level used for stationarity verdicts.
	Significance float64 `mapstructure:"significance" yaml:"significance"`

	ADFRegression string `mapstructure:"adf_regression" yaml:"adf_regression"`
	ADFMaxLag     int    `mapstructure:"adf_max_lag" yaml:"adf_max_lag"`
	ADFAutoLag    bool   `mapstructure:"adf_autolag" yaml:"adf_autolag"`

	HalfLifeMax    float64 `mapstructure:"halflife_max" yaml:"halflife_max"`
	ZScoreLookback int     `mapstructure:"zscore_lookback" yaml:"zscore_lookback"`
	EntryZ         float64 `mapstructure:"entry_z" yaml:"entry_z"`
	ExitZ          float64 `mapstructure:"exit_z" yaml:"exit_z"`

	CSVDelimiter string `mapstructure:"csv_delimiter" yaml:"csv_delimiter"`
}

const (
	envPrefix = "GOREGRESSION"
	dirName   = ".goregression"
)

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. An explicit cfgFile must be
// readable; the default file is optional.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("output", "json")
	v.SetDefault("significance", 0.05)
	v.SetDefault("adf_regression", stats.RegressionConstant)
	v.SetDefault("adf_max_lag", 0)
	v.SetDefault("adf_autolag", true)
	v.SetDefault("halflife_max", float64(pairs.DefaultMaxHalfLife))
	v.SetDefault("zscore_lookback", 20)
	v.SetDefault("entry_z", 2.0)
	v.SetDefault("exit_z", 0.5)
	v.SetDefault("csv_delimiter", ",")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save writes c as yaml to cfgFile, or to ~/.goregression/config.yaml
// when cfgFile is empty, creating the directory if necessary.
func Save(c *Config, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, dirName, "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid output %q (use json or yaml)", c.Output)
	}
	switch c.Significance {
	case 0.01, 0.05, 0.10:
	default:
		return fmt.Errorf("invalid significance %v (use 0.01, 0.05 or 0.10)", c.Significance)
	}
	switch c.ADFRegression {
	case stats.RegressionNone, stats.RegressionConstant, stats.RegressionConstantTrend:
	default:
		return fmt.Errorf("invalid adf_regression %q (use n, c or ct)", c.ADFRegression)
	}
	if utf8.RuneCountInString(c.CSVDelimiter) != 1 {
		return fmt.Errorf("invalid csv_delimiter %q (want a single character)", c.CSVDelimiter)
	}
	return nil
}

// Delimiter returns the CSV field separator.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return r
}

// ADFOptions returns the configured ADF test options.
func (c *Config) ADFOptions() stats.ADFOptions {
	return stats.ADFOptions{
		MaxLag:       c.ADFMaxLag,
		Regression:   c.ADFRegression,
		AutoLag:      c.ADFAutoLag,
		Significance: c.Significance,
	}
}

// PairsOptions returns the configured pair analysis options.
func (c *Config) PairsOptions() pairs.Options {
	opts := pairs.DefaultOptions()
	opts.ZScoreLookback = c.ZScoreLookback
	opts.EntryZ = c.EntryZ
	opts.ExitZ = c.ExitZ
	opts.MaxHalfLife = c.HalfLifeMax
	opts.ADF = c.ADFOptions()
	return opts
}
