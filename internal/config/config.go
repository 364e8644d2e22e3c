// internal/config/config.go
//
// Runtime configuration.
// Sources, lowest to highest precedence:
//   1. Defaults (Default()).
//   2. A YAML file: --config, or ./kennzeichen.yaml when present.
//   3. Environment variables, plain upper-case key names (PORT, LOG_LEVEL,
//      WORDS_FILE, ...). A .env file in the working directory is loaded
//      into the environment first (godotenv), without overriding.
//   4. Command-line flags bound with BindPFlag.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/TVLuke/kennzeichen-buch/internal/puzzle"
	"github.com/TVLuke/kennzeichen-buch/internal/segment"
	"github.com/TVLuke/kennzeichen-buch/internal/store"
)

// FileName is the config file looked up in the working directory.
const FileName = "kennzeichen"

// Config is the complete configuration.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "auto", "console" or "json"
	LogFile   string `mapstructure:"log_file"`   // empty: stderr only

	Port string `mapstructure:"port"`

	WordsFile  string `mapstructure:"words_file"` // empty: embedded list
	CodesFile  string `mapstructure:"codes_file"` // empty: embedded lexicon
	OutputFile string `mapstructure:"output_file"`
	DBPath     string `mapstructure:"db_path"` // empty: no archive

	MinWordLen       int      `mapstructure:"min_word_len"`
	MaxWordLen       int      `mapstructure:"max_word_len"`
	MinCodes         int      `mapstructure:"min_codes"`
	ExcludedDigraphs []string `mapstructure:"excluded_digraphs"`

	SelectCount int    `mapstructure:"select_count"`
	SelectSalt  string `mapstructure:"select_salt"`
	CacheSize   int    `mapstructure:"cache_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "auto",
		Port:             "5175",
		OutputFile:       store.DefaultOutputFile,
		MinWordLen:       puzzle.DefaultMinWordLen,
		MaxWordLen:       puzzle.DefaultMaxWordLen,
		MinCodes:         puzzle.DefaultMinCodes,
		ExcludedDigraphs: []string{},
		SelectCount:      3,
		SelectSalt:       "local_dev_salt",
		CacheSize:        segment.DefaultCacheSize,
	}
}

// SetDefaults registers Default() with v. Every key needs a default so
// that AutomaticEnv picks it up during Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("port", d.Port)
	v.SetDefault("words_file", d.WordsFile)
	v.SetDefault("codes_file", d.CodesFile)
	v.SetDefault("output_file", d.OutputFile)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("min_word_len", d.MinWordLen)
	v.SetDefault("max_word_len", d.MaxWordLen)
	v.SetDefault("min_codes", d.MinCodes)
	v.SetDefault("excluded_digraphs", d.ExcludedDigraphs)
	v.SetDefault("select_count", d.SelectCount)
	v.SetDefault("select_salt", d.SelectSalt)
	v.SetDefault("cache_size", d.CacheSize)
}

// Load reads all sources into v and returns the validated Config. An
// explicit cfgFile must exist; the implicit ./kennzeichen.yaml is optional.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	SetDefaults(v)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.MinWordLen < 1 {
		errs = append(errs, fmt.Errorf("min_word_len must be >= 1, got %d", c.MinWordLen))
	}
	if c.MaxWordLen < c.MinWordLen {
		errs = append(errs, fmt.Errorf("max_word_len (%d) must be >= min_word_len (%d)", c.MaxWordLen, c.MinWordLen))
	}
	if c.MinCodes < 1 {
		errs = append(errs, fmt.Errorf("min_codes must be >= 1, got %d", c.MinCodes))
	}
	if c.SelectCount < 1 {
		errs = append(errs, fmt.Errorf("select_count must be >= 1, got %d", c.SelectCount))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache_size must be >= 0, got %d", c.CacheSize))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "auto", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be auto, console or json, got %q", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Policy builds the puzzle policy described by c.
func (c *Config) Policy() puzzle.Policy {
	return puzzle.Policy{
		MinWordLen: c.MinWordLen,
		MaxWordLen: c.MaxWordLen,
		MinCodes:   c.MinCodes,
		Exclude:    puzzle.ExcludeDigraphs(c.ExcludedDigraphs...),
	}
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
