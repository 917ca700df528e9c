// Package config loads tsumiki settings with file/env/default
// precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Algorithm names accepted in config.
const (
	AlgorithmWords     = "words"
	AlgorithmSentences = "sentences"
)

// Config is the full runtime configuration.
type Config struct {
	// DBPath is the sqlite database location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
	// Algorithm selects the scheduler: "words" or "sentences".
	Algorithm string `mapstructure:"algorithm" yaml:"algorithm"`
	// DailyNewLimit caps cards learned per day.
	DailyNewLimit int `mapstructure:"daily_new_limit" yaml:"daily_new_limit"`
	// MaxLearningCards caps cards concurrently on the learning steps.
	MaxLearningCards int `mapstructure:"max_learning_cards" yaml:"max_learning_cards"`
	// MaxNewPerSentence is the i+N display threshold: a new sentence with
	// more unknown words than this is held back in favor of suggestions.
	MaxNewPerSentence int `mapstructure:"max_new_per_sentence" yaml:"max_new_per_sentence"`
	// MaxSuggestions caps the suggestion list length.
	MaxSuggestions int `mapstructure:"max_suggestions" yaml:"max_suggestions"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:            "tsumiki.db",
		Algorithm:         AlgorithmWords,
		DailyNewLimit:     50,
		MaxLearningCards:  20,
		MaxNewPerSentence: 1,
		MaxSuggestions:    5,
	}
}

// Load reads configuration with the usual precedence: explicit file (if
// given), then ./tsumiki.yaml, then TSUMIKI_* environment variables, then
// defaults. A missing config file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("algorithm", def.Algorithm)
	v.SetDefault("daily_new_limit", def.DailyNewLimit)
	v.SetDefault("max_learning_cards", def.MaxLearningCards)
	v.SetDefault("max_new_per_sentence", def.MaxNewPerSentence)
	v.SetDefault("max_suggestions", def.MaxSuggestions)

	v.SetEnvPrefix("TSUMIKI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("tsumiki")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine can't run with.
func (c Config) Validate() error {
	if c.Algorithm != AlgorithmWords && c.Algorithm != AlgorithmSentences {
		return fmt.Errorf("config: unknown algorithm %q", c.Algorithm)
	}
	if c.DailyNewLimit < 0 || c.MaxLearningCards < 0 {
		return fmt.Errorf("config: limits must be non-negative")
	}
	return nil
}

// WriteDefault writes the default configuration as yaml, for first-run
// setup.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
