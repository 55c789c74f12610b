// Package config provides Viper-based configuration loading for the
// skirmish engine and its content registries.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ContentConfig holds the directories the YAML content registries load
// from. An empty directory means the built-in defaults for that content
// type are used instead.
type ContentConfig struct {
	// WeaponsDir holds weapon definition files.
	WeaponsDir string `mapstructure:"weapons_dir"`
	// SkillsDir holds skill definition files.
	SkillsDir string `mapstructure:"skills_dir"`
	// TerrainDir holds terrain definition files.
	TerrainDir string `mapstructure:"terrain_dir"`
	// RelicsDir holds relic definition files.
	RelicsDir string `mapstructure:"relics_dir"`
}

// EngineConfig holds the combat engine's balance knobs.
type EngineConfig struct {
	// FollowUpMargin is the attack-speed edge required for a natural
	// follow-up strike.
	FollowUpMargin int `mapstructure:"follow_up_margin"`
	// CritMultiplier scales a critical hit's damage.
	CritMultiplier int `mapstructure:"crit_multiplier"`
	// SupportRange is the Manhattan distance within which bonded allies
	// grant their bonuses.
	SupportRange int `mapstructure:"support_range"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Content ContentConfig `mapstructure:"content"`
	Engine  EngineConfig  `mapstructure:"engine"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEngine(c.Engine); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateEngine(e EngineConfig) error {
	var errs []string
	if e.FollowUpMargin < 1 {
		errs = append(errs, fmt.Sprintf("engine.follow_up_margin must be >= 1, got %d", e.FollowUpMargin))
	}
	if e.CritMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("engine.crit_multiplier must be >= 1, got %d", e.CritMultiplier))
	}
	if e.SupportRange < 1 {
		errs = append(errs, fmt.Sprintf("engine.support_range must be >= 1, got %d", e.SupportRange))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with EMBLEM_ prefix
	v.SetEnvPrefix("EMBLEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is supplied.
//
// Postcondition: The returned config passes Validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshalling pure defaults cannot fail: the keys mirror the struct.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("content.weapons_dir", "")
	v.SetDefault("content.skills_dir", "")
	v.SetDefault("content.terrain_dir", "")
	v.SetDefault("content.relics_dir", "")

	v.SetDefault("engine.follow_up_margin", 4)
	v.SetDefault("engine.crit_multiplier", 3)
	v.SetDefault("engine.support_range", 3)
}
