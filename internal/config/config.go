// Package config loads application settings from an optional YAML file and
// STATICA_* environment variables, on top of built-in defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/rokuro32/staticamaster/internal/logging"
	"github.com/rokuro32/staticamaster/internal/validation"
)

// EnvPrefix prefixes every environment override, e.g.
// STATICA_TOLERANCE_REQUIRE_CORRECT_UNITS=true.
const EnvPrefix = "STATICA"

type Config struct {
	Tolerance validation.Config `mapstructure:"tolerance"`
	Log       logging.Config    `mapstructure:"log"`
	DB        DBConfig          `mapstructure:"db"`
	Bank      BankConfig        `mapstructure:"bank"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// BankConfig points at an on-disk question bank. An empty Dir selects the
// bank compiled into the binary.
type BankConfig struct {
	Dir string `mapstructure:"dir"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Tolerance: validation.DefaultConfig(),
		Log:       logging.DefaultConfig(),
	}
}

// Load reads the YAML file at path, when path is not empty, and applies
// environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// STATICA_DB is the short variable the store honors too. It outranks the
	// file and STATICA_DB_PATH.
	if p := os.Getenv(EnvPrefix + "_DB"); p != "" {
		v.Set("db.path", p)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the tolerance policy.
func (c *Config) Validate() error {
	if err := c.Tolerance.Validate(); err != nil {
		return fmt.Errorf("tolerance: %w", err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d Config) {
	t := d.Tolerance
	v.SetDefault("tolerance.default_numeric_tolerance", t.DefaultTolerance)
	v.SetDefault("tolerance.default_tolerance_type", string(t.DefaultToleranceType))
	v.SetDefault("tolerance.require_correct_units", t.RequireCorrectUnits)
	v.SetDefault("tolerance.enable_partial_credit", t.EnablePartialCredit)
	v.SetDefault("tolerance.dcl_weight", t.DCLWeight)
	v.SetDefault("tolerance.equation_weight", t.EquationWeight)
	v.SetDefault("tolerance.calculation_weight", t.CalculationWeight)
	v.SetDefault("tolerance.dcl_position_tolerance", t.DCLPositionTolerance)
	v.SetDefault("tolerance.dcl_angle_tolerance", t.DCLAngleTolerance)
	v.SetDefault("tolerance.equation_extra_penalty", t.EquationExtraPenalty)
	v.SetDefault("tolerance.multi_step_pass_threshold", t.MultiStepPassThreshold)
	v.SetDefault("tolerance.mistake_match_tolerance", t.MistakeMatchTolerance)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)

	v.SetDefault("db.path", d.DB.Path)
	v.SetDefault("bank.dir", d.Bank.Dir)
}
