// Package config loads skirmish settings from an optional YAML file, SKIRMISH_* environment
// variables and built-in defaults, in that order of precedence after explicit overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"skirmish/pkg/game/unit"
)

// Run modes
const (
	ModeBattle    = "battle"
	ModeCalibrate = "calibrate"
	ModeAll       = "all"
)

// Config holds every setting of a run
type Config struct {
	Board       string            `mapstructure:"board"`
	Mode        string            `mapstructure:"mode"`
	Units       UnitsConfig       `mapstructure:"units"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Render      RenderConfig      `mapstructure:"render"`
	Locale      LocaleConfig      `mapstructure:"locale"`
	Report      ReportConfig      `mapstructure:"report"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// UnitsConfig sets the starting stats of every unit
type UnitsConfig struct {
	HitPoints   int `mapstructure:"hit_points"`
	AttackPower int `mapstructure:"attack_power"`
}

// CalibrationConfig tunes the attack power search.
// A StartPower of zero starts one above units.attack_power.
type CalibrationConfig struct {
	Faction    string `mapstructure:"faction"`
	StartPower int    `mapstructure:"start_power"`
	MaxPower   int    `mapstructure:"max_power"`
}

// RenderConfig controls the diagnostic board output
type RenderConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Every   int  `mapstructure:"every"`
}

// LocaleConfig points gotext at translated labels
type LocaleConfig struct {
	Dir      string `mapstructure:"dir"`
	Language string `mapstructure:"language"`
}

// ReportConfig controls the YAML report; an empty path disables it
type ReportConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig configures zap
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("board", "input.txt")
	v.SetDefault("mode", ModeAll)
	v.SetDefault("units.hit_points", unit.DefaultHitPoints)
	v.SetDefault("units.attack_power", unit.DefaultAttackPower)
	v.SetDefault("calibration.faction", "elf")
	v.SetDefault("calibration.start_power", 0)
	v.SetDefault("calibration.max_power", 0)
	v.SetDefault("render.enabled", false)
	v.SetDefault("render.every", 1)
	v.SetDefault("locale.dir", "")
	v.SetDefault("locale.language", "en_US")
	v.SetDefault("report.path", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads the config file at path (skipped when empty) and applies overrides on top.
// Override keys use the dotted form, e.g. "calibration.max_power".
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	for key, val := range overrides {
		v.Set(key, val)
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

// Validate checks values that viper cannot type-check
func (c *Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeBattle, ModeCalibrate, ModeAll:
	default:
		errs = append(errs, fmt.Errorf("mode %q: want %s, %s or %s", c.Mode, ModeBattle, ModeCalibrate, ModeAll))
	}
	if c.Board == "" {
		errs = append(errs, errors.New("board path is empty"))
	}
	if c.Units.HitPoints <= 0 {
		errs = append(errs, fmt.Errorf("units.hit_points %d must be positive", c.Units.HitPoints))
	}
	if c.Units.AttackPower < 0 {
		errs = append(errs, fmt.Errorf("units.attack_power %d must not be negative", c.Units.AttackPower))
	}
	if _, err := unit.ParseFaction(c.Calibration.Faction); err != nil {
		errs = append(errs, fmt.Errorf("calibration.faction: %w", err))
	}
	if c.Calibration.StartPower != 0 && c.Calibration.StartPower <= c.Units.AttackPower {
		errs = append(errs, fmt.Errorf("calibration.start_power %d must exceed units.attack_power %d", c.Calibration.StartPower, c.Units.AttackPower))
	}
	if c.Calibration.MaxPower < 0 {
		errs = append(errs, fmt.Errorf("calibration.max_power %d must not be negative", c.Calibration.MaxPower))
	}
	if c.Render.Every < 1 {
		errs = append(errs, fmt.Errorf("render.every %d must be at least 1", c.Render.Every))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q: want console or json", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Stats returns the configured starting unit stats
func (c *Config) Stats() unit.Stats {
	return unit.Stats{HitPoints: c.Units.HitPoints, AttackPower: c.Units.AttackPower}
}

// CalibrationStartPower returns the first attack power the calibration search tries
func (c *Config) CalibrationStartPower() int {
	if c.Calibration.StartPower == 0 {
		return c.Units.AttackPower + 1
	}
	return c.Calibration.StartPower
}

// CalibrationFaction returns the parsed faction; Validate guarantees it parses
func (c *Config) CalibrationFaction() unit.Faction {
	f, _ := unit.ParseFaction(c.Calibration.Faction)
	return f
}
