package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// DualStyleConfig names a species whose style forms evolve into boosted
// versions of themselves.
type DualStyleConfig struct {
	Species string `mapstructure:"species"`
	Base    int    `mapstructure:"base"`
	Boost   string `mapstructure:"boost"`
}

// RulesConfig holds the special-case tables used by the evolution resolver.
type RulesConfig struct {
	ExtraFormMarkers  []string          `mapstructure:"extra_form_markers"`
	BaselineForms     []string          `mapstructure:"baseline_forms"`
	IgnoreFormSpecies []string          `mapstructure:"ignore_form_species"`
	DualStyle         []DualStyleConfig `mapstructure:"dual_style"`
	MaxDepth          int               `mapstructure:"max_depth"`
}

// Config holds all runtime configuration for dexline.
// Values are populated from .dexline.yaml, DEXLINE_* env vars, and CLI flags.
type Config struct {
	CatalogPath string      `mapstructure:"catalog_path"`
	StorePath   string      `mapstructure:"store_path"`
	LogLevel    string      `mapstructure:"log_level"`
	Verbose     bool        `mapstructure:"verbose"`
	Seed        uint64      `mapstructure:"seed"` // 0 seeds cosmetic picks from the clock
	NoColor     bool        `mapstructure:"no_color"`
	Rules       RulesConfig `mapstructure:"rules"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("catalog_path", "data/catalog.toml")
	viper.SetDefault("store_path", ".dexline/catalog.db")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("verbose", false)
	viper.SetDefault("seed", 0)
	viper.SetDefault("no_color", false)
	viper.SetDefault("rules.extra_form_markers", []string{"Mega", "Primal", "Ash", "Gigantamax", "Eternamax"})
	viper.SetDefault("rules.baseline_forms", []string{"default", "Amped", "Low-Key"})
	viper.SetDefault("rules.ignore_form_species", []string{"Cherrim", "Vivillon", "Aegislash", "Silvally", "Toxtricity"})
	viper.SetDefault("rules.dual_style", []map[string]any{
		{"species": "Urshifu", "base": 891, "boost": "Gigantamax"},
	})
	viper.SetDefault("rules.max_depth", 8)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Rules.MaxDepth <= 0 {
		return Config{}, fmt.Errorf("rules.max_depth must be positive, got %d", cfg.Rules.MaxDepth)
	}
	for _, ds := range cfg.Rules.DualStyle {
		if ds.Species == "" || ds.Base <= 0 || ds.Boost == "" {
			return Config{}, fmt.Errorf("rules.dual_style entry %+v needs species, base and boost", ds)
		}
	}
	return cfg, nil
}
