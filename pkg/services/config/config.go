package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/de-tools/result-atlas/pkg/models/domain"
)

// Config describes where ingestion finds things inside a project root.
type Config struct {
	StartYear int    `mapstructure:"start_year"`
	Layout    Layout `mapstructure:"layout"`
	Model     Model  `mapstructure:"model"`
}

type Layout struct {
	ModelDir         string `mapstructure:"model_dir"`
	CombustionDir    string `mapstructure:"combustion_dir"`
	NoncombustionDir string `mapstructure:"noncombustion_dir"`
	RenewableDir     string `mapstructure:"renewable_dir"`
	StorageDir       string `mapstructure:"storage_dir"`
	SeriesFile       string `mapstructure:"series_file"`
	ReportFile       string `mapstructure:"report_file"`
}

type Model struct {
	DropColumns      []string `mapstructure:"drop_columns"`
	ModePrefix       string   `mapstructure:"mode_prefix"`
	PlaceholderModes []string `mapstructure:"placeholder_modes"`
}

func (l Layout) CategoryDirs() map[domain.AssetCategory]string {
	return map[domain.AssetCategory]string{
		domain.CategoryCombustion:    l.CombustionDir,
		domain.CategoryNoncombustion: l.NoncombustionDir,
		domain.CategoryRenewable:     l.RenewableDir,
		domain.CategoryStorage:       l.StorageDir,
	}
}

var defaults = map[string]any{
	"start_year":               2030,
	"layout.model_dir":         "Model",
	"layout.combustion_dir":    filepath.Join("Production", "Combustion"),
	"layout.noncombustion_dir": filepath.Join("Production", "Noncombustion"),
	"layout.renewable_dir":     filepath.Join("Production", "Renewable"),
	"layout.storage_dir":       "Storage",
	"layout.series_file":       "time_series_results.csv",
	"layout.report_file":       "summary_results.md",
	"model.drop_columns":       []string{"Net Load [kW]"},
	"model.mode_prefix":        "Operation Mode ",
	"model.placeholder_modes":  []string{"Operation Mode A", "Operation Mode B"},
}

// Default returns the configuration matching the simulation engine's output layout.
func Default() Config {
	cfg, err := load(newViper())
	if err != nil {
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	return *cfg
}

// LoadConfig reads path (YAML, TOML or JSON) over the defaults. An empty path
// yields the defaults. ATLAS_* environment variables override both, e.g.
// ATLAS_START_YEAR or ATLAS_LAYOUT_MODEL_DIR.
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	v.SetEnvPrefix("atlas")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return load(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

func load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ingestion config: %w", err)
	}
	return &cfg, nil
}
