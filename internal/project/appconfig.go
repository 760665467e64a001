package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/piwi3910/hppcalc/internal/model"
)

// EnvPrefix is the prefix of environment variables overriding the config,
// e.g. HPP_OVERHEAD_PERCENT=7.5.
const EnvPrefix = "HPP"

const maxRecentProjects = 10

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.hppcalc/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".hppcalc")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// DataDir returns the configured data directory, or the default one.
func DataDir(cfg model.AppConfig) string {
	if cfg.DataDir != "" {
		return cfg.DataDir
	}
	return DefaultConfigDir()
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config, "config")
}

// LoadAppConfig reads an AppConfig from the given path, layered over the
// defaults and under HPP_* environment variables.
// If the file does not exist, the defaults are used with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	return LoadAppConfigWithFlags(path, nil)
}

// LoadAppConfigWithFlags is LoadAppConfig with command-line flags layered on
// top. A flag binds to the config key of the same name with dashes replaced by
// underscores (--overhead-percent sets overhead_percent); other flags are
// ignored.
func LoadAppConfigWithFlags(path string, flags *pflag.FlagSet) (model.AppConfig, error) {
	v := viper.New()
	setDefaults(v, model.DefaultAppConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return model.AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return model.AppConfig{}, err
		}
	}

	if flags != nil {
		known := make(map[string]bool)
		for _, k := range v.AllKeys() {
			known[k] = true
		}
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if known[key] && bindErr == nil {
				bindErr = v.BindPFlag(key, f)
			}
		})
		if bindErr != nil {
			return model.AppConfig{}, fmt.Errorf("bind flags: %w", bindErr)
		}
	}

	var config model.AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return model.AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	// Ensure RecentProjects is never nil
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

func setDefaults(v *viper.Viper, d model.AppConfig) {
	v.SetDefault("panel_sheet_length", d.PanelSheetLength)
	v.SetDefault("panel_sheet_width", d.PanelSheetWidth)
	v.SetDefault("panel_waste_percent", d.PanelWastePercent)
	v.SetDefault("linear_bar_length", d.LinearBarLength)
	v.SetDefault("linear_waste_percent", d.LinearWastePercent)
	v.SetDefault("liquid_layers", d.LiquidLayers)
	v.SetDefault("liquid_coverage", d.LiquidCoverage)
	v.SetDefault("liquid_waste_percent", d.LiquidWastePercent)
	v.SetDefault("fabric_width", d.FabricWidth)
	v.SetDefault("fabric_waste_percent", d.FabricWastePercent)
	v.SetDefault("default_unit_count", d.DefaultUnitCount)
	v.SetDefault("overhead_percent", d.OverheadPercent)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("history_driver", d.HistoryDriver)
	v.SetDefault("history_limit", d.HistoryLimit)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("recent_projects", d.RecentProjects)
}

// AddRecentProject moves path to the front of the recent projects list,
// keeping at most ten entries.
func AddRecentProject(cfg *model.AppConfig, path string) {
	recent := []string{path}
	for _, p := range cfg.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	cfg.RecentProjects = recent
}
