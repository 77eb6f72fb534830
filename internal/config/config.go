package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level perfscope configuration.
type Config struct {
	ScanPaths []string  `mapstructure:"scan_paths"`
	Analysis  Analysis  `mapstructure:"analysis"`
	Rewrite   Rewrite   `mapstructure:"rewrite"`
	Recommend Recommend `mapstructure:"recommend"`
	Output    Output    `mapstructure:"output"`
}

// Analysis defines limits applied while walking source trees.
type Analysis struct {
	MaxDepth int `mapstructure:"max_depth"`
}

// Rewrite defines defaults for the rewrite engine.
type Rewrite struct {
	Aggressive bool `mapstructure:"aggressive"`
}

// Recommend defines defaults for recommendation output.
type Recommend struct {
	MaxPerCategory int `mapstructure:"max_per_category"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("scan_paths", DefaultScanPaths)
	v.SetDefault("analysis.max_depth", DefaultAnalysis.MaxDepth)
	v.SetDefault("rewrite.aggressive", DefaultRewrite.Aggressive)
	v.SetDefault("recommend.max_per_category", DefaultRecommend.MaxPerCategory)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Expand paths.
	for i, p := range cfg.ScanPaths {
		cfg.ScanPaths[i] = expandPath(p)
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
