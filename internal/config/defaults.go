// Package config provides configuration loading and defaults for perfscope.
package config

// DefaultScanPaths are the default paths to analyze when none are given.
var DefaultScanPaths = []string{"."}

// DefaultConfigDir is the default location for perfscope configuration.
const DefaultConfigDir = "~/.config/perfscope"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "perfscope.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultAnalysis holds the default analysis limits.
var DefaultAnalysis = Analysis{
	MaxDepth: 512,
}

// DefaultRewrite holds the default rewrite engine settings.
var DefaultRewrite = Rewrite{
	Aggressive: false,
}

// DefaultRecommend holds the default recommendation settings.
var DefaultRecommend = Recommend{
	MaxPerCategory: 5,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
