package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing output files should be overwritten
	OverwriteFiles bool
	// Delimiter is the field delimiter for input tables
	Delimiter rune
	// MaxRows caps ingestion per staging store (0 = unlimited)
	MaxRows int64
	// ScratchDir is the parent directory for staging scratch storage
	ScratchDir string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("staging.delimiter", ",")
	viper.SetDefault("staging.maxrows", 0)
	viper.SetDefault("staging.scratchdir", "")
	viper.SetDefault("OverwriteFiles", false)

	// Get values from viper
	OverwriteFiles = viper.GetBool("OverwriteFiles")
	Delimiter = delimiterFromString(viper.GetString("staging.delimiter"))
	MaxRows = viper.GetInt64("staging.maxrows")
	ScratchDir = viper.GetString("staging.scratchdir")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// SetDelimiter sets the input field delimiter from its string form.
// Empty input leaves the comma default in place.
func SetDelimiter(value string) {
	Delimiter = delimiterFromString(value)
}

// SetMaxRows sets the per-store ingestion row limit
func SetMaxRows(limit int64) {
	MaxRows = limit
}

// SetScratchDir sets the parent directory for scratch storage
func SetScratchDir(dir string) {
	ScratchDir = dir
}

func delimiterFromString(value string) rune {
	for _, r := range value {
		return r
	}
	return ','
}
