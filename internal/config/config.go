// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation.
package config

import (
	"errors"
)

// Config holds all runtime settings. It is populated by [Default] and then
// mutated by [ParseFlags] before being passed to packages that need it.
type Config struct {
	// Positional args.
	Input       string // Media file to normalize.
	ProfileName string // Name of the target profile (e.g. "roku").

	// Output.
	Output string // Merged output path; empty means replace the input in place.

	// Profiles.
	ProfileDir string // Directory of profile files; overrides builtins.

	// Behavior.
	Debug     bool // Keep temporary artifacts and log at debug level.
	CheckOnly bool // Run tool diagnostics and exit.

	// Reporting.
	ReportPath string // JSON run report path; empty disables.
	RunLogPath string // Append-only success/failure log; empty disables.

	// Logging.
	LogLevel string
	NoColor  bool
}

// Default returns the Config defaults applied before flag parsing.
func Default() Config {
	return Config{
		ReportPath: "ffconv-report.json",
		LogLevel:   "info",
	}
}

// Validate checks that required positional arguments are present. CheckOnly
// mode needs neither.
func (c *Config) Validate() error {
	if c.CheckOnly {
		return nil
	}
	if c.Input == "" || c.ProfileName == "" {
		return errors.New("need exactly input file and profile name")
	}
	return nil
}
