package config

// This file implements CLI flag parsing and help text.

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X .../internal/config.version=...".
var version = "1.0.0-dev"

// Version returns the build version string.
func Version() string { return version }

// ParseFlags parses args (normally os.Args[1:]) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil.
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("ffconv", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printUsage(os.Stderr) }

	var showHelp, showVersion bool

	fs.StringVar(&cfg.Output, "output", "", "Merged output path (default: replace input in place)")
	fs.StringVar(&cfg.Output, "o", "", "Same as --output")
	fs.StringVar(&cfg.ProfileDir, "profile-dir", "", "Directory of profile files (yaml/json)")
	fs.StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "JSON run report path (empty disables)")
	fs.StringVar(&cfg.RunLogPath, "run-log", cfg.RunLogPath, "Append run results to file (empty disables)")
	fs.BoolVar(&cfg.Debug, "debug", false, "Keep temporary artifacts and log at debug level")
	fs.BoolVar(&cfg.Debug, "d", false, "Same as --debug")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Verify external tools and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printUsage(os.Stderr)
			os.Exit(0)
		}
		return err
	}

	if showHelp {
		printUsage(os.Stdout)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "ffconv v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// parsePositionalArgs sets Input and ProfileName from the two positional
// args when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly input file and profile name")
	}
	cfg.Input = args[0]
	cfg.ProfileName = args[1]
	return nil
}

// printUsage writes the help text. Column-aligned for readability.
func printUsage(w io.Writer) {
	const col1 = 26
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "ffconv v" + version + " — normalize media files for a device profile"},
		{"", ""},
		{"  ffconv [OPTIONS] <input> <profile>", ""},
		{"", ""},
		{"Output", ""},
		{"  -o, --output <path>", "Merged output path (default: replace input in place)"},
		{"", ""},
		{"Profiles", ""},
		{"  --profile-dir <dir>", "Directory of profile files (yaml/json), overrides builtins"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --debug", "Keep temporary artifacts; log at debug level"},
		{"  --report <path>", "JSON run report path (default: ffconv-report.json)"},
		{"  --run-log <path>", "Append run results to file"},
		{"", ""},
		{"Display", ""},
		{"  --log-level <level>", "Log level: debug, info, warn, error (default: info)"},
		{"  --no-color", "Disable colored logs"},
		{"", ""},
		{"Utility", ""},
		{"  -c, --check", "Verify ffmpeg/ffprobe availability and exit"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		switch {
		case l.flags == "" && l.desc == "":
			fmt.Fprintln(w)
		case l.desc == "":
			fmt.Fprintln(w, l.flags)
		case l.flags == "":
			fmt.Fprintln(w, l.desc)
		default:
			padding := col1 - len(l.flags)
			if padding < 1 {
				padding = 1
			}
			fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
		}
	}
}
