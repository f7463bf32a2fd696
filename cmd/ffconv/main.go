// Command ffconv normalizes a media file so every stream satisfies a target
// device profile, re-encoding only the streams that violate it and remuxing
// the result into a single output container.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/kako-nawao/ffconv/internal/check"
	"github.com/kako-nawao/ffconv/internal/config"
	"github.com/kako-nawao/ffconv/internal/display"
	"github.com/kako-nawao/ffconv/internal/logging"
	"github.com/kako-nawao/ffconv/internal/pipeline"
	"github.com/kako-nawao/ffconv/internal/profile"
	"github.com/kako-nawao/ffconv/internal/runner"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Default()
	if err := config.ParseFlags(&cfg, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ffconv: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ffconv: %v\n", err)
		return 1
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	logging.Configure(logging.Config{Level: level, NoColor: cfg.NoColor})
	log := logging.WithComponent("main")

	display.PrintBanner(os.Stdout, config.Version())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exec := runner.NewExec(logging.WithComponent("exec"))

	if cfg.CheckOnly {
		if err := check.Run(ctx, exec, log); err != nil {
			log.Error().Err(err).Msg("check failed")
			return 1
		}
		log.Info().Msg("all external tools available")
		return 0
	}

	prof, err := profile.Resolve(cfg.ProfileName, cfg.ProfileDir)
	if err != nil {
		log.Error().Err(err).Msg("cannot resolve profile")
		return 1
	}

	pipe := pipeline.New(exec, prof, logging.WithComponent("pipeline"),
		pipeline.Options{KeepTemp: cfg.Debug})

	sum, runErr := pipe.Process(ctx, cfg.Input, cfg.Output)

	if runErr != nil {
		log.Error().Err(runErr).Msg("processing failed")
	} else {
		logOutcome(log, sum)
	}

	if cfg.ReportPath != "" {
		if err := pipeline.WriteReport(cfg.ReportPath, pipeline.NewReport(sum, runErr)); err != nil {
			log.Warn().Err(err).Msg("could not write run report")
		}
	}
	if cfg.RunLogPath != "" {
		if err := appendRunLog(cfg.RunLogPath, cfg.Input, runErr); err != nil {
			log.Warn().Err(err).Msg("could not append run log")
		}
	}

	if runErr != nil {
		return 1
	}
	return 0
}

// logOutcome reports the run summary, including the output size when it
// can be read.
func logOutcome(log zerolog.Logger, sum *pipeline.Summary) {
	evt := log.Info().
		Int("streams", sum.Streams).
		Int("converted", sum.Converted).
		Str("output", sum.Output).
		Dur("duration", sum.Duration)
	if fi, err := os.Stat(sum.Output); err == nil {
		evt = evt.Str("size", display.FormatBytes(fi.Size()))
	}
	if sum.KeptTemp {
		evt = evt.Bool("kept_temp", true)
	}
	evt.Msg("done")
}

// appendRunLog appends one "<status>\t<input>" line, the successor of the
// legacy ffconv-success.log / ffconv-failed.log pair.
func appendRunLog(path, input string, runErr error) error {
	status := "ok"
	if runErr != nil {
		status = "failed"
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%s\t%s\n", status, input)
	return err
}
