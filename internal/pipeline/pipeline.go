// Package pipeline drives the end-to-end normalization of one media file:
// probe the streams, dispatch each to its converter, remux the results into
// a single container, then clean up temporary artifacts and decide the
// final output path.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kako-nawao/ffconv/internal/convert"
	"github.com/kako-nawao/ffconv/internal/probe"
	"github.com/kako-nawao/ffconv/internal/profile"
	"github.com/kako-nawao/ffconv/internal/runner"
)

// Options tune a Pipeline without touching its collaborators.
type Options struct {
	// KeepTemp retains temporary artifacts after the run (debug mode).
	KeepTemp bool
}

// Pipeline processes files against one immutable profile. Each Process call
// owns its own state; a Pipeline itself holds none, so independent files
// can be handled by independent Pipeline values.
type Pipeline struct {
	run  runner.Runner
	prof *profile.Profile
	log  zerolog.Logger
	opts Options
}

// New returns a Pipeline converting against prof.
func New(run runner.Runner, prof *profile.Profile, log zerolog.Logger, opts Options) *Pipeline {
	return &Pipeline{run: run, prof: prof, log: log, opts: opts}
}

// Summary reports the outcome of one Process call. It is returned even on
// failure so callers can report partial progress.
type Summary struct {
	RunID     string
	Input     string
	Output    string
	Profile   string
	Streams   int
	Converted int
	KeptTemp  bool
	Duration  time.Duration
}

// Process normalizes input against the pipeline's profile. When
// requestedOutput is empty and a remux was necessary, the original file is
// replaced in place. Cleanup of temporary artifacts runs whether or not a
// stage failed; the first error encountered is returned afterwards.
func (p *Pipeline) Process(ctx context.Context, input, requestedOutput string) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()[:8]
	log := p.log.With().Str("run_id", runID).Str("input", input).Logger()

	sum := &Summary{RunID: runID, Input: input, Output: input, Profile: p.prof.Name}

	// The merge output path is computed exactly once and reused for the
	// invocation, failure cleanup, and the replace step.
	mergeOutput := requestedOutput
	if mergeOutput == "" {
		mergeOutput = fmt.Sprintf(".ffconv-%s.mkv", runID)
	}

	log.Info().Str("profile", p.prof.Name).Msg("processing file")

	streams, err := probe.Probe(ctx, p.run, input)
	if err != nil {
		// Nothing has been created yet; probing failures abort the run.
		return sum, &ProbeError{Input: input, Err: err}
	}
	log.Debug().Int("streams", len(streams)).Msg("probed")

	results, converted, firstErr := p.dispatch(ctx, log, input, streams)
	sum.Streams = len(results)
	sum.Converted = converted

	var cleanup []string
	if firstErr == nil {
		log.Debug().Msg("merging streams into output")
		cleanup, firstErr = p.merge(ctx, input, results, mergeOutput)
	} else {
		// Converted artifacts produced before the failure still need
		// deleting; nothing further is attempted.
		cleanup = artifactInputs(results, input)
	}

	if len(cleanup) > 0 {
		if firstErr == nil {
			if requestedOutput == "" {
				if err := moveFile(mergeOutput, input); err != nil {
					firstErr = fmt.Errorf("replace original %s: %w", input, err)
					cleanup = append(cleanup, mergeOutput)
				}
			} else {
				sum.Output = requestedOutput
			}
		}
		p.cleanUp(log, cleanup)
		sum.KeptTemp = p.opts.KeepTemp
	}
	sum.Duration = time.Since(start)

	if firstErr != nil {
		return sum, firstErr
	}
	log.Info().Int("streams", sum.Streams).Int("converted", sum.Converted).
		Str("output", sum.Output).Msg("done")
	return sum, nil
}

// dispatch processes streams in probe order, stopping at the first failure.
// Streams with an unrecognized media type are skipped, not erred.
func (p *Pipeline) dispatch(ctx context.Context, log zerolog.Logger, input string, streams []probe.Stream) ([]convert.Result, int, error) {
	var results []convert.Result
	converted := 0

	for _, s := range streams {
		conv, ok := convert.New(p.run, input, s, p.prof)
		if !ok {
			log.Warn().Int("index", s.Index).Str("media_type", string(s.MediaType)).
				Msg("skipping stream, media type not recognized")
			continue
		}

		res, err := conv.Process(ctx)
		if err != nil {
			log.Error().Err(err).Int("index", s.Index).Msg("stream conversion failed")
			return results, converted, &ConversionError{Media: s.MediaType, Index: s.Index, Err: err}
		}
		if res.SourceFile != input {
			converted++
			log.Debug().Int("index", s.Index).Str("media_type", string(s.MediaType)).
				Str("artifact", res.SourceFile).Msg("stream converted")
		} else {
			log.Debug().Int("index", s.Index).Str("media_type", string(s.MediaType)).
				Msg("stream already satisfies profile")
		}
		results = append(results, res)
	}
	return results, converted, nil
}

// cleanUp removes temporary files, or keeps them in debug mode. The list
// never contains the original input.
func (p *Pipeline) cleanUp(log zerolog.Logger, files []string) {
	if p.opts.KeepTemp {
		log.Debug().Strs("files", files).Msg("debug mode, keeping temporary artifacts")
		return
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", f).Msg("could not remove temporary artifact")
		}
	}
}

// moveFile moves src over dst. Rename covers the common same-filesystem
// case; when dst lives on another filesystem the move degrades to a copy
// followed by removing src.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}

// artifactInputs returns the distinct files referenced by results, minus
// the original input, preserving first-reference order.
func artifactInputs(results []convert.Result, input string) []string {
	var files []string
	for _, r := range results {
		if r.SourceFile == input || containsString(files, r.SourceFile) {
			continue
		}
		files = append(files, r.SourceFile)
	}
	return files
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
