// Package convert implements the per-stream conversion engine: deciding
// whether a probed stream satisfies the target profile and, when it does
// not, driving the external tool invocation that brings it into spec.
package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/kako-nawao/ffconv/internal/probe"
	"github.com/kako-nawao/ffconv/internal/profile"
	"github.com/kako-nawao/ffconv/internal/runner"
)

// Result points the merge stage at a stream's post-processing location:
// either the original file and index (no conversion) or a freshly created
// single-stream artifact at index 0. Language is carried through unchanged.
type Result struct {
	SourceFile  string
	StreamIndex int
	Language    string
}

// Converter is the per-stream contract. Implementations exist for video,
// audio, and subtitle streams; the media-type set is closed.
type Converter interface {
	// MustConvert reports whether the stream violates the profile.
	MustConvert() bool

	// Process returns the stream's merge result, converting first when
	// MustConvert is true. A no-op pass has no side effects.
	Process(ctx context.Context) (Result, error)
}

// New returns the converter for the stream's media type, or ok=false when
// the media type has no converter (such streams are skipped, not erred).
func New(run runner.Runner, input string, s probe.Stream, p *profile.Profile) (Converter, bool) {
	switch s.MediaType {
	case probe.MediaVideo:
		return &videoConverter{run: run, input: input, stream: s, spec: p.Video}, true
	case probe.MediaAudio:
		return &audioConverter{run: run, input: input, stream: s, spec: p.Audio}, true
	case probe.MediaSubtitle:
		return &subtitleConverter{run: run, input: input, stream: s, spec: p.Subtitle}, true
	default:
		return nil, false
	}
}

// ArtifactName is the deterministic path of a converted stream's temporary
// artifact, relative to the working directory. Merge and any retry logic
// recompute it instead of sharing mutable state.
func ArtifactName(media probe.MediaType, index int, container string) string {
	return fmt.Sprintf("%s-%d.%s", media, index, container)
}

// ExtractionError reports a subtitle stream that could not be extracted
// with any of the profile's candidate encodings.
type ExtractionError struct {
	Input     string
	Index     int
	Encodings []string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not extract stream 0:%d of %s (tried encodings: %s)",
		e.Index, e.Input, strings.Join(e.Encodings, ", "))
}

// passThrough builds the result for a stream that already satisfies the
// profile: same file, same index, same language.
func passThrough(input string, s probe.Stream) Result {
	return Result{SourceFile: input, StreamIndex: s.Index, Language: s.Language}
}

// converted builds the result for a freshly created single-stream artifact.
// The original index is discarded: the stream now lives alone at index 0.
func converted(output string, s probe.Stream) Result {
	return Result{SourceFile: output, StreamIndex: 0, Language: s.Language}
}

func mapDirective(index int) string {
	return fmt.Sprintf("0:%d", index)
}
