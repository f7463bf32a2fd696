package pipeline

import (
	"fmt"

	"github.com/kako-nawao/ffconv/internal/probe"
)

// ProbeError reports that stream inspection itself failed; the run aborts
// with nothing to clean up.
type ProbeError struct {
	Input string
	Err   error
}

func (e *ProbeError) Error() string { return fmt.Sprintf("probe %s: %v", e.Input, e.Err) }
func (e *ProbeError) Unwrap() error { return e.Err }

// ConversionError reports the first stream whose conversion failed after
// exhausting any fallback strategy. Dispatching stops at this stream.
type ConversionError struct {
	Media probe.MediaType
	Index int
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s stream %d: %v", e.Media, e.Index, e.Err)
}
func (e *ConversionError) Unwrap() error { return e.Err }

// MergeError reports a failed final remux; its partial output is queued
// for cleanup alongside the per-stream artifacts.
type MergeError struct {
	Output string
	Err    error
}

func (e *MergeError) Error() string { return fmt.Sprintf("merge into %s: %v", e.Output, e.Err) }
func (e *MergeError) Unwrap() error { return e.Err }
