package pipeline

import (
	"context"
	"fmt"

	"github.com/kako-nawao/ffconv/internal/convert"
)

// mergeParams holds the parallel argument lists of the final remux command:
// the ordered de-duplicated source files, one map directive per output
// stream slot, and the per-slot language metadata directives.
type mergeParams struct {
	inputs []string
	maps   []string
	meta   []string
}

// buildMergeParams walks conversion results in stream-processing order.
// Map order mirrors that order exactly: downstream players select default
// tracks positionally. Language metadata is attached by map-slot index,
// which is the stream number the remux assigns in its output.
func buildMergeParams(results []convert.Result) mergeParams {
	var params mergeParams
	for _, r := range results {
		inputIdx := indexOf(params.inputs, r.SourceFile)
		if inputIdx < 0 {
			params.inputs = append(params.inputs, r.SourceFile)
			inputIdx = len(params.inputs) - 1
		}
		params.maps = append(params.maps, fmt.Sprintf("%d:%d", inputIdx, r.StreamIndex))

		if r.Language != "" {
			slot := len(params.maps) - 1
			params.meta = append(params.meta,
				fmt.Sprintf("-metadata:s:%d", slot),
				"language="+r.Language)
		}
	}
	return params
}

// args builds the remux argv (without the binary name). Every stream was
// already brought into profile, so the merge is a pure stream copy. A
// single source file means nothing was converted and there is nothing to
// remux; nil is returned.
func (m mergeParams) args(output string) []string {
	if len(m.inputs) < 2 {
		return nil
	}
	var args []string
	for _, in := range m.inputs {
		args = append(args, "-i", in)
	}
	for _, mp := range m.maps {
		args = append(args, "-map", mp)
	}
	args = append(args, m.meta...)
	args = append(args, "-c", "copy", output)
	return args
}

// merge runs the remux and returns the files consumed by it, minus the
// original input, as the cleanup candidate set. On failure the attempted
// merge output joins that set: it may be a partial file.
func (p *Pipeline) merge(ctx context.Context, input string, results []convert.Result, output string) ([]string, error) {
	params := buildMergeParams(results)
	args := params.args(output)
	if args == nil {
		return nil, nil
	}

	consumed := params.inputs
	var mergeErr error
	if _, err := p.run.Run(ctx, "ffmpeg", args...); err != nil {
		mergeErr = &MergeError{Output: output, Err: err}
		consumed = append(consumed, output)
	}

	// The original input is excluded: it is either kept (explicit output
	// requested) or about to be overwritten by the replace step.
	var cleanup []string
	for _, f := range consumed {
		if f != input {
			cleanup = append(cleanup, f)
		}
	}
	return cleanup, mergeErr
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
