// Package check verifies that the external tools the pipeline shells out
// to are actually available before any work starts.
package check

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kako-nawao/ffconv/internal/runner"
)

// requiredTools are the binaries every run depends on.
var requiredTools = []string{"ffmpeg", "ffprobe"}

// Run verifies all required tools and logs their versions. It returns an
// error naming the first missing tool.
func Run(ctx context.Context, run runner.Runner, log zerolog.Logger) error {
	for _, tool := range requiredTools {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s not found in PATH: %w", tool, err)
		}
		out, err := run.Run(ctx, tool, "-version")
		if err != nil {
			return fmt.Errorf("%s -version: %w", tool, err)
		}
		log.Info().Str("tool", tool).Str("version", firstLine(out)).Msg("tool available")
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
