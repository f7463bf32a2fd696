// Package runner executes external tool invocations with combined output
// capture. Commands are always argument lists, never shell strings.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// Runner is the external-process invocation boundary. Converters and the
// pipeline depend on this interface so tests can fake tool behavior.
type Runner interface {
	// Run executes name with args, blocking until completion, and returns
	// the combined stdout+stderr output. A non-zero exit status or an
	// explicit error marker in the output yields a *ToolError.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ToolError reports a failed external tool invocation, carrying the
// attempted command and its captured output for diagnostics.
type ToolError struct {
	Cmd      []string
	Output   string
	ExitCode int // 0 when the failure came from an error marker in output.
}

func (e *ToolError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("%s: exit status %d", strings.Join(e.Cmd, " "), e.ExitCode)
	}
	return fmt.Sprintf("%s: reported error: %s", strings.Join(e.Cmd, " "), firstErrorLine(e.Output))
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct {
	log zerolog.Logger
}

// NewExec returns an ExecRunner logging invocations at debug level.
func NewExec(log zerolog.Logger) *ExecRunner {
	return &ExecRunner{log: log}
}

// Run implements Runner. ffmpeg and ffprobe report some failures with a
// zero exit status and an "Error" line in their output, so both signals
// are checked.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	argv := append([]string{name}, args...)
	r.log.Debug().Strs("argv", argv).Msg("exec")

	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	out := buf.String()

	if err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return out, &ToolError{Cmd: argv, Output: out, ExitCode: code}
	}
	if line := firstErrorLine(out); line != "" {
		return out, &ToolError{Cmd: argv, Output: out}
	}
	return out, nil
}

// firstErrorLine returns the first output line containing the tool's error
// marker, or "" when none is present.
func firstErrorLine(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Error") {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
