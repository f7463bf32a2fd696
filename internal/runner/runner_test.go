package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner() *ExecRunner {
	return NewExec(zerolog.Nop())
}

func TestRunCapturesOutput(t *testing.T) {
	out, err := newTestRunner().Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRunNonZeroExit(t *testing.T) {
	_, err := newTestRunner().Run(context.Background(), "sh", "-c", "echo oops; exit 3")
	require.Error(t, err)

	var te *ToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 3, te.ExitCode)
	assert.Contains(t, te.Output, "oops")
	assert.Equal(t, []string{"sh", "-c", "echo oops; exit 3"}, te.Cmd)
}

func TestRunDetectsErrorMarker(t *testing.T) {
	// Zero exit status, but the output carries the tool's error marker.
	_, err := newTestRunner().Run(context.Background(), "sh", "-c", "echo 'Error opening input'")
	require.Error(t, err)

	var te *ToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 0, te.ExitCode)
	assert.Contains(t, te.Error(), "Error opening input")
}

func TestRunMissingBinary(t *testing.T) {
	_, err := newTestRunner().Run(context.Background(), "ffconv-no-such-binary-xyz")
	require.Error(t, err)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestRunner().Run(ctx, "sleep", "5")
	require.Error(t, err)
}
