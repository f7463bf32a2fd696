package convert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kako-nawao/ffconv/internal/probe"
	"github.com/kako-nawao/ffconv/internal/profile"
)

// fakeRunner records invocations and delegates behavior to an optional
// handler, so converter logic is tested without ffmpeg.
type fakeRunner struct {
	calls   [][]string
	handler func(name string, args []string) (string, error)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.handler != nil {
		return f.handler(name, args)
	}
	return "", nil
}

func TestNewDispatchesByMediaType(t *testing.T) {
	run := &fakeRunner{}
	prof := profile.Roku()

	cases := []struct {
		media probe.MediaType
		ok    bool
	}{
		{probe.MediaVideo, true},
		{probe.MediaAudio, true},
		{probe.MediaSubtitle, true},
		{probe.MediaType("attachment"), false},
		{probe.MediaType("data"), false},
	}
	for _, tc := range cases {
		_, ok := New(run, "movie.mkv", probe.Stream{MediaType: tc.media}, prof)
		assert.Equal(t, tc.ok, ok, "media type %q", tc.media)
	}
}

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "video-0.mp4", ArtifactName(probe.MediaVideo, 0, "mp4"))
	assert.Equal(t, "audio-3.mp3", ArtifactName(probe.MediaAudio, 3, "mp3"))
	assert.Equal(t, "subtitle-2.srt", ArtifactName(probe.MediaSubtitle, 2, "srt"))
}

func TestProcessNoOpKeepsDescriptor(t *testing.T) {
	run := &fakeRunner{}
	stream := probe.Stream{
		Index: 7, MediaType: probe.MediaVideo, Codec: "h264",
		RefFrames: 4, Height: 720, Language: "eng",
	}
	conv, ok := New(run, "some-film.mkv", stream, profile.Roku())
	require.True(t, ok)
	require.False(t, conv.MustConvert())

	res, err := conv.Process(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{SourceFile: "some-film.mkv", StreamIndex: 7, Language: "eng"}, res)
	assert.Empty(t, run.calls, "a no-op pass must not invoke the external tool")
}
