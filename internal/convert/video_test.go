package convert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kako-nawao/ffconv/internal/probe"
	"github.com/kako-nawao/ffconv/internal/profile"
)

func videoStream(codec string, refs, height int) probe.Stream {
	return probe.Stream{
		Index: 0, MediaType: probe.MediaVideo,
		Codec: codec, RefFrames: refs, Height: height,
	}
}

func TestVideoMustConvertCodec(t *testing.T) {
	spec := profile.Roku().Video
	c := &videoConverter{stream: videoStream("xvid", 2, 480), spec: spec}
	assert.True(t, c.MustConvert())
}

func TestVideoMustConvertRefFrameBuckets(t *testing.T) {
	spec := profile.VideoSpec{
		Codecs:       []string{"h264"},
		Container:    "mp4",
		MaxRefFrames: map[int]int{480: 6, 720: 4},
	}

	cases := []struct {
		name   string
		height int
		refs   int
		want   bool
	}{
		{"720p over bucket limit", 720, 5, true},
		{"480p within bucket limit", 480, 5, false},
		{"1080p over default limit", 1080, 5, true},
		{"1080p at default limit", 1080, 4, false},
		{"720p at bucket limit", 720, 4, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &videoConverter{stream: videoStream("h264", tc.refs, tc.height), spec: spec}
			assert.Equal(t, tc.want, c.MustConvert())
		})
	}
}

func TestVideoConvertCommand(t *testing.T) {
	run := &fakeRunner{}
	stream := videoStream("h264", 16, 1080)
	conv, ok := New(run, "some-film.mkv", stream, profile.Roku())
	require.True(t, ok)

	res, err := conv.Process(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{SourceFile: "video-0.mp4", StreamIndex: 0}, res)

	require.Len(t, run.calls, 1)
	assert.Equal(t, []string{
		"ffmpeg", "-i", "some-film.mkv", "-map", "0:0",
		"-c:v", "h264", "-preset", "slow", "-crf", "23",
		"-profile:v", "high", "-level", "4.1", "video-0.mp4",
	}, run.calls[0])
}

func TestVideoConvertFailurePropagates(t *testing.T) {
	run := &fakeRunner{handler: func(string, []string) (string, error) {
		return "", assert.AnError
	}}
	conv, ok := New(run, "some-film.mkv", videoStream("mpeg4", 2, 480), profile.Roku())
	require.True(t, ok)

	_, err := conv.Process(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "video stream 0")
}
