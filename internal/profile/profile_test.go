package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuiltin(t *testing.T) {
	p, err := Resolve("roku", "")
	require.NoError(t, err)
	assert.Equal(t, "Roku", p.Name)
	assert.Equal(t, "h264", p.Video.TargetCodec())
	assert.Equal(t, "mp3", p.Audio.TargetCodec())
	assert.Equal(t, []string{"utf-8", "iso-8859-1"}, p.Subtitle.Encodings)
	require.NoError(t, p.Validate())
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	p, err := Resolve("RoKu", "")
	require.NoError(t, err)
	assert.Equal(t, "Roku", p.Name)
}

func TestResolveUnknownName(t *testing.T) {
	_, err := Resolve("chromecast", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), "roku")
}

func TestResolveFromProfileDir(t *testing.T) {
	dir := t.TempDir()
	data := `
name: Settop
video:
  codecs: [h264, mpeg4]
  container: mp4
  profile: main
  level: "4.0"
  preset: medium
  quality: 21
  max_refs:
    480: 6
    720: 4
audio:
  codecs: [aac]
  container: aac
  max_channels: 6
  quality: 3
subtitle:
  codecs: [srt]
  container: srt
  encodings: [utf-8]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settop.yaml"), []byte(data), 0o644))

	p, err := Resolve("settop", dir)
	require.NoError(t, err)
	assert.Equal(t, "Settop", p.Name)
	assert.Equal(t, 6, p.Audio.MaxChannels)
	assert.Equal(t, 6, p.Video.MaxRefFrames[480])
}

func TestResolveDirFallsBackToBuiltin(t *testing.T) {
	p, err := Resolve("roku", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "Roku", p.Name)
}

func TestLoadInvalidProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	// Audio codec list is empty, which leaves no conversion target.
	data := `
name: Broken
video: {codecs: [h264], container: mp4}
audio: {codecs: [], container: aac, max_channels: 2}
subtitle: {codecs: [srt], container: srt, encodings: [utf-8]}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio codecs")
}

func TestValidateRejectsUnknownEncoding(t *testing.T) {
	p := Roku()
	p.Subtitle.Encodings = []string{"utf-8", "klingon-8"}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "klingon-8")
}

func TestValidateRejectsZeroChannels(t *testing.T) {
	p := Roku()
	p.Audio.MaxChannels = 0
	require.Error(t, p.Validate())
}

func TestMaxRefsForHeightBuckets(t *testing.T) {
	spec := VideoSpec{MaxRefFrames: map[int]int{480: 6, 720: 4}}

	cases := []struct {
		name   string
		height int
		want   int
	}{
		{"below first bucket", 360, 6},
		{"exactly first bucket", 480, 6},
		{"between buckets", 576, 4},
		{"exactly second bucket", 720, 4},
		{"above all buckets uses default", 1080, DefaultMaxRefFrames},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, spec.MaxRefsForHeight(tc.height))
		})
	}
}

func TestMaxRefsForHeightNoBuckets(t *testing.T) {
	spec := VideoSpec{}
	assert.Equal(t, DefaultMaxRefFrames, spec.MaxRefsForHeight(720))
}

func TestAllowsIsCaseInsensitive(t *testing.T) {
	spec := AudioSpec{Codecs: []string{"mp3", "aac"}}
	assert.True(t, spec.Allows("AAC"))
	assert.False(t, spec.Allows("ac3"))
}
