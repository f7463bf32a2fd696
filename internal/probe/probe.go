// Package probe inspects a media file with ffprobe and normalizes its
// elementary streams into descriptors the conversion engine consumes.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kako-nawao/ffconv/internal/runner"
)

// MediaType identifies the kind of elementary stream.
type MediaType string

const (
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
	MediaSubtitle MediaType = "subtitle"
)

// Stream is the normalized view of one probed elementary stream. Codec and
// language are lower-cased; an "und" language tag is treated as absent.
// Immutable after creation.
type Stream struct {
	Index     int
	MediaType MediaType
	Codec     string
	Language  string

	// Video only.
	RefFrames int
	Height    int

	// Audio only.
	Channels int
}

// Probe runs ffprobe against path and returns its streams sorted by index.
// Stream order is a documented contract of the probe step: the merge stage
// mirrors it in its map directives, and players select default tracks
// positionally.
func Probe(ctx context.Context, run runner.Runner, path string) ([]Stream, error) {
	out, err := run.Run(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}
	return ParseStreams([]byte(out))
}

// ParseStreams converts raw ffprobe JSON output into normalized streams.
// Exported for testing without a real ffprobe binary.
func ParseStreams(data []byte) ([]Stream, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	streams := make([]Stream, 0, len(raw.Streams))
	for i := range raw.Streams {
		streams = append(streams, convertStream(&raw.Streams[i]))
	}
	sort.SliceStable(streams, func(i, j int) bool {
		return streams[i].Index < streams[j].Index
	})
	return streams, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Index     int               `json:"index"`
	CodecName string            `json:"codec_name"`
	CodecType string            `json:"codec_type"`
	Refs      int               `json:"refs"`
	Height    int               `json:"height"`
	Channels  int               `json:"channels"`
	Tags      map[string]string `json:"tags"`
}

func convertStream(s *ffprobeStream) Stream {
	lang := strings.ToLower(s.Tags["language"])
	if lang == "und" {
		lang = ""
	}
	return Stream{
		Index:     s.Index,
		MediaType: MediaType(strings.ToLower(s.CodecType)),
		Codec:     strings.ToLower(s.CodecName),
		Language:  lang,
		RefFrames: s.Refs,
		Height:    s.Height,
		Channels:  s.Channels,
	}
}
