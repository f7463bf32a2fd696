// Package profile defines target device profiles: per-media-type codec,
// container, and constraint specs that the conversion engine checks streams
// against. Profiles are immutable values resolved once at startup and
// injected into the pipeline.
package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrUnknown is returned when a profile name matches no file and no builtin.
var ErrUnknown = errors.New("unknown profile")

// DefaultMaxRefFrames applies when a video stream's height falls outside
// every configured reference-frame bucket.
const DefaultMaxRefFrames = 4

// Profile describes everything a target device requires from a media file.
// The first entry of each codec list is the canonical target codec used when
// a stream has to be converted.
type Profile struct {
	Name     string       `yaml:"name"`
	Video    VideoSpec    `yaml:"video"`
	Audio    AudioSpec    `yaml:"audio"`
	Subtitle SubtitleSpec `yaml:"subtitle"`
}

// VideoSpec holds the video constraints of a profile.
type VideoSpec struct {
	Codecs    []string `yaml:"codecs"`
	Container string   `yaml:"container"`
	Profile   string   `yaml:"profile"` // h264 profile, e.g. "high"
	Level     string   `yaml:"level"`   // h264 level, e.g. "4.1"
	Preset    string   `yaml:"preset"`
	Quality   int      `yaml:"quality"` // CRF value

	// MaxRefFrames maps a height threshold to the maximum number of
	// reference frames the device decodes at that resolution. Lookup takes
	// the smallest threshold that is >= the stream height; heights above
	// every threshold fall back to DefaultMaxRefFrames.
	MaxRefFrames map[int]int `yaml:"max_refs"`
}

// AudioSpec holds the audio constraints of a profile.
type AudioSpec struct {
	Codecs      []string `yaml:"codecs"`
	Container   string   `yaml:"container"`
	MaxChannels int      `yaml:"max_channels"`
	Quality     int      `yaml:"quality"` // VBR quality (-q:a)
}

// SubtitleSpec holds the subtitle constraints of a profile.
type SubtitleSpec struct {
	Codecs    []string `yaml:"codecs"`
	Container string   `yaml:"container"`

	// Encodings are the candidate text encodings tried in order when
	// extracting a subtitle stream. Subtitle files rarely declare their
	// encoding, so extraction walks this list until one works.
	Encodings []string `yaml:"encodings"`
}

// TargetCodec returns the canonical codec streams are converted to.
func (s VideoSpec) TargetCodec() string { return s.Codecs[0] }

// Allows reports whether codec satisfies this spec without conversion.
func (s VideoSpec) Allows(codec string) bool { return containsFold(s.Codecs, codec) }

// MaxRefsForHeight returns the reference-frame ceiling for a stream of the
// given height, scanning thresholds in ascending order.
func (s VideoSpec) MaxRefsForHeight(height int) int {
	thresholds := make([]int, 0, len(s.MaxRefFrames))
	for h := range s.MaxRefFrames {
		thresholds = append(thresholds, h)
	}
	sort.Ints(thresholds)
	for _, h := range thresholds {
		if height <= h {
			return s.MaxRefFrames[h]
		}
	}
	return DefaultMaxRefFrames
}

// TargetCodec returns the canonical codec streams are converted to.
func (s AudioSpec) TargetCodec() string { return s.Codecs[0] }

// Allows reports whether codec satisfies this spec without conversion.
func (s AudioSpec) Allows(codec string) bool { return containsFold(s.Codecs, codec) }

// TargetCodec returns the canonical codec streams are converted to.
func (s SubtitleSpec) TargetCodec() string { return s.Codecs[0] }

// Validate checks the structural invariants every profile must satisfy
// before it is handed to the pipeline.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return errors.New("profile: name must not be empty")
	}
	if err := validateCommon("video", p.Video.Codecs, p.Video.Container); err != nil {
		return err
	}
	if err := validateCommon("audio", p.Audio.Codecs, p.Audio.Container); err != nil {
		return err
	}
	if err := validateCommon("subtitle", p.Subtitle.Codecs, p.Subtitle.Container); err != nil {
		return err
	}
	if p.Audio.MaxChannels < 1 {
		return fmt.Errorf("profile %s: audio max_channels must be >= 1", p.Name)
	}
	if len(p.Subtitle.Encodings) == 0 {
		return fmt.Errorf("profile %s: subtitle encodings must not be empty", p.Name)
	}
	for _, enc := range p.Subtitle.Encodings {
		if e, _ := charset.Lookup(enc); e == nil {
			return fmt.Errorf("profile %s: unknown subtitle encoding %q", p.Name, enc)
		}
	}
	return nil
}

func validateCommon(media string, codecs []string, container string) error {
	if len(codecs) == 0 {
		return fmt.Errorf("profile: %s codecs must not be empty", media)
	}
	if container == "" {
		return fmt.Errorf("profile: %s container must not be empty", media)
	}
	return nil
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
