package profile

import "sort"

// This file holds the builtin profile registry. Builtins match the legacy
// JSON profile files shipped under /var/ffconv/profiles.

// Roku returns the profile for Roku set-top boxes: h264 video within the
// level 4.1 reference-frame budget, stereo mp3/aac/flac audio, srt subtitles.
func Roku() *Profile {
	return &Profile{
		Name: "Roku",
		Video: VideoSpec{
			Codecs:    []string{"h264"},
			Container: "mp4",
			Profile:   "high",
			Level:     "4.1",
			Preset:    "slow",
			Quality:   23,
			// Level 4.1 decoders allow more reference frames at lower
			// resolutions; 1080p and above fall back to the default of 4.
			MaxRefFrames: map[int]int{
				480: 8,
				720: 5,
			},
		},
		Audio: AudioSpec{
			Codecs:      []string{"mp3", "aac", "flac"},
			Container:   "mp3",
			MaxChannels: 2,
			Quality:     2,
		},
		Subtitle: SubtitleSpec{
			Codecs:    []string{"srt"},
			Container: "srt",
			Encodings: []string{"utf-8", "iso-8859-1"},
		},
	}
}

// builtins maps lower-cased profile names to constructors.
var builtins = map[string]func() *Profile{
	"roku": Roku,
}

// BuiltinNames returns the sorted names of all builtin profiles.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
