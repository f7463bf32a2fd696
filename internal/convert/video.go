package convert

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kako-nawao/ffconv/internal/probe"
	"github.com/kako-nawao/ffconv/internal/profile"
	"github.com/kako-nawao/ffconv/internal/runner"
)

type videoConverter struct {
	run    runner.Runner
	input  string
	stream probe.Stream
	spec   profile.VideoSpec
}

// MustConvert is true when the codec is not allowed or the stream uses more
// reference frames than the device decodes at its resolution.
func (c *videoConverter) MustConvert() bool {
	if !c.spec.Allows(c.stream.Codec) {
		return true
	}
	return c.stream.RefFrames > c.spec.MaxRefsForHeight(c.stream.Height)
}

func (c *videoConverter) Process(ctx context.Context) (Result, error) {
	if !c.MustConvert() {
		return passThrough(c.input, c.stream), nil
	}
	output := ArtifactName(probe.MediaVideo, c.stream.Index, c.spec.Container)
	if err := c.convert(ctx, output); err != nil {
		return Result{}, fmt.Errorf("convert video stream %d: %w", c.stream.Index, err)
	}
	return converted(output, c.stream), nil
}

// convert re-encodes the single mapped video stream into a new artifact
// using the profile's codec, preset, quality, h264 profile and level.
func (c *videoConverter) convert(ctx context.Context, output string) error {
	_, err := c.run.Run(ctx, "ffmpeg",
		"-i", c.input,
		"-map", mapDirective(c.stream.Index),
		"-c:v", c.spec.TargetCodec(),
		"-preset", c.spec.Preset,
		"-crf", strconv.Itoa(c.spec.Quality),
		"-profile:v", c.spec.Profile,
		"-level", c.spec.Level,
		output,
	)
	return err
}
