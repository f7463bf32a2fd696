package convert

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kako-nawao/ffconv/internal/probe"
	"github.com/kako-nawao/ffconv/internal/profile"
	"github.com/kako-nawao/ffconv/internal/runner"
)

type audioConverter struct {
	run    runner.Runner
	input  string
	stream probe.Stream
	spec   profile.AudioSpec
}

// MustConvert is true when the codec is not allowed or the stream carries
// more channels than the device plays.
func (c *audioConverter) MustConvert() bool {
	if !c.spec.Allows(c.stream.Codec) {
		return true
	}
	return c.stream.Channels > c.spec.MaxChannels
}

func (c *audioConverter) Process(ctx context.Context) (Result, error) {
	if !c.MustConvert() {
		return passThrough(c.input, c.stream), nil
	}
	output := ArtifactName(probe.MediaAudio, c.stream.Index, c.spec.Container)
	if err := c.convert(ctx, output); err != nil {
		return Result{}, fmt.Errorf("convert audio stream %d: %w", c.stream.Index, err)
	}
	return converted(output, c.stream), nil
}

// convert re-encodes the single mapped audio stream, downmixing to the
// profile's channel ceiling.
func (c *audioConverter) convert(ctx context.Context, output string) error {
	_, err := c.run.Run(ctx, "ffmpeg",
		"-i", c.input,
		"-map", mapDirective(c.stream.Index),
		"-c:a", c.spec.TargetCodec(),
		"-q:a", strconv.Itoa(c.spec.Quality),
		"-ac:0", strconv.Itoa(c.spec.MaxChannels),
		output,
	)
	return err
}
