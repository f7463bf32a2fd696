package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/kako-nawao/ffconv/internal/probe"
	"github.com/kako-nawao/ffconv/internal/profile"
	"github.com/kako-nawao/ffconv/internal/runner"
)

// Inline markup left behind by common subtitle authoring tools: font/style
// tags like <i></i> and override blocks like {\an8}. Target players do not
// render them.
var (
	reAngleMarkup = regexp.MustCompile(`<[^>]*>`)
	reBraceMarkup = regexp.MustCompile(`\{[^}]*\}`)
)

type subtitleConverter struct {
	run    runner.Runner
	input  string
	stream probe.Stream
	spec   profile.SubtitleSpec
}

// MustConvert is always true for subtitles: even a stream whose codec
// already matches the target is re-extracted so markup cleanup runs.
func (c *subtitleConverter) MustConvert() bool { return true }

func (c *subtitleConverter) Process(ctx context.Context) (Result, error) {
	output := ArtifactName(probe.MediaSubtitle, c.stream.Index, c.spec.Container)
	if err := c.convert(ctx, output); err != nil {
		return Result{}, err
	}
	if err := c.cleanUp(output); err != nil {
		return Result{}, fmt.Errorf("clean up subtitle stream %d: %w", c.stream.Index, err)
	}
	return converted(output, c.stream), nil
}

// convert extracts the subtitle stream, trying each candidate encoding in
// order. Subtitle files rarely declare a reliable encoding and there is no
// independent detector, so a failed attempt deletes its partial output and
// the next encoding is tried. Only tool failures are absorbed; any other
// error propagates immediately.
func (c *subtitleConverter) convert(ctx context.Context, output string) error {
	for _, enc := range c.spec.Encodings {
		_, err := c.run.Run(ctx, "ffmpeg",
			"-sub_charenc", enc,
			"-i", c.input,
			"-map", mapDirective(c.stream.Index),
			output,
		)
		if err == nil {
			return nil
		}

		var toolErr *runner.ToolError
		if !errors.As(err, &toolErr) {
			return err
		}
		_ = os.Remove(output)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return &ExtractionError{Input: c.input, Index: c.stream.Index, Encodings: c.spec.Encodings}
}

// cleanUp rewrites the extracted file in place: the text is decoded to
// UTF-8 (the declared extraction encoding is not always what the bytes
// actually were) and residual inline markup is stripped.
func (c *subtitleConverter) cleanUp(output string) error {
	raw, err := os.ReadFile(output)
	if err != nil {
		return err
	}

	enc, _, _ := charset.DetermineEncoding(raw, "")
	text, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return fmt.Errorf("decode %s: %w", output, err)
	}

	text = reAngleMarkup.ReplaceAll(text, nil)
	text = reBraceMarkup.ReplaceAll(text, nil)

	return os.WriteFile(output, text, 0o644)
}
