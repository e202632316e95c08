package ktx

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"texpeek/pkg/executil"
	"texpeek/pkg/texture"
)

// Capabilities describes quirks of the installed ktx tool that change how
// extraction commands are built.
type Capabilities struct {
	// FaceDepthExclusive works around a validator defect in current ktx
	// releases that rejects --depth or --layer combined with --face on
	// cubemaps. Future tool versions may lift this.
	FaceDepthExclusive bool
}

// DefaultCapabilities matches the ktx releases texpeek is tested against.
func DefaultCapabilities() Capabilities {
	return Capabilities{FaceDepthExclusive: true}
}

// ExtractArgs builds the `ktx extract` argument list for one sub-image.
// Level is always selected. A selector whose count is 1 is omitted
// entirely, never passed as 0. Depth is skipped on cubemaps while
// FaceDepthExclusive is set.
func ExtractArgs(in, out string, sel texture.Selection, hdr texture.Header, caps Capabilities) []string {
	hdr = hdr.Normalize()
	sel = sel.ClampTo(hdr)

	args := []string{"extract", "--level", strconv.Itoa(sel.Level)}
	if hdr.IsCubemap() {
		args = append(args, "--face", strconv.Itoa(sel.Face))
	}
	if hdr.PixelDepth > 1 && !(hdr.IsCubemap() && caps.FaceDepthExclusive) {
		args = append(args, "--depth", strconv.Itoa(sel.Depth))
	}
	if hdr.LayerCount > 1 {
		args = append(args, "--layer", strconv.Itoa(sel.Layer))
	}
	return append(args, in, out)
}

// reducedArgs keeps only level and face, the minimal selector set the ktx
// validator accepts for cubemaps.
func reducedArgs(in, out string, sel texture.Selection, hdr texture.Header) []string {
	sel = sel.ClampTo(hdr.Normalize())
	return []string{
		"extract",
		"--level", strconv.Itoa(sel.Level),
		"--face", strconv.Itoa(sel.Face),
		in, out,
	}
}

// Extract writes the selected sub-image to out. A failed cubemap extract
// is retried exactly once with the reduced level+face selector set before
// the error propagates. The caller owns deletion of out.
func (t *Tool) Extract(ctx context.Context, in, out string, sel texture.Selection, hdr texture.Header, caps Capabilities) error {
	err := executil.Run(ctx, t.Path, ExtractArgs(in, out, sel, hdr, caps)...)
	if err == nil {
		return nil
	}
	if !hdr.IsCubemap() {
		return err
	}

	slog.Warn("ktx extract failed on cubemap, retrying with level+face only", "err", err)
	if retryErr := executil.Run(ctx, t.Path, reducedArgs(in, out, sel, hdr)...); retryErr != nil {
		return fmt.Errorf("ktx extract failed after cubemap retry: %w", retryErr)
	}
	return nil
}
