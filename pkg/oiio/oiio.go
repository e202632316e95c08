// Package oiio shells out to OpenImageIO's oiiotool for every pixel
// operation: format conversion, exposure scaling, and display/view
// tonemapping. No image decoding happens in-process.
package oiio

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"texpeek/pkg/executil"
	"texpeek/pkg/texture"
)

// ViewNoTonemap is the sentinel view name that skips the OCIO display/view
// transform and applies a plain linear Rec.709 to sRGB conversion instead.
const ViewNoTonemap = "No Tonemapping"

// Tool wraps one oiiotool binary.
type Tool struct {
	Path string
}

func New(path string) *Tool {
	if path == "" {
		path = "oiiotool"
	}
	return &Tool{Path: path}
}

// Multiplier converts an exposure in EV stops to a linear factor.
func Multiplier(ev float64) float64 {
	return math.Exp2(ev)
}

func formatMultiplier(ev float64) string {
	return strconv.FormatFloat(Multiplier(ev), 'g', -1, 64)
}

// TonemapOptions parameterize the exposure/tonemap step.
type TonemapOptions struct {
	Exposure float64
	Display  string
	View     string
	// RemoveInput deletes the intermediate input file after a successful
	// run. Used when the input is a ktx-extracted temp file.
	RemoveInput bool
}

// TonemapArgs builds the oiiotool argument list for the exposure/tonemap
// step. Kept separate from execution so the flag policy is testable.
func TonemapArgs(in, out string, opts TonemapOptions) []string {
	args := []string{in, "--mulc", formatMultiplier(opts.Exposure)}
	if opts.View == ViewNoTonemap {
		args = append(args, "--colorconvert", "lin_rec709", "sRGB")
	} else {
		args = append(args, "--ociodisplay", opts.Display, opts.View)
	}
	return append(args, "-o", out)
}

// Tonemap applies exposure and the display/view transform, writing a PNG at
// out. The leftover intermediate is removed when RemoveInput is set.
func (t *Tool) Tonemap(ctx context.Context, in, out string, opts TonemapOptions) error {
	if err := executil.Run(ctx, t.Path, TonemapArgs(in, out, opts)...); err != nil {
		return err
	}
	if opts.RemoveInput {
		texture.CleanupTemp(in)
	}
	return nil
}

// Convert performs a plain format conversion with no exposure or transform.
func (t *Tool) Convert(ctx context.Context, in, out string) error {
	return executil.Run(ctx, t.Path, in, "-o", out)
}

// infoRe matches the summary line of `oiiotool --info`, e.g.
//
//	beauty.exr : 1920 x 1080, 4 channel, half openexr
var infoRe = regexp.MustCompile(`:\s*(\d+)\s*x\s*(\d+),\s*\d+\s+channel,\s*(.+)$`)

// Info queries image dimensions via `oiiotool --info`. Parse failures fall
// back to the synthetic header so the preview stays usable.
func (t *Tool) Info(ctx context.Context, path string) (texture.Header, error) {
	out, err := executil.Output(ctx, t.Path, "--info", path)
	if err != nil {
		return texture.Header{}, err
	}
	return parseInfo(out), nil
}

func parseInfo(out string) texture.Header {
	for _, line := range strings.Split(out, "\n") {
		m := infoRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		w, _ := strconv.Atoi(m[1])
		h, _ := strconv.Atoi(m[2])
		hdr := texture.FallbackHeader()
		hdr.PixelWidth = w
		hdr.PixelHeight = h
		hdr.Format = strings.TrimSpace(m[3])
		return hdr
	}
	return texture.FallbackHeader()
}

// ColorConfig queries and parses the OCIO display/view catalog. Any failure
// yields the fallback catalog, never an unusable UI.
func (t *Tool) ColorConfig(ctx context.Context) []Display {
	out, err := executil.Output(ctx, t.Path, "--colorconfiginfo")
	if err != nil {
		return FallbackCatalog()
	}
	displays := ParseColorConfig(out)
	if len(displays) == 0 {
		return FallbackCatalog()
	}
	return displays
}

// Version reports the oiiotool version string, for diagnostics.
func (t *Tool) Version(ctx context.Context) (string, error) {
	out, err := executil.Output(ctx, t.Path, "--version")
	if err != nil {
		return "", fmt.Errorf("failed to query oiiotool version: %w", err)
	}
	return strings.TrimSpace(out), nil
}
