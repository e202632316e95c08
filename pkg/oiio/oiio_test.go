package oiio

import (
	"math"
	"reflect"
	"testing"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		ev   float64
		want float64
	}{
		{ev: 0, want: 1},
		{ev: 1, want: 2},
		{ev: 2, want: 4},
		{ev: -1, want: 0.5},
		{ev: -3, want: 0.125},
		{ev: 0.5, want: math.Sqrt2},
	}
	for _, tt := range tests {
		if got := Multiplier(tt.ev); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Multiplier(%v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestTonemapArgs(t *testing.T) {
	tests := []struct {
		name string
		opts TonemapOptions
		want []string
	}{
		{
			name: "zero exposure with display view",
			opts: TonemapOptions{Exposure: 0, Display: "sRGB - Display", View: "ACES 1.0 - SDR Video"},
			want: []string{"in.exr", "--mulc", "1", "--ociodisplay", "sRGB - Display", "ACES 1.0 - SDR Video", "-o", "out.png"},
		},
		{
			name: "positive exposure",
			opts: TonemapOptions{Exposure: 2, Display: "sRGB - Display", View: "Raw"},
			want: []string{"in.exr", "--mulc", "4", "--ociodisplay", "sRGB - Display", "Raw", "-o", "out.png"},
		},
		{
			name: "negative exposure",
			opts: TonemapOptions{Exposure: -1, Display: "sRGB - Display", View: "Raw"},
			want: []string{"in.exr", "--mulc", "0.5", "--ociodisplay", "sRGB - Display", "Raw", "-o", "out.png"},
		},
		{
			name: "no tonemapping skips ocio and converts lin_rec709 to sRGB",
			opts: TonemapOptions{Exposure: 1, Display: "sRGB - Display", View: ViewNoTonemap},
			want: []string{"in.exr", "--mulc", "2", "--colorconvert", "lin_rec709", "sRGB", "-o", "out.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TonemapArgs("in.exr", "out.png", tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TonemapArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseInfo(t *testing.T) {
	out := "/renders/beauty.exr : 1920 x 1080, 4 channel, half openexr\n" +
		"    SHA-1: 0000\n"
	h := parseInfo(out)
	if h.PixelWidth != 1920 || h.PixelHeight != 1080 {
		t.Errorf("parseInfo() size = %dx%d, want 1920x1080", h.PixelWidth, h.PixelHeight)
	}
	if h.Format != "half openexr" {
		t.Errorf("parseInfo() format = %q, want %q", h.Format, "half openexr")
	}
	if h.LevelCount != 1 || h.FaceCount != 1 {
		t.Errorf("parseInfo() counts = %+v, want flat image counts", h)
	}
}

func TestParseInfoMalformed(t *testing.T) {
	h := parseInfo("oiiotool ERROR: could not open file\n")
	if h.LevelCount != 1 || h.LayerCount != 1 || h.FaceCount != 1 || h.PixelDepth != 1 {
		t.Errorf("parseInfo() fallback = %+v, want 1/1/1/1 counts", h)
	}
}
