package texture

import (
	"errors"
	"strings"
	"testing"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    Kind
		wantErr bool
	}{
		{name: "exr", path: "render/beauty.exr", want: KindImage},
		{name: "hdr", path: "probe.hdr", want: KindImage},
		{name: "ktx2", path: "env/cube.ktx2", want: KindKTX2},
		{name: "uppercase extension", path: "BEAUTY.EXR", want: KindImage},
		{name: "png unsupported", path: "thumb.png", want: KindUnknown, wantErr: true},
		{name: "no extension", path: "Makefile", want: KindUnknown, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectKind(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("DetectKind() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("DetectKind() = %v, want %v", got, tt.want)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedFile) {
				t.Errorf("DetectKind() error = %v, want ErrUnsupportedFile", err)
			}
		})
	}
}

func TestHeaderNormalize(t *testing.T) {
	h := Header{PixelWidth: 256, PixelHeight: 256}.Normalize()
	if h.LevelCount != 1 || h.LayerCount != 1 || h.FaceCount != 1 || h.PixelDepth != 1 {
		t.Errorf("Normalize() = %+v, want all counts 1", h)
	}

	h = Header{LevelCount: 9, FaceCount: 6}.Normalize()
	if h.LevelCount != 9 || h.FaceCount != 6 {
		t.Errorf("Normalize() clobbered real counts: %+v", h)
	}
}

func TestFallbackHeader(t *testing.T) {
	h := FallbackHeader()
	if h.LevelCount != 1 || h.LayerCount != 1 || h.FaceCount != 1 || h.PixelDepth != 1 {
		t.Errorf("FallbackHeader() = %+v, want 1/1/1/1 counts", h)
	}
	if h.IsCubemap() {
		t.Error("FallbackHeader().IsCubemap() = true, want false")
	}
}

func TestLevelSize(t *testing.T) {
	h := Header{PixelWidth: 1024, PixelHeight: 512, LevelCount: 11}
	tests := []struct {
		level int
		wantW int
		wantH int
	}{
		{level: 0, wantW: 1024, wantH: 512},
		{level: 1, wantW: 512, wantH: 256},
		{level: 9, wantW: 2, wantH: 1},
		{level: 10, wantW: 1, wantH: 1},
	}
	for _, tt := range tests {
		w, ht := h.LevelSize(tt.level)
		if w != tt.wantW || ht != tt.wantH {
			t.Errorf("LevelSize(%d) = %dx%d, want %dx%d", tt.level, w, ht, tt.wantW, tt.wantH)
		}
	}
}

func TestSelectionClampTo(t *testing.T) {
	h := Header{LevelCount: 4, LayerCount: 2, FaceCount: 6, PixelDepth: 1}

	s := Selection{Level: 10, Layer: -1, Face: 6, Depth: 3}.ClampTo(h)
	if s.Level != 3 {
		t.Errorf("Level = %d, want 3", s.Level)
	}
	if s.Layer != 0 {
		t.Errorf("Layer = %d, want 0", s.Layer)
	}
	if s.Face != 5 {
		t.Errorf("Face = %d, want 5", s.Face)
	}
	if s.Depth != 0 {
		t.Errorf("Depth = %d, want 0", s.Depth)
	}
}

func TestTempPaths(t *testing.T) {
	inter := IntermediatePath("/assets/env/cube.ktx2")
	if !strings.HasSuffix(inter, "cube.texpeek.exr") {
		t.Errorf("IntermediatePath() = %q, want suffix cube.texpeek.exr", inter)
	}
	prev := PreviewPath("/assets/env/cube.ktx2")
	if !strings.HasSuffix(prev, "cube.texpeek.png") {
		t.Errorf("PreviewPath() = %q, want suffix cube.texpeek.png", prev)
	}
}
