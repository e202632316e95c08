// Package texture holds the shared model for previewed files: the container
// header snapshot, the sub-image selection, and temp-file naming. All pixel
// work is delegated to external tools; nothing here touches image data.
package texture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFile marks a path whose extension texpeek cannot preview.
var ErrUnsupportedFile = errors.New("unsupported file type")

// Kind says which external toolchain a file routes through.
type Kind int

const (
	KindUnknown Kind = iota
	// KindImage routes through oiiotool only (.exr, .hdr).
	KindImage
	// KindKTX2 routes through ktx extract first, then oiiotool (.ktx2).
	KindKTX2
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindKTX2:
		return "ktx2"
	}
	return "unknown"
}

// DetectKind routes a path by extension.
func DetectKind(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".exr", ".hdr":
		return KindImage, nil
	case ".ktx2":
		return KindKTX2, nil
	}
	return KindUnknown, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(path))
}

// SupportedExtensions lists the extensions DetectKind accepts.
func SupportedExtensions() []string {
	return []string{".exr", ".hdr", ".ktx2"}
}

// Header is a read-only snapshot of a container's dimensions and counts,
// fetched once per open and never mutated. Counts are normalized so that
// "not arrayed" / "not 3D" read as 1, never 0.
type Header struct {
	PixelWidth  int
	PixelHeight int
	LevelCount  int
	LayerCount  int
	FaceCount   int
	PixelDepth  int
	Format      string
}

// FallbackHeader is the synthetic header used when metadata cannot be
// fetched or parsed. The preview stays usable with every selector hidden.
func FallbackHeader() Header {
	return Header{
		PixelWidth:  0,
		PixelHeight: 0,
		LevelCount:  1,
		LayerCount:  1,
		FaceCount:   1,
		PixelDepth:  1,
	}
}

// Normalize clamps zero counts up to 1.
func (h Header) Normalize() Header {
	if h.LevelCount < 1 {
		h.LevelCount = 1
	}
	if h.LayerCount < 1 {
		h.LayerCount = 1
	}
	if h.FaceCount < 1 {
		h.FaceCount = 1
	}
	if h.PixelDepth < 1 {
		h.PixelDepth = 1
	}
	return h
}

// IsCubemap reports whether the container carries cube faces.
func (h Header) IsCubemap() bool {
	return h.FaceCount > 1
}

// LevelSize returns the pixel dimensions of a mip level.
func (h Header) LevelSize(level int) (int, int) {
	w := h.PixelWidth >> uint(level)
	ht := h.PixelHeight >> uint(level)
	if w < 1 {
		w = 1
	}
	if ht < 1 {
		ht = 1
	}
	return w, ht
}

// Selection identifies one sub-image plus its display parameters. It is
// immutable per request: handlers derive a new value instead of mutating.
type Selection struct {
	Level    int     `json:"level"`
	Layer    int     `json:"layer"`
	Face     int     `json:"face"`
	Depth    int     `json:"depth"`
	Exposure float64 `json:"exposure"`
	Display  string  `json:"display"`
	View     string  `json:"view"`
}

// ClampTo bounds the selection indices by the header counts.
func (s Selection) ClampTo(h Header) Selection {
	h = h.Normalize()
	s.Level = clampIndex(s.Level, h.LevelCount)
	s.Layer = clampIndex(s.Layer, h.LayerCount)
	s.Face = clampIndex(s.Face, h.FaceCount)
	s.Depth = clampIndex(s.Depth, h.PixelDepth)
	return s
}

func clampIndex(i, count int) int {
	if i < 0 {
		return 0
	}
	if i >= count {
		return count - 1
	}
	return i
}

// IntermediatePath names the temp file that holds the extracted sub-image
// before tonemapping. Derived from the source base name under the system
// temp dir; previews of two files with the same base name collide.
func IntermediatePath(src string) string {
	return filepath.Join(os.TempDir(), baseName(src)+".texpeek.exr")
}

// PreviewPath names the temp file that holds the final tonemapped PNG.
func PreviewPath(src string) string {
	return filepath.Join(os.TempDir(), baseName(src)+".texpeek.png")
}

func baseName(src string) string {
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CleanupTemp removes a temp file if it exists. Best effort only.
func CleanupTemp(path string) {
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
}
