// Package sheet composes contact sheets: every cube face or every mip
// level of a container rendered side by side in one PNG. Rendering of the
// individual tiles goes through the normal external-tool pipeline; only
// the compositing happens in-process.
package sheet

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"texpeek/pkg/preview"
	"texpeek/pkg/texture"

	xdraw "golang.org/x/image/draw"
)

// Options tune the sheet layout and the per-tile tonemapping.
type Options struct {
	// CellSize is the square edge each tile is scaled into.
	CellSize int
	Exposure float64
	Display  string
	View     string
}

func (o Options) withDefaults() Options {
	if o.CellSize <= 0 {
		o.CellSize = 256
	}
	return o
}

// Plan lists the selections that become tiles, in order. Cubemaps get one
// tile per face at the selected level; everything else gets one tile per
// mip level.
func Plan(hdr texture.Header) []texture.Selection {
	hdr = hdr.Normalize()
	var sels []texture.Selection
	if hdr.IsCubemap() {
		for face := 0; face < hdr.FaceCount; face++ {
			sels = append(sels, texture.Selection{Face: face})
		}
		return sels
	}
	for level := 0; level < hdr.LevelCount; level++ {
		sels = append(sels, texture.Selection{Level: level})
	}
	return sels
}

// Columns picks the grid width: cube faces in a 3x2 grid, mip chains in
// one row.
func Columns(hdr texture.Header, tiles int) int {
	if hdr.IsCubemap() {
		return 3
	}
	return tiles
}

// Compose scales each tile into a cell and lays them out in a grid.
func Compose(tiles []image.Image, cols, cellSize int) image.Image {
	if cols < 1 {
		cols = 1
	}
	rows := (len(tiles) + cols - 1) / cols
	dst := image.NewRGBA(image.Rect(0, 0, cols*cellSize, rows*cellSize))

	for i, tile := range tiles {
		cell := image.Rect(
			(i%cols)*cellSize,
			(i/cols)*cellSize,
			(i%cols+1)*cellSize,
			(i/cols+1)*cellSize,
		)
		xdraw.ApproxBiLinear.Scale(dst, cell, tile, tile.Bounds(), xdraw.Src, nil)
	}
	return dst
}

// Build renders every planned tile through the external pipeline and
// composes the sheet. progress, when non-nil, is called once per finished
// tile.
func Build(ctx context.Context, r *preview.Renderer, src string, hdr texture.Header, opts Options, progress func()) (image.Image, error) {
	opts = opts.withDefaults()
	plan := Plan(hdr)

	tiles := make([]image.Image, 0, len(plan))
	for _, sel := range plan {
		sel.Exposure = opts.Exposure
		sel.Display = opts.Display
		sel.View = opts.View

		data, err := r.Render(ctx, src, hdr, sel)
		if err != nil {
			return nil, fmt.Errorf("failed to render tile %+v: %w", sel, err)
		}
		tile, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode rendered tile: %w", err)
		}
		tiles = append(tiles, tile)
		if progress != nil {
			progress()
		}
	}

	return Compose(tiles, Columns(hdr, len(tiles)), opts.CellSize), nil
}
