// Package preview drives the preview pipeline: extract a sub-image with
// ktx when needed, tonemap with oiiotool, and serve the result to an
// interactive page over a websocket message protocol.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"texpeek/pkg/history"
	"texpeek/pkg/ktx"
	"texpeek/pkg/oiio"
	"texpeek/pkg/texture"
)

// Renderer runs the extract+tonemap pipeline for one file at a time.
// Invocations are sequential blocking waits; the context is the only
// cancellation path.
type Renderer struct {
	Oiio *oiio.Tool
	Ktx  *ktx.Tool
	Caps ktx.Capabilities

	// Journal, when set, records every render invocation.
	Journal *history.Journal
}

func NewRenderer(oiioTool *oiio.Tool, ktxTool *ktx.Tool) *Renderer {
	return &Renderer{
		Oiio: oiioTool,
		Ktx:  ktxTool,
		Caps: ktx.DefaultCapabilities(),
	}
}

// Render produces tonemapped PNG bytes for one selection of src. KTX2
// files route through `ktx extract` into a temp intermediate first; plain
// EXR/HDR files go straight into oiiotool. Temp files are cleaned up
// best-effort after use.
func (r *Renderer) Render(ctx context.Context, src string, hdr texture.Header, sel texture.Selection) ([]byte, error) {
	kind, err := texture.DetectKind(src)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := r.render(ctx, src, kind, hdr, sel)
	r.record(src, kind, sel, time.Since(start), err)
	return data, err
}

func (r *Renderer) render(ctx context.Context, src string, kind texture.Kind, hdr texture.Header, sel texture.Selection) ([]byte, error) {
	out := texture.PreviewPath(src)
	defer texture.CleanupTemp(out)

	opts := oiio.TonemapOptions{
		Exposure: sel.Exposure,
		Display:  sel.Display,
		View:     sel.View,
	}

	switch kind {
	case texture.KindKTX2:
		inter := texture.IntermediatePath(src)
		if err := r.Ktx.Extract(ctx, src, inter, sel, hdr, r.Caps); err != nil {
			texture.CleanupTemp(inter)
			return nil, err
		}
		opts.RemoveInput = true
		if err := r.Oiio.Tonemap(ctx, inter, out, opts); err != nil {
			texture.CleanupTemp(inter)
			return nil, err
		}
	case texture.KindImage:
		if err := r.Oiio.Tonemap(ctx, src, out, opts); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", texture.ErrUnsupportedFile, src)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered preview: %w", err)
	}
	return data, nil
}

// Header fetches the container metadata for src. KTX2 metadata never
// fails (synthetic fallback); plain image metadata degrades to the
// fallback header on error so the preview stays usable.
func (r *Renderer) Header(ctx context.Context, src string) (texture.Header, error) {
	kind, err := texture.DetectKind(src)
	if err != nil {
		return texture.Header{}, err
	}
	switch kind {
	case texture.KindKTX2:
		return r.Ktx.Info(ctx, src), nil
	default:
		hdr, err := r.Oiio.Info(ctx, src)
		if err != nil {
			slog.Warn("image metadata query failed, using fallback header", "path", src, "err", err)
			return texture.FallbackHeader(), nil
		}
		return hdr, nil
	}
}

func (r *Renderer) record(src string, kind texture.Kind, sel texture.Selection, took time.Duration, renderErr error) {
	if r.Journal == nil {
		return
	}
	entry := history.Entry{
		Path:       src,
		Kind:       kind.String(),
		Level:      sel.Level,
		Layer:      sel.Layer,
		Face:       sel.Face,
		Depth:      sel.Depth,
		Exposure:   sel.Exposure,
		Display:    sel.Display,
		View:       sel.View,
		DurationMS: took.Milliseconds(),
		Outcome:    "ok",
	}
	if renderErr != nil {
		entry.Outcome = "error"
		entry.Error = renderErr.Error()
	}
	if err := r.Journal.Record(entry); err != nil {
		slog.Debug("failed to record render history", "err", err)
	}
}
