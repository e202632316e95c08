package preview

import (
	"context"
	"encoding/base64"
	"fmt"

	"texpeek/pkg/oiio"
	"texpeek/pkg/texture"
)

// State tracks where a preview session is in its lifecycle.
type State int

const (
	StateUnopened State = iota
	StateLoading
	StateRendered
	StateUpdating
	// StateErrorShown means the last invocation failed and the page shows
	// the error text in place of the image. The session stays interactive;
	// the next message retries.
	StateErrorShown
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateUpdating:
		return "updating"
	case StateErrorShown:
		return "error"
	}
	return "unknown"
}

// Session holds the per-document preview state: the header snapshot and
// color catalog fetched once at open, plus the current selection. Nothing
// here survives session close.
type Session struct {
	path     string
	header   texture.Header
	catalog  []oiio.Display
	renderer *Renderer
	state    State
	sel      texture.Selection
}

// Open resolves a file into a session: detects the file kind, snapshots
// the header, discovers the color catalog, and seeds the selection with
// exposure 0 and the catalog's default display/view. Only an unsupported
// file type fails; metadata trouble degrades to fallbacks.
func Open(ctx context.Context, renderer *Renderer, path string) (*Session, error) {
	if _, err := texture.DetectKind(path); err != nil {
		return nil, err
	}

	s := &Session{
		path:     path,
		renderer: renderer,
		state:    StateUnopened,
	}

	hdr, err := renderer.Header(ctx, path)
	if err != nil {
		return nil, err
	}
	s.header = hdr
	s.catalog = renderer.Oiio.ColorConfig(ctx)

	display, view := oiio.DefaultSelection(s.catalog)
	s.sel = texture.Selection{Exposure: 0, Display: display, View: view}
	return s, nil
}

func (s *Session) Header() texture.Header       { return s.header }
func (s *Session) Catalog() []oiio.Display      { return s.catalog }
func (s *Session) Selection() texture.Selection { return s.sel }
func (s *Session) State() State                 { return s.state }

// RenderInitial runs the first extract+tonemap and returns the outbound
// updateImage message. Unopened → Loading → Rendered (or ErrorShown).
func (s *Session) RenderInitial(ctx context.Context) Message {
	s.state = StateLoading
	return s.renderCurrent(ctx)
}

// HandleMessage is the single dispatch point for inbound UI messages.
// Every message triggers one re-render; an unknown type is an error
// message without a state change.
func (s *Session) HandleMessage(ctx context.Context, msg Message) Message {
	switch msg.Type {
	case TypeExtract:
		if msg.Selection != nil {
			s.applySelection(*msg.Selection)
		}
	case TypeAdjustExposure:
		if msg.Selection != nil {
			s.applySelection(*msg.Selection)
		}
		if msg.Exposure != nil {
			s.sel.Exposure = *msg.Exposure
		}
		if msg.Display != "" {
			s.sel.Display = msg.Display
		}
		if msg.View != "" {
			s.sel.View = msg.View
		}
	default:
		return errorMessage(fmt.Errorf("unknown message type %q", msg.Type))
	}

	s.state = StateUpdating
	return s.renderCurrent(ctx)
}

func (s *Session) applySelection(sel texture.Selection) {
	// Display parameters ride along with the selection; empty means keep.
	if sel.Display == "" {
		sel.Display = s.sel.Display
	}
	if sel.View == "" {
		sel.View = s.sel.View
	}
	s.sel = sel.ClampTo(s.header)
}

func (s *Session) renderCurrent(ctx context.Context) Message {
	data, err := s.renderer.Render(ctx, s.path, s.header, s.sel)
	if err != nil {
		s.state = StateErrorShown
		return errorMessage(err)
	}
	s.state = StateRendered

	out := Message{
		Type:        TypeUpdateImage,
		Base64Image: base64.StdEncoding.EncodeToString(data),
	}
	if s.header.LevelCount > 1 {
		out.LevelInfoHTML = LevelInfoHTML(s.header, s.sel)
	}
	return out
}
