package preview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"texpeek/pkg/texture"

	"github.com/gorilla/websocket"
)

// Server exposes one file's preview over HTTP: GET / returns the rendered
// page, /ws carries the extract/adjustExposure message loop. Each
// websocket connection gets its own session; the header is re-fetched per
// connection, matching the reopen semantics of the document model.
type Server struct {
	renderer *Renderer
	path     string
	upgrader websocket.Upgrader
}

func NewServer(renderer *Renderer, path string) *Server {
	return &Server{
		renderer: renderer,
		path:     path,
	}
}

// Handler returns the route mux for ListenAndServe.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	session, err := Open(r.Context(), s.renderer, s.path)
	if err != nil {
		if errors.Is(err, texture.ErrUnsupportedFile) {
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	first := session.RenderInitial(r.Context())
	var imageB64, errText string
	switch first.Type {
	case TypeUpdateImage:
		imageB64 = first.Base64Image
	case TypeError:
		errText = first.Message
	}

	page := BuildPage(imageB64, session.Header(), session.Selection(), session.Catalog(), errText)
	markup, err := RenderPage(s.path, page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(markup)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	session, err := Open(r.Context(), s.renderer, s.path)
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err))
		return
	}

	// One invocation at a time: the read loop serializes messages, so a
	// slow external tool delays this session only.
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("websocket read error", "err", err)
			}
			return
		}
		resp := session.HandleMessage(context.Background(), msg)
		if err := conn.WriteJSON(resp); err != nil {
			slog.Debug("websocket write error", "err", err)
			return
		}
	}
}
