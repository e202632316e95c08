package preview

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"texpeek/pkg/ktx"

	"github.com/gorilla/websocket"
)

func testServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "probe.exr")
	if err := os.WriteFile(src, []byte("exr"), 0644); err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(stubOiiotool(t, dir, filepath.Join(dir, "oiio.log")), ktx.New("ktx-unused"))
	ts := httptest.NewServer(NewServer(r, src).Handler())
	t.Cleanup(ts.Close)
	return ts, src
}

func TestServerIndex(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	body := string(raw)
	if !strings.Contains(body, "<title>probe.exr</title>") {
		t.Error("index page missing document title")
	}
	if !strings.Contains(body, "data:image/png;base64,") {
		t.Error("index page missing embedded preview image")
	}
}

func TestServerWebsocketRoundTrip(t *testing.T) {
	ts, _ := testServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	ev := 1.0
	if err := conn.WriteJSON(Message{Type: TypeAdjustExposure, Exposure: &ev, Display: "sRGB - Display", View: "Raw"}); err != nil {
		t.Fatal(err)
	}

	var resp Message
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Type != TypeUpdateImage {
		t.Fatalf("response type = %q, message %q", resp.Type, resp.Message)
	}
	if resp.Base64Image == "" {
		t.Error("response missing image payload")
	}
}

func TestServerUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(src, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(stubOiiotool(t, dir, filepath.Join(dir, "oiio.log")), ktx.New("ktx-unused"))
	ts := httptest.NewServer(NewServer(r, src).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("GET / status = %d, want %d", resp.StatusCode, http.StatusUnsupportedMediaType)
	}
}
