package history

import (
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordAndList(t *testing.T) {
	j := openTestJournal(t)

	entries := []Entry{
		{Timestamp: 100, Path: "a.exr", Kind: "image", Exposure: 0, Display: "sRGB - Display", View: "Raw", DurationMS: 40, Outcome: "ok"},
		{Timestamp: 200, Path: "cube.ktx2", Kind: "ktx2", Level: 1, Face: 3, Exposure: 1.5, Display: "sRGB - Display", View: "ACES 1.0 - SDR Video", DurationMS: 120, Outcome: "ok"},
		{Timestamp: 300, Path: "bad.ktx2", Kind: "ktx2", Outcome: "error", Error: "ktx extract failed"},
	}
	for _, e := range entries {
		if err := j.Record(e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := j.List(10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(got))
	}
	if got[0].Path != "bad.ktx2" || got[2].Path != "a.exr" {
		t.Errorf("List() order = [%s %s %s], want newest first", got[0].Path, got[1].Path, got[2].Path)
	}
	if got[1].Face != 3 || got[1].Level != 1 {
		t.Errorf("List() selection = %+v, want face 3 level 1", got[1])
	}
	if got[0].Error != "ktx extract failed" {
		t.Errorf("List() error field = %q", got[0].Error)
	}
}

func TestListLimit(t *testing.T) {
	j := openTestJournal(t)
	for i := 0; i < 10; i++ {
		if err := j.Record(Entry{Timestamp: int64(i + 1), Path: "x.exr", Kind: "image", Outcome: "ok"}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	got, err := j.List(4)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 4 {
		t.Errorf("List(4) returned %d entries", len(got))
	}
}

func TestClear(t *testing.T) {
	j := openTestJournal(t)
	if err := j.Record(Entry{Path: "a.exr", Kind: "image", Outcome: "ok"}); err != nil {
		t.Fatal(err)
	}
	if err := j.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	got, err := j.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("List() after Clear() returned %d entries", len(got))
	}
}
