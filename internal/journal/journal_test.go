package journal

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func TestJournal_RecordAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "journal.log")
	j := New(path, nil)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return base }

	j.Record("merge", "2 guest lines merged")
	j.Record("checkout", "order ord-9")

	entries, err := Tail(path, 10)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Tail = %#v, want 2 entries", entries)
	}
	if entries[0].Kind != "merge" || entries[1].Kind != "checkout" {
		t.Fatalf("Tail order = %q, %q", entries[0].Kind, entries[1].Kind)
	}
	if !entries[0].Time.Equal(base) {
		t.Fatalf("Time = %v, want %v", entries[0].Time, base)
	}
}

func TestTail_ReturnsLastNInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")
	j := New(path, nil)
	for i := 0; i < 7; i++ {
		j.Record("login", strconv.Itoa(i))
	}

	entries, err := Tail(path, 3)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Tail = %d entries, want 3", len(entries))
	}
	for i, want := range []string{"4", "5", "6"} {
		if entries[i].Detail != want {
			t.Fatalf("entries[%d].Detail = %q, want %q", i, entries[i].Detail, want)
		}
	}
}

func TestTail_MissingFileAndZeroLimit(t *testing.T) {
	entries, err := Tail(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err != nil || entries != nil {
		t.Fatalf("Tail missing file = %#v, %v; want nil, nil", entries, err)
	}

	entries, err = Tail("whatever", 0)
	if err != nil || entries != nil {
		t.Fatalf("Tail zero limit = %#v, %v; want nil, nil", entries, err)
	}
}

func TestTail_SkipsUnparseableLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")
	content := `{"ts":"2026-03-01T10:00:00Z","kind":"merge","detail":"ok"}` + "\n" +
		"garbage line\n" +
		`{"ts":"2026-03-01T10:01:00Z","kind":"checkout","detail":"ord-1"}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entries, err := Tail(path, 10)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(entries) != 2 || entries[0].Kind != "merge" || entries[1].Kind != "checkout" {
		t.Fatalf("Tail = %#v", entries)
	}
}
