package library

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	cerr "github.com/tomos/cadence/internal/errors"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanFindsAudioFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.mp3"))
	writeFile(t, filepath.Join(dir, "a.flac"))
	writeFile(t, filepath.Join(dir, "sub", "c.ogg"))
	writeFile(t, filepath.Join(dir, "cover.jpg"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	entries, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("found %d entries, want 3", len(entries))
	}

	// Path order, and untagged files fall back to the file name.
	titles := []string{entries[0].Track.Title, entries[1].Track.Title, entries[2].Track.Title}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
}

func TestScanSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.wav")
	writeFile(t, path)

	entries, err := Scan(path)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d entries, want 1", len(entries))
	}
	if entries[0].Track.AudioRef != path {
		t.Errorf("AudioRef = %q, want %q", entries[0].Track.AudioRef, path)
	}
	if entries[0].Size != 1 {
		t.Errorf("Size = %d, want 1", entries[0].Size)
	}
}

func TestScanMissingPath(t *testing.T) {
	_, err := Scan("/no/such/dir")
	if !errors.Is(err, cerr.ErrLibraryNotFound) {
		t.Errorf("Scan error = %v, want ErrLibraryNotFound", err)
	}
}

func TestTracks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp3"))
	writeFile(t, filepath.Join(dir, "b.mp3"))

	entries, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}
	tracks := Tracks(entries)
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(tracks))
	}
	if tracks[0].Title != "a" || tracks[1].Title != "b" {
		t.Errorf("tracks = %v", tracks)
	}
}

func TestSplitArtists(t *testing.T) {
	cases := map[string][]string{
		"Solo":        {"Solo"},
		"A; B":        {"A", "B"},
		"A feat. B":   {"A", "B"},
		"A / B ft. C": {"A", "B", "C"},
		"  Trimmed  ": {"Trimmed"},
	}
	for in, want := range cases {
		if got := splitArtists(in); !reflect.DeepEqual(got, want) {
			t.Errorf("splitArtists(%q) = %v, want %v", in, got, want)
		}
	}
}
