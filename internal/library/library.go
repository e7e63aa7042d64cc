// Package library turns directories of audio files into playable tracks.
// It reads metadata only; whether a file actually decodes is the sink's
// concern.
package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhowden/tag"

	"github.com/tomos/cadence/internal/core"
	cerr "github.com/tomos/cadence/internal/errors"
)

// audioExts are the extensions the sink can decode.
var audioExts = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".wav":  true,
}

// Entry is a scanned track with its on-disk size.
type Entry struct {
	Track core.Track
	Size  int64
}

// Scan walks the given paths (files or directories) and returns the audio
// files found, in path order. Track durations stay unknown until the sink
// reports them; tags that fail to parse fall back to the file name.
func Scan(paths ...string) ([]Entry, error) {
	var entries []Entry

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", cerr.ErrLibraryNotFound, root)
		}

		if !info.IsDir() {
			if e, ok := scanFile(root, info.Size()); ok {
				entries = append(entries, e)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return err
			}
			if e, ok := scanFile(path, fi.Size()); ok {
				entries = append(entries, e)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Track.AudioRef < entries[j].Track.AudioRef
	})
	return entries, nil
}

// Tracks extracts the track list from scan entries.
func Tracks(entries []Entry) []core.Track {
	tracks := make([]core.Track, len(entries))
	for i, e := range entries {
		tracks[i] = e.Track
	}
	return tracks
}

// scanFile builds an entry for one file, or reports false for non-audio.
func scanFile(path string, size int64) (Entry, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if !audioExts[ext] {
		return Entry{}, false
	}

	track := core.Track{
		ID:       path,
		Title:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		AudioRef: path,
	}

	if f, err := os.Open(path); err == nil {
		if meta, err := tag.ReadFrom(f); err == nil {
			if t := meta.Title(); t != "" {
				track.Title = t
			}
			if a := meta.Artist(); a != "" {
				track.Artists = splitArtists(a)
			}
			track.Album = meta.Album()
		}
		f.Close()
	}

	return Entry{Track: track, Size: size}, true
}

// splitArtists breaks a tag artist field on common separators.
func splitArtists(s string) []string {
	seps := []string{"; ", " / ", " feat. ", " ft. "}
	parts := []string{s}
	for _, sep := range seps {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}

	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
