// Package persist saves playback state between runs so the next session
// can pick up where the last one stopped.
package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/tomos/cadence/internal/core"
)

// State is the snapshot written to disk.
type State struct {
	Tracks    []core.Track `toml:"tracks"`
	Index     int          `toml:"index"`
	Shuffle   bool         `toml:"shuffle"`
	RepeatOne bool         `toml:"repeat_one"`
	Volume    float64      `toml:"volume"`

	// PositionSecs is the playback position within the current track.
	PositionSecs float64 `toml:"position_secs"`
}

// Store reads and writes state snapshots at a fixed path. It remembers
// the hash of the last write and skips saves that would be identical.
type Store struct {
	path     string
	lastHash uint64
}

// NewStore creates a store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user state file location, honoring
// XDG_STATE_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "cadence", "state.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "cadence", "state.toml"), nil
}

// Load reads the saved state. A missing file is not an error; it returns
// (nil, nil) so callers can start fresh.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var st State
	if err := toml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	if h, err := hashstructure.Hash(st, hashstructure.FormatV2, nil); err == nil {
		s.lastHash = h
	}
	return &st, nil
}

// Save writes the state, creating parent directories as needed. If the
// state hashes equal to the last write it is a no-op.
func (s *Store) Save(st *State) error {
	h, err := hashstructure.Hash(st, hashstructure.FormatV2, nil)
	if err == nil && h == s.lastHash && s.lastHash != 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(st); err != nil {
		return err
	}

	s.lastHash = h
	return nil
}

// Path returns the file the store writes to.
func (s *Store) Path() string {
	return s.path
}
