package core

import "testing"

func TestTrackArtist(t *testing.T) {
	tr := Track{Artists: []string{"First", "Second"}}
	if tr.Artist() != "First" {
		t.Errorf("Artist = %q, want %q", tr.Artist(), "First")
	}
	if tr.ArtistLine() != "First, Second" {
		t.Errorf("ArtistLine = %q, want %q", tr.ArtistLine(), "First, Second")
	}

	var empty Track
	if empty.Artist() != "" {
		t.Errorf("Artist = %q for no artists, want empty", empty.Artist())
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusIdle:    "Idle",
		StatusLoading: "Loading",
		StatusPlaying: "Playing",
		StatusPaused:  "Paused",
		StatusEnded:   "Ended",
		StatusError:   "Error",
		Status(99):    "Unknown",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("String(%d) = %q, want %q", int(status), got, want)
		}
	}
}

func TestStatusIsActive(t *testing.T) {
	active := []Status{StatusLoading, StatusPlaying, StatusPaused}
	for _, s := range active {
		if !s.IsActive() {
			t.Errorf("%s.IsActive = false, want true", s)
		}
	}
	inactive := []Status{StatusIdle, StatusEnded, StatusError}
	for _, s := range inactive {
		if s.IsActive() {
			t.Errorf("%s.IsActive = true, want false", s)
		}
	}
}
