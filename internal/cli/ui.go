package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tomos/cadence/internal/audio"
	"github.com/tomos/cadence/internal/core"
	"github.com/tomos/cadence/internal/engine"
	"github.com/tomos/cadence/internal/persist"
	"github.com/tomos/cadence/internal/tui"
)

var uiNoResume bool

var uiCmd = &cobra.Command{
	Use:     "ui [path...]",
	Aliases: []string{"tui"},
	Short:   "Launch interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard provides a live view with:
  • Player bar - current track, progress, volume
  • Queue - upcoming tracks
  • History - recently played tracks
  • Expanded view - full-size now playing, dismissed by dragging

Keyboard shortcuts:
  q, Ctrl+C    Quit
  Space        Play/Pause
  n            Next track
  p            Previous track
  s            Shuffle
  r            Repeat one
  ←/→          Seek
  +/-          Volume up/down
  Enter        Expand now playing
  Tab          Switch panel

The saved queue is restored by default; pass paths or --no-resume to
start fresh.`,
	RunE: runUI,
}

func init() {
	uiCmd.Flags().BoolVar(&uiNoResume, "no-resume", false, "ignore the saved queue")
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	store, err := stateStore()
	if err != nil {
		return err
	}

	var (
		tracks     []core.Track
		startIndex int
		saved      = loadSavedState(store, args)
	)

	if saved != nil && len(saved.Tracks) > 0 {
		tracks = saved.Tracks
		startIndex = saved.Index
	} else {
		tracks, err = scanTracks(args)
		if err != nil {
			return err
		}
	}

	sink := audio.New(audio.WithLogger(logger))
	eng := engine.New(sink,
		engine.WithLogger(logger),
		engine.WithObserver(engine.NewLogObserver(logger)),
		engine.WithVolume(playbackVolume(saved)),
	)
	defer eng.Close()

	if cfg.Playback.Shuffle || (saved != nil && saved.Shuffle) {
		eng.ToggleShuffle()
	}
	if cfg.Playback.RepeatOne || (saved != nil && saved.RepeatOne) {
		eng.ToggleRepeatOne()
	}

	eng.LoadAndPlay(tracks, startIndex)

	if err := tui.Run(eng, tui.Options{
		Theme:             cfg.TUI.Theme,
		SeekStep:          time.Duration(cfg.TUI.SeekStepSecs) * time.Second,
		GestureThreshold:  cfg.Gesture.Threshold,
		GestureCloseDelay: time.Duration(cfg.Gesture.CloseDelayMS) * time.Millisecond,
	}); err != nil {
		return err
	}

	if err := saveState(store, eng); err != nil {
		logger.Warn("failed to save state", "err", err)
	}
	return nil
}

// loadSavedState returns the saved queue unless the user asked to start
// fresh, explicitly or by naming paths.
func loadSavedState(store *persist.Store, args []string) *persist.State {
	if uiNoResume || len(args) > 0 {
		return nil
	}
	saved, err := store.Load()
	if err != nil {
		logger.Warn("failed to load saved state", "err", err)
		return nil
	}
	return saved
}
