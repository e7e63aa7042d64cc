package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomos/cadence/internal/audio"
	"github.com/tomos/cadence/internal/console"
	"github.com/tomos/cadence/internal/core"
	"github.com/tomos/cadence/internal/engine"
	cerr "github.com/tomos/cadence/internal/errors"
	"github.com/tomos/cadence/internal/library"
	"github.com/tomos/cadence/internal/persist"
)

var (
	playShuffle   bool
	playRepeat    bool
	playTimestamp bool
	playResume    bool
)

var playCmd = &cobra.Command{
	Use:   "play [path...]",
	Short: "Play audio files or directories",
	Long: `Play the given files or directories in console mode.

Without arguments the configured library paths are played. The queue is
cyclic, so playback continues until interrupted; the queue and position
are saved on exit and restored with --resume.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVarP(&playShuffle, "shuffle", "s", false, "shuffle the queue")
	playCmd.Flags().BoolVarP(&playRepeat, "repeat", "r", false, "repeat the current track")
	playCmd.Flags().BoolVarP(&playTimestamp, "timestamps", "t", false, "prefix events with timestamps")
	playCmd.Flags().BoolVar(&playResume, "resume", false, "resume the previously saved queue")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	store, err := stateStore()
	if err != nil {
		return err
	}

	var (
		tracks     []core.Track
		startIndex int
		saved      *persist.State
	)

	if playResume {
		saved, err = store.Load()
		if err != nil {
			return fmt.Errorf("failed to load saved state: %w", err)
		}
	}

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
	printer := console.NewPrinter(os.Stdout, console.WithTimestamp(playTimestamp))

	eng := engine.New(sink,
		engine.WithLogger(logger),
		engine.WithObserver(printer),
		engine.WithVolume(playbackVolume(saved)),
	)
	defer eng.Close()

	if playShuffle || cfg.Playback.Shuffle || (saved != nil && saved.Shuffle) {
		eng.ToggleShuffle()
	}
	if playRepeat || cfg.Playback.RepeatOne || (saved != nil && saved.RepeatOne) {
		eng.ToggleRepeatOne()
	}

	eng.LoadAndPlay(tracks, startIndex)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	if err := saveState(store, eng); err != nil {
		logger.Warn("failed to save state", "err", err)
	}
	fmt.Println()
	return nil
}

// scanTracks resolves the paths to play: explicit arguments first, then
// the configured library paths.
func scanTracks(args []string) ([]core.Track, error) {
	paths := args
	if len(paths) == 0 {
		paths = cfg.Library.Paths
	}
	if len(paths) == 0 {
		return nil, cerr.WithSuggestion(cerr.ErrNoSource,
			"Pass a file or directory, or set library.paths in ~/.cadencerc")
	}

	entries, err := library.Scan(paths...)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, cerr.WithSuggestion(cerr.ErrNoAudioFiles,
			"Supported formats: mp3, flac, ogg, wav")
	}
	return library.Tracks(entries), nil
}

// playbackVolume picks the starting volume: saved state wins over config.
func playbackVolume(saved *persist.State) float64 {
	if saved != nil && saved.Volume > 0 {
		return saved.Volume
	}
	return float64(cfg.Playback.Volume) / 100
}

func stateStore() (*persist.Store, error) {
	path, err := persist.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate state file: %w", err)
	}
	return persist.NewStore(path), nil
}

func saveState(store *persist.Store, eng *engine.Engine) error {
	sess := eng.Session()
	return store.Save(&persist.State{
		Tracks:       eng.QueueTracks(),
		Index:        eng.QueueIndex(),
		Shuffle:      eng.Shuffle(),
		RepeatOne:    sess.RepeatOne,
		Volume:       sess.Volume,
		PositionSecs: sess.Position.Seconds(),
	})
}
