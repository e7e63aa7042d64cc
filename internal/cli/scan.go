package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	cerr "github.com/tomos/cadence/internal/errors"
	"github.com/tomos/cadence/internal/library"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path...]",
	Short: "List the audio files in the library",
	Long: `Scan the given paths (or the configured library paths) and list the
audio files found, with their tags and sizes.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = cfg.Library.Paths
	}
	if len(paths) == 0 {
		return cerr.WithSuggestion(cerr.ErrLibraryNotFound,
			"Pass a directory, or set library.paths in ~/.cadencerc")
	}

	entries, err := library.Scan(paths...)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(library.Tracks(entries))
	}

	table := NewTable("TITLE", "ARTIST", "ALBUM", "SIZE")
	var total uint64
	for _, e := range entries {
		table.Row(
			TruncateString(e.Track.Title, 40),
			TruncateString(e.Track.ArtistLine(), 30),
			TruncateString(e.Track.Album, 30),
			humanize.Bytes(uint64(e.Size)),
		)
		total += uint64(e.Size)
	}
	table.Flush()

	fmt.Printf("\n%d tracks, %s\n", len(entries), humanize.Bytes(total))
	return nil
}
