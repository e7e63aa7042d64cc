package cli

import (
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is stamped via ldflags on release builds. Module builds fall
// back to what the Go toolchain recorded in the binary.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		version, revision, goVersion := buildInfo()

		if JSONOutput() {
			out, _ := json.MarshalIndent(map[string]string{
				"version":  version,
				"revision": revision,
				"go":       goVersion,
			}, "", "  ")
			fmt.Println(string(out))
			return
		}

		fmt.Printf("cadence %s\n", version)
		if Verbose() {
			fmt.Printf("  revision: %s\n", revision)
			fmt.Printf("  go:       %s\n", goVersion)
		}
	},
}

// buildInfo resolves version details, preferring the ldflags stamp and
// filling the rest from the embedded build info.
func buildInfo() (version, revision, goVersion string) {
	version, revision, goVersion = Version, "unknown", "unknown"

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	goVersion = bi.GoVersion
	if version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			revision = s.Value
			if len(revision) > 12 {
				revision = revision[:12]
			}
		}
	}
	return
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
