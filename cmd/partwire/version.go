package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags at release time. Unset values fall back to the build
// info the Go toolchain embeds in the binary.
var (
	version = ""
	commit  = ""
	date    = ""
)

var readBuildInfo = debug.ReadBuildInfo

type buildInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Modified  bool
}

func currentBuildInfo() buildInfo {
	info := buildInfo{Version: version, Commit: commit, Date: date}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		info.GoVersion = bi.GoVersion
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = shortRevision(setting.Value)
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = setting.Value
				}
			case "vcs.modified":
				info.Modified = setting.Value == "true"
			}
		}
	}

	info.Version = valueOrFallback(info.Version, "dev")
	info.Commit = valueOrFallback(info.Commit, "none")
	info.Date = valueOrFallback(info.Date, "unknown")
	return info
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentBuildInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "partwire %s\n", info.Version)
			commitLine := info.Commit
			if info.Modified {
				commitLine += " (modified)"
			}
			fmt.Fprintf(out, "commit: %s\nbuilt: %s\n", commitLine, info.Date)
			if info.GoVersion != "" {
				fmt.Fprintf(out, "go: %s\n", info.GoVersion)
			}
			return nil
		},
	}

	return cmd
}
