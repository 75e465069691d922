package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/skelly-dev/projscout/internal/fileutil"
	"github.com/skelly-dev/projscout/internal/project"
)

type ScanSummary struct {
	Mode       string         `json:"mode"`
	RootPath   string         `json:"root_path"`
	Depth      int            `json:"depth"`
	Candidates int            `json:"candidates"`
	Excluded   []string       `json:"excluded,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	Projects   []project.Info `json:"projects"`
}

func PrintScanSummary(w io.Writer, summary ScanSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(w, summary)
	}

	fmt.Fprintf(w, "%s: root=%s depth=%d candidates=%d projects=%d duration=%dms\n",
		summary.Mode,
		summary.RootPath,
		summary.Depth,
		summary.Candidates,
		len(summary.Projects),
		summary.DurationMS,
	)
	if len(summary.Excluded) > 0 {
		fmt.Fprintf(w, "excluded (%d): %s\n", len(summary.Excluded), SummarizePaths(summary.Excluded, 8))
	}
	for _, info := range summary.Projects {
		line := fmt.Sprintf("  %s %-7s %s", info.Icon, info.Type.String(), info.Name)
		if info.Version != "" {
			line += " " + info.Version
		}
		if info.Name != filepath.Base(info.Dir) {
			line += "  (" + info.Dir + ")"
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func SummarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(paths[:max], ", "), len(paths)-max)
}
