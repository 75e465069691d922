package cli

import (
	"fmt"

	"github.com/skelly-dev/projscout/internal/fileutil"
	"github.com/spf13/cobra"
)

type ExcludeReport struct {
	Dirs   []string        `json:"dirs"`
	Checks map[string]bool `json:"checks,omitempty"`
}

func RunExclude(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	asJSON, err := OptionalBoolFlag(cmd, "json")
	if err != nil {
		return err
	}
	excludes, err := ParseExcludeList(cmd, a.cfg)
	if err != nil {
		return err
	}

	report := ExcludeReport{Dirs: excludes.Dirs()}
	paths := make([]string, 0, len(args))
	if len(args) > 0 {
		report.Checks = make(map[string]bool, len(args))
		for _, arg := range args {
			path, err := absPath(arg)
			if err != nil {
				return err
			}
			paths = append(paths, path)
			report.Checks[path] = excludes.Excluded(path)
		}
	}

	if asJSON {
		return fileutil.PrintJSON(cmd.OutOrStdout(), report)
	}

	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		if len(report.Dirs) == 0 {
			_, err := fmt.Fprintln(out, "no excluded directories")
			return err
		}
		for _, dir := range report.Dirs {
			fmt.Fprintln(out, dir)
		}
		return nil
	}
	for _, path := range paths {
		state := "included"
		if report.Checks[path] {
			state = "excluded"
		}
		fmt.Fprintf(out, "%s\t%s\n", state, path)
	}
	return nil
}
