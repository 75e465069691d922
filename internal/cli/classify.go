package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/skelly-dev/projscout/internal/fileutil"
	"github.com/skelly-dev/projscout/internal/project"
	"github.com/spf13/cobra"
)

type ClassifyResult struct {
	Dir  string       `json:"dir"`
	Type project.Type `json:"type"`
	Icon string       `json:"icon,omitempty"`
}

func RunClassify(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	dirs, err := resolveTargetDirs(args)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json")
	if err != nil {
		return err
	}

	registry, _ := a.newRegistry()
	results := make([]ClassifyResult, 0, len(dirs))
	for _, dir := range dirs {
		result := ClassifyResult{Dir: dir}
		if t, ok := registry.Classify(dir); ok {
			result.Type = t
			result.Icon = t.Icon()
		}
		results = append(results, result)
	}

	if asJSON {
		return fileutil.PrintJSON(cmd.OutOrStdout(), results)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, result := range results {
		fmt.Fprintf(w, "%s\t%s\n", result.Type.String(), result.Dir)
	}
	return w.Flush()
}
