package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skelly-dev/projscout/internal/candidates"
	"github.com/skelly-dev/projscout/internal/fileutil"
	"github.com/skelly-dev/projscout/internal/probe"
	"github.com/skelly-dev/projscout/internal/project"
	"github.com/skelly-dev/projscout/internal/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type DoctorSummary struct {
	Mode        string                       `json:"mode"`
	RootPath    string                       `json:"root_path"`
	ConfigFile  string                       `json:"config_file,omitempty"`
	IgnoreFile  bool                         `json:"ignore_file"`
	Candidates  int                          `json:"candidates"`
	Types       map[project.Type]int         `json:"types"`
	Tools       map[string]runner.Capability `json:"tools"`
	Missing     []string                     `json:"missing,omitempty"`
	Suggestions []string                     `json:"suggestions,omitempty"`
	Healthy     bool                         `json:"healthy"`
}

// RunDoctor classifies the scan tree and checks that the tools the found
// project types rely on are installed.
func RunDoctor(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	roots, err := resolveTargetDirs(args)
	if err != nil {
		return err
	}
	root := roots[0]

	asJSON, err := OptionalBoolFlag(cmd, "json")
	if err != nil {
		return err
	}
	depth, err := OptionalIntFlag(cmd, "depth", a.cfg.Scan.Depth)
	if err != nil {
		return err
	}
	excludes, err := ParseExcludeList(cmd, a.cfg)
	if err != nil {
		return err
	}

	prober := probe.NewOS()
	ignoreRules, err := candidates.LoadRules(prober.Fs(), root)
	if err != nil {
		return err
	}
	dirs, err := candidates.Walk(prober.Fs(), root, depth, candidates.NewMatcher(ignoreRules), excludes,
		candidates.WithLogger(a.logger.Named("candidates")))
	if err != nil {
		return err
	}

	summary := DoctorSummary{
		Mode:       "doctor",
		RootPath:   root,
		ConfigFile: viper.ConfigFileUsed(),
		IgnoreFile: prober.FileExists(filepath.Join(root, candidates.IgnoreFile)),
		Candidates: len(dirs),
		Types:      make(map[project.Type]int),
	}
	if summary.ConfigFile != "" && !prober.FileExists(summary.ConfigFile) {
		summary.ConfigFile = ""
	}

	classifier := project.NewClassifier(prober, nil)
	present := make(map[string]bool)
	for _, dir := range dirs {
		if t, ok := classifier.Classify(dir); ok {
			summary.Types[t]++
			present[t.String()] = true
		}
	}

	required := map[string][]string{
		project.TypeBazel.String(): {a.cfg.Bazel.Shell, "bazel"},
	}
	summary.Tools = runner.ProbeTools(required, present)
	for feature, capability := range summary.Tools {
		if capability.Present && !capability.Available {
			summary.Missing = append(summary.Missing, fmt.Sprintf("%s (needed for %s module details)", capability.Tool, feature))
			summary.Suggestions = append(summary.Suggestions, fmt.Sprintf("install %s or point bazel.shell/bazel.query at it", capability.Tool))
		}
	}
	if summary.ConfigFile == "" {
		summary.Suggestions = append(summary.Suggestions, "run projscout init --write-config")
	}
	if !summary.IgnoreFile {
		summary.Suggestions = append(summary.Suggestions, "run projscout init to add "+candidates.IgnoreFile)
	}

	summary.Missing = fileutil.DedupeStrings(summary.Missing)
	sort.Strings(summary.Missing)
	summary.Suggestions = fileutil.DedupeStrings(summary.Suggestions)
	sort.Strings(summary.Suggestions)
	summary.Healthy = len(summary.Missing) == 0

	out := cmd.OutOrStdout()
	if asJSON {
		return fileutil.PrintJSON(out, summary)
	}

	status := "issues"
	if summary.Healthy {
		status = "ok"
	}
	fmt.Fprintf(out, "doctor: %s\n", status)
	configFile := summary.ConfigFile
	if configFile == "" {
		configFile = "defaults"
	}
	fmt.Fprintf(out, "config: %s\n", configFile)
	fmt.Fprintf(out, "scan: root=%s candidates=%d ignore_file=%t\n", summary.RootPath, summary.Candidates, summary.IgnoreFile)

	types := make([]string, 0, len(summary.Types))
	for t, n := range summary.Types {
		types = append(types, fmt.Sprintf("%s=%d", t, n))
	}
	sort.Strings(types)
	if len(types) > 0 {
		fmt.Fprintf(out, "projects: %s\n", strings.Join(types, " "))
	}
	if len(summary.Missing) > 0 {
		fmt.Fprintf(out, "missing (%d): %s\n", len(summary.Missing), strings.Join(summary.Missing, ", "))
	}
	for _, suggestion := range summary.Suggestions {
		fmt.Fprintf(out, "next: %s\n", suggestion)
	}
	return nil
}
