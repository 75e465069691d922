package cli

import (
	"fmt"

	"github.com/skelly-dev/projscout/internal/candidates"
	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	var current *app

	rootCmd := &cobra.Command{
		Use:   "projscout",
		Short: "Identify software projects and describe them",
		Long: `Projscout recognises what kind of project a directory holds (bazel,
cmake, rust, zig, godot, unity, unreal, neovim plugin or plain git) from its
marker files, then fills in name, version, engine and description details
from manifests, READMEs and, for bazel, the build tool itself.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, err := OptionalBoolFlag(cmd, "verbose")
			if err != nil {
				return err
			}
			if err := setupApp(cmd, verbose); err != nil {
				return err
			}
			current = appFrom(cmd)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if current != nil {
				current.sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/projscout/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	infoCmd := &cobra.Command{
		Use:   "info [dir]",
		Short: "Show what is known about a project directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunInfo,
	}
	infoCmd.Flags().Bool("json", false, "Print the final snapshot as JSON")
	infoCmd.Flags().Bool("plain", false, "Print the final snapshot without the interactive display")

	classifyCmd := &cobra.Command{
		Use:   "classify [dirs...]",
		Short: "Print the project type of each directory",
		RunE:  RunClassify,
	}
	classifyCmd.Flags().Bool("json", false, "Print machine-readable results")

	scanCmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Find and describe projects below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunScan,
	}
	scanCmd.Flags().Int("depth", 1, "How many directory levels below root to consider (default from scan.depth)")
	scanCmd.Flags().StringSlice("exclude", []string{}, "Directory prefixes to skip (added to exclude.dirs)")
	scanCmd.Flags().Bool("json", false, "Print machine-readable scan summary")
	scanCmd.Flags().Bool("jsonl", false, "Print one JSON object per project")

	excludeCmd := &cobra.Command{
		Use:   "exclude [paths...]",
		Short: "Show the exclusion list, or whether paths are excluded",
		RunE:  RunExclude,
	}
	excludeCmd.Flags().StringSlice("exclude", []string{}, "Extra directory prefixes to add for this run")
	excludeCmd.Flags().Bool("json", false, "Print machine-readable output")

	doctorCmd := &cobra.Command{
		Use:   "doctor [root]",
		Short: "Check config, ignore file and the tools found projects rely on",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunDoctor,
	}
	doctorCmd.Flags().Int("depth", 1, "How many directory levels below root to consider (default from scan.depth)")
	doctorCmd.Flags().StringSlice("exclude", []string{}, "Directory prefixes to skip (added to exclude.dirs)")
	doctorCmd.Flags().Bool("json", false, "Print machine-readable diagnostics")

	initCmd := &cobra.Command{
		Use:   "init [root]",
		Short: "Write a starter " + candidates.IgnoreFile + " and, optionally, the config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunInit,
	}
	initCmd.Flags().Bool("write-config", false, "Also write the effective config to --config or the default config path")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "projscout %s\n", version)
		},
	}

	rootCmd.AddCommand(
		infoCmd,
		classifyCmd,
		scanCmd,
		excludeCmd,
		initCmd,
		doctorCmd,
		versionCmd,
	)

	return rootCmd
}
