package cli

import (
	"fmt"
	"strings"

	"github.com/skelly-dev/projscout/internal/config"
	"github.com/skelly-dev/projscout/internal/exclude"
	"github.com/skelly-dev/projscout/internal/fileutil"
	"github.com/spf13/cobra"
)

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

func OptionalBoolFlag(cmd *cobra.Command, name string) (bool, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return false, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// OptionalIntFlag returns fallback unless the flag was set explicitly.
func OptionalIntFlag(cmd *cobra.Command, name string, fallback int) (int, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	value, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// ParseExcludeList merges exclude.dirs from config with --exclude flags.
func ParseExcludeList(cmd *cobra.Command, cfg *config.Config) (*exclude.List, error) {
	dirs := append([]string(nil), cfg.Exclude.Dirs...)
	if cmd != nil && cmd.Flags().Lookup("exclude") != nil {
		extra, err := cmd.Flags().GetStringSlice("exclude")
		if err != nil {
			return nil, fmt.Errorf("failed to read --exclude flag: %w", err)
		}
		for _, dir := range extra {
			abs, err := absPath(dir)
			if err != nil {
				return nil, err
			}
			dirs = append(dirs, abs)
		}
	}
	return exclude.New(fileutil.DedupeStrings(dirs)...), nil
}
