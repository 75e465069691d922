package cli

import (
	"fmt"
	"path/filepath"

	"github.com/skelly-dev/projscout/internal/candidates"
	"github.com/skelly-dev/projscout/internal/config"
	"github.com/skelly-dev/projscout/internal/fileutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RunInit writes a starter ignore file into the scan root and, when asked,
// the default config file. Existing files are left alone.
func RunInit(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)

	dirs, err := resolveTargetDirs(args)
	if err != nil {
		return err
	}
	root := dirs[0]

	out := cmd.OutOrStdout()
	ignorePath := filepath.Join(root, candidates.IgnoreFile)
	if err := writeStarter(cmd, ignorePath, candidates.IgnoreTemplate()); err != nil {
		return err
	}

	writeConfig, err := OptionalBoolFlag(cmd, "write-config")
	if err != nil {
		return err
	}
	if !writeConfig {
		return nil
	}

	cfgPath, err := OptionalStringFlag(cmd, "config")
	if err != nil {
		return err
	}
	if cfgPath == "" {
		cfgPath = config.ConfigFile()
	}
	if cfgPath, err = absPath(cfgPath); err != nil {
		return err
	}
	a.logger.Debug("writing config", zap.String("path", cfgPath))
	if err := writeStarter(cmd, cfgPath, config.Template(a.cfg)); err != nil {
		return err
	}
	fmt.Fprintf(out, "config: %s\n", cfgPath)
	return nil
}

func writeStarter(cmd *cobra.Command, path, content string) error {
	wrote, err := fileutil.WriteIfMissing(path, []byte(fileutil.EnsureTrailingNewline(content)), 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if wrote {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "kept existing %s\n", path)
	}
	return nil
}
