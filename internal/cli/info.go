package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/skelly-dev/projscout/internal/fileutil"
	"github.com/skelly-dev/projscout/internal/preview"
	"github.com/skelly-dev/projscout/internal/project"
	"github.com/skelly-dev/projscout/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func RunInfo(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	dirs, err := resolveTargetDirs(args)
	if err != nil {
		return err
	}
	dir := dirs[0]

	asJSON, err := OptionalBoolFlag(cmd, "json")
	if err != nil {
		return err
	}
	plain, err := OptionalBoolFlag(cmd, "plain")
	if err != nil {
		return err
	}

	registry, exec := a.newRegistry()
	projectType, ok := registry.Classify(dir)
	if !ok {
		return fmt.Errorf("%s is not a recognised project", dir)
	}
	a.logger.Debug("classified directory", zap.String("dir", dir), zap.String("type", projectType.String()))

	tracker, err := preview.NewTracker(a.cfg.Preview.CacheSize)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	if asJSON || plain {
		registry.BuildInfo(ctx, dir, tracker.Sink(tracker.Begin(), nil))
		exec.Wait()

		info, ok := tracker.Latest(dir)
		if !ok {
			return fmt.Errorf("no information produced for %s", dir)
		}
		if asJSON {
			return fileutil.PrintJSON(cmd.OutOrStdout(), info)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), ui.Render(info, ui.PlainStyles()))
		return err
	}

	return runInfoProgram(ctx, cancel, cmd, dir, tracker, func(emit project.Emit) {
		registry.BuildInfo(ctx, dir, emit)
		exec.Wait()
	})
}

// runInfoProgram shows snapshots as they arrive. Closing the display cancels
// any pending subprocess and makes late snapshots stale.
func runInfoProgram(ctx context.Context, cancel context.CancelFunc, cmd *cobra.Command, dir string, tracker *preview.Tracker, build func(project.Emit)) error {
	program := tea.NewProgram(
		ui.NewInfoModel(ui.NewStyles()),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	token := tracker.Begin()
	done := make(chan struct{})
	go func() {
		defer close(done)
		build(tracker.Sink(token, func(info project.Info) {
			program.Send(ui.SnapshotMsg{Info: info})
		}))
		if tracker.Current(token) {
			program.Send(ui.DoneMsg{})
		}
	}()

	_, err := program.Run()
	interrupted := ctx.Err() != nil
	tracker.Invalidate()
	cancel()
	<-done
	if err != nil && !interrupted {
		return fmt.Errorf("failed to run display for %s: %w", dir, err)
	}
	return nil
}
