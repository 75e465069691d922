package cli

import (
	"time"

	"github.com/skelly-dev/projscout/internal/candidates"
	"github.com/skelly-dev/projscout/internal/fileutil"
	"github.com/skelly-dev/projscout/internal/preview"
	"github.com/skelly-dev/projscout/internal/project"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func RunScan(cmd *cobra.Command, args []string) error {
	start := time.Now()
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
	asJSONL, err := OptionalBoolFlag(cmd, "jsonl")
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

	fs := afero.NewOsFs()
	ignoreRules, err := candidates.LoadRules(fs, root)
	if err != nil {
		return err
	}
	dirs, err := candidates.Walk(fs, root, depth, candidates.NewMatcher(ignoreRules), excludes,
		candidates.WithLogger(a.logger.Named("candidates")))
	if err != nil {
		return err
	}
	a.logger.Debug("scan candidates", zap.String("root", root), zap.Int("count", len(dirs)))

	tracker, err := preview.NewTracker(max(a.cfg.Preview.CacheSize, len(dirs)))
	if err != nil {
		return err
	}
	registry, exec := a.newRegistry()
	token := tracker.Begin()
	progress := newScanProgressReporter(cmd.ErrOrStderr(), len(dirs), asJSON || asJSONL)

	// Subprocesses outlive the group, so they get the command context
	// rather than the group's.
	parent := commandContext(cmd)
	g, gctx := errgroup.WithContext(parent)
	g.SetLimit(max(1, a.cfg.Scan.Concurrency))
	for _, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			registry.BuildInfo(parent, dir, tracker.Sink(token, nil))
			progress.Visited(dir)
			return nil
		})
	}
	waitErr := g.Wait()
	exec.Wait()
	progress.Done()
	if waitErr != nil {
		return waitErr
	}

	summary := ScanSummary{
		Mode:       "scan",
		RootPath:   root,
		Depth:      depth,
		Candidates: len(dirs),
		Excluded:   excludes.Dirs(),
		Projects:   make([]project.Info, 0, len(dirs)),
	}
	for _, dir := range dirs {
		if info, ok := tracker.Latest(dir); ok {
			summary.Projects = append(summary.Projects, info)
		}
	}
	summary.DurationMS = time.Since(start).Milliseconds()
	if asJSONL {
		data, err := fileutil.EncodeJSONL(summary.Projects)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	return PrintScanSummary(cmd.OutOrStdout(), summary, asJSON)
}
