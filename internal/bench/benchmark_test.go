package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/skelly-dev/projscout/internal/builders"
	"github.com/skelly-dev/projscout/internal/candidates"
	"github.com/skelly-dev/projscout/internal/probe"
	"github.com/skelly-dev/projscout/internal/project"
	"github.com/skelly-dev/projscout/internal/runner"
)

var syntheticMarkers = []string{
	"MODULE.bazel",
	"CMakeLists.txt",
	"Cargo.toml",
	"build.zig.zon",
	"project.godot",
	"ProjectSettings/ProjectVersion.txt",
	".git/HEAD",
	"README.md",
}

func BenchmarkScan_MediumTree(b *testing.B) {
	root := b.TempDir()
	createSyntheticWorkspace(b, root, 250)

	prober := probe.NewOS()
	noRun := runner.Func(func(_ context.Context, _ string, _ []string, _ string, onComplete func(runner.Result)) {
		onComplete(runner.Result{Output: "bench 1.0.0"})
	})
	registry := builders.NewDefaultRegistry(builders.Env{Prober: prober, Runner: noRun}, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dirs, err := candidates.Walk(prober.Fs(), root, 1, candidates.NewMatcher(nil), nil)
		if err != nil {
			b.Fatalf("walk failed: %v", err)
		}
		projects := 0
		for _, dir := range dirs {
			if registry.BuildInfo(context.Background(), dir, func(project.Info) {}) {
				projects++
			}
		}
		if projects == 0 {
			b.Fatalf("expected projects")
		}
	}
}

func createSyntheticWorkspace(tb testing.TB, root string, projects int) {
	tb.Helper()

	for i := 0; i < projects; i++ {
		dir := filepath.Join(root, fmt.Sprintf("project_%03d", i))
		marker := filepath.Join(dir, syntheticMarkers[i%len(syntheticMarkers)])
		if err := os.MkdirAll(filepath.Dir(marker), 0755); err != nil {
			tb.Fatalf("mkdir failed: %v", err)
		}
		content := fmt.Sprintf("name = \"project_%03d\"\nversion = \"0.%d.0\"\n", i, i%10)
		if err := os.WriteFile(marker, []byte(content), 0644); err != nil {
			tb.Fatalf("write failed: %v", err)
		}
	}
}
