package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skelly-dev/projscout/internal/config"
	"github.com/skelly-dev/projscout/internal/project"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestClassifyJSON(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "engine", "project.godot"), "config/name=\"Demo\"\n")
	mustWriteFile(t, filepath.Join(root, "repo", ".git", "HEAD"), "ref: refs/heads/main\n")
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, err := runRoot(t, "classify", "--json",
		filepath.Join(root, "engine"),
		filepath.Join(root, "repo"),
		filepath.Join(root, "empty"),
	)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	var results []ClassifyResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("failed to decode classify output: %v\n%s", err, out)
	}
	want := []project.Type{project.TypeGodot, project.TypeGit, project.TypeNone}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, result := range results {
		if result.Type != want[i] {
			t.Fatalf("result %d: expected %q, got %q", i, want[i], result.Type)
		}
	}
	if results[2].Icon != "" {
		t.Fatalf("expected no icon for unclassified dir")
	}
}

func TestClassifyDefaultsToWorkingDirectory(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "CMakeLists.txt"), "project(x)\n")

	var stdout bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	withWorkingDir(t, root, func() {
		if err := RunClassify(cmd, nil); err != nil {
			t.Fatalf("RunClassify failed: %v", err)
		}
	})
	if !strings.HasPrefix(stdout.String(), "cmake") {
		t.Fatalf("expected cmake classification, got %q", stdout.String())
	}
}

func TestClassifyRejectsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "notes.txt")
	mustWriteFile(t, file, "hi\n")

	if err := RunClassify(&cobra.Command{}, []string{file}); err == nil {
		t.Fatalf("expected error for non-directory argument")
	}
}

func TestInfoJSONRefinesBazel(t *testing.T) {
	t.Setenv("PROJSCOUT_BAZEL_QUERY", "printf 'mylib 1.2.3\\n'")
	root := t.TempDir()
	dir := filepath.Join(root, "checkout")
	mustWriteFile(t, filepath.Join(dir, "MODULE.bazel"), "")
	mustWriteFile(t, filepath.Join(dir, "README.md"), "# checkout\n\nA library.\n")

	out, err := runRoot(t, "info", "--json", dir)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}

	var info project.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("failed to decode info output: %v\n%s", err, out)
	}
	if info.Name != "mylib" || info.Version != "1.2.3" || info.Stage != project.StageRefined {
		t.Fatalf("expected refined bazel info, got %+v", info)
	}
	if info.Module == nil || info.Module.Name != "mylib" {
		t.Fatalf("expected module record, got %+v", info.Module)
	}
	if len(info.Description) != 1 || info.Description[0] != "A library." {
		t.Fatalf("expected README description, got %v", info.Description)
	}
}

func TestInfoJSONKeepsBaselineWhenQueryFails(t *testing.T) {
	t.Setenv("PROJSCOUT_BAZEL_QUERY", "exit 7")
	dir := filepath.Join(t.TempDir(), "checkout")
	mustWriteFile(t, filepath.Join(dir, "MODULE.bazel"), "")

	out, err := runRoot(t, "info", "--json", dir)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	var info project.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("failed to decode info output: %v", err)
	}
	if info.Name != "checkout" || info.Stage != project.StageBaseline || info.Icon == "" {
		t.Fatalf("expected baseline info, got %+v", info)
	}
}

func TestInfoPlainRust(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "grepper")
	mustWriteFile(t, filepath.Join(dir, "Cargo.toml"), "[package]\nname = \"grepper\"\nversion = \"0.2.0\"\nedition = \"2021\"\n")

	out, err := runRoot(t, "info", "--plain", dir)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{project.TypeRust.Icon() + " grepper", dir, "version: 0.2.0", "edition: 2021"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestInfoRejectsUnknownDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := runRoot(t, "info", "--json", dir); err == nil {
		t.Fatalf("expected error for unclassified directory")
	}
}

func TestExcludeMergesConfigAndFlags(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "config.yaml")
	mustWriteFile(t, cfgPath, "exclude:\n  dirs:\n    - /srv/archive\n")

	out, err := runRoot(t, "--config", cfgPath, "exclude", "--json",
		"--exclude", filepath.Join(root, "scratch"),
		"/srv/archive/old", filepath.Join(root, "work"),
	)
	if err != nil {
		t.Fatalf("exclude failed: %v", err)
	}

	var report ExcludeReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("failed to decode exclude output: %v\n%s", err, out)
	}
	if len(report.Dirs) != 2 || report.Dirs[0] != "/srv/archive" || report.Dirs[1] != filepath.Join(root, "scratch") {
		t.Fatalf("unexpected exclusion list: %v", report.Dirs)
	}
	if !report.Checks["/srv/archive/old"] || report.Checks[filepath.Join(root, "work")] {
		t.Fatalf("unexpected checks: %v", report.Checks)
	}
}

func TestExcludePlainEmpty(t *testing.T) {
	out, err := runRoot(t, "exclude")
	if err != nil {
		t.Fatalf("exclude failed: %v", err)
	}
	if strings.TrimSpace(out) != "no excluded directories" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestInvalidConfigIsReported(t *testing.T) {
	t.Setenv("PROJSCOUT_SCAN_CONCURRENCY", "0")
	t.Setenv("PROJSCOUT_LOGGING_LEVEL", "chatty")

	_, err := runRoot(t, "exclude")
	if err == nil {
		t.Fatalf("expected config validation error")
	}
	for _, want := range []string{"scan.concurrency", "logging.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error, got %v", want, err)
		}
	}
}

func TestScanPlainListsProjects(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "alpha", "CMakeLists.txt"), "project(alpha)\n")
	mustWriteFile(t, filepath.Join(root, "beta", "build.zig"), "// zig\n")
	mustWriteFile(t, filepath.Join(root, "skipme", "Cargo.toml"), "[package]\nname = \"skip\"\n")
	mustWriteFile(t, filepath.Join(root, ".projscoutignore"), "skipme/\n")

	out, err := runRoot(t, "scan", root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !strings.Contains(out, "projects=2") {
		t.Fatalf("expected two projects in summary:\n%s", out)
	}
	if !strings.Contains(out, "alpha") || !strings.Contains(out, "beta") || strings.Contains(out, "skip") {
		t.Fatalf("unexpected scan output:\n%s", out)
	}
}

func TestScanHonoursExcludeFlag(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "alpha", "CMakeLists.txt"), "project(alpha)\n")
	mustWriteFile(t, filepath.Join(root, "beta", "CMakeLists.txt"), "project(beta)\n")

	out, err := runRoot(t, "scan", root, "--json", "--exclude", filepath.Join(root, "beta"))
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	var summary ScanSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("failed to decode scan output: %v", err)
	}
	if len(summary.Projects) != 1 || summary.Projects[0].Name != "alpha" {
		t.Fatalf("expected only alpha, got %+v", summary.Projects)
	}
	if summary.Candidates != 2 {
		t.Fatalf("expected root and alpha as candidates, got %d", summary.Candidates)
	}
}

func TestParseExcludeListDedupes(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().StringSlice("exclude", []string{}, "")
	mustSetFlag(t, cmd, "exclude", "/a")
	mustSetFlag(t, cmd, "exclude", "/b")

	cfg := config.Default()
	cfg.Exclude.Dirs = []string{"/a"}
	list, err := ParseExcludeList(cmd, cfg)
	if err != nil {
		t.Fatalf("ParseExcludeList failed: %v", err)
	}
	if got := list.Dirs(); len(got) != 2 || got[0] != "/a" || got[1] != "/b" {
		t.Fatalf("unexpected dirs: %v", got)
	}
}

func TestOptionalIntFlagFallsBackUntilSet(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Int("depth", 1, "")

	got, err := OptionalIntFlag(cmd, "depth", 4)
	if err != nil || got != 4 {
		t.Fatalf("expected fallback 4, got %d (%v)", got, err)
	}
	mustSetFlag(t, cmd, "depth", "2")
	got, err = OptionalIntFlag(cmd, "depth", 4)
	if err != nil || got != 2 {
		t.Fatalf("expected explicit 2, got %d (%v)", got, err)
	}
}

func TestSummarizePaths(t *testing.T) {
	if got := SummarizePaths([]string{"a", "b"}, 3); got != "a, b" {
		t.Fatalf("unexpected summary: %q", got)
	}
	if got := SummarizePaths([]string{"a", "b", "c"}, 2); got != "a, b ... (+1 more)" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func withWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()

	originalWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get cwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWD)
	}()

	fn()
}

func mustSetFlag(t *testing.T, cmd *cobra.Command, key, value string) {
	t.Helper()
	if err := cmd.Flags().Set(key, value); err != nil {
		t.Fatalf("failed to set --%s: %v", key, err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestScanProgressReporterDisabledForBuffers(t *testing.T) {
	var buf bytes.Buffer
	r := newScanProgressReporter(&buf, 2, false)
	r.Visited("/a")
	r.Visited("/b")
	r.Done()
	if buf.Len() != 0 {
		t.Fatalf("expected no progress output for non-terminal writer, got %q", buf.String())
	}
	if r.Count() != 2 {
		t.Fatalf("expected 2 visited directories, got %d", r.Count())
	}
}

func TestInitWritesStartersOnce(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "projscout", "config.yaml")

	out, err := runRoot(t, "--config", cfgPath, "init", "--write-config", root)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	ignorePath := filepath.Join(root, ".projscoutignore")
	if !strings.Contains(out, "wrote "+ignorePath) || !strings.Contains(out, "wrote "+cfgPath) {
		t.Fatalf("unexpected output: %q", out)
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if !strings.Contains(string(data), "bazel mod graph") {
		t.Fatalf("config template missing bazel query:\n%s", data)
	}

	out, err = runRoot(t, "--config", cfgPath, "init", "--write-config", root)
	if err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if !strings.Contains(out, "kept existing "+ignorePath) || !strings.Contains(out, "kept existing "+cfgPath) {
		t.Fatalf("expected existing files to be kept: %q", out)
	}
}

func TestInitWithoutConfigFlagOnlyWritesIgnoreFile(t *testing.T) {
	root := t.TempDir()
	out, err := runRoot(t, "init", root)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if strings.Contains(out, "config:") {
		t.Fatalf("config should not be written without --write-config: %q", out)
	}
	if _, err := os.Stat(filepath.Join(root, ".projscoutignore")); err != nil {
		t.Fatalf("ignore file not written: %v", err)
	}
}

func TestDoctorHealthyWithoutBazelProjects(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "crate", "Cargo.toml"), "[package]\nname = \"crate\"\n")
	mustWriteFile(t, filepath.Join(root, "dots", ".git", "HEAD"), "ref: refs/heads/main\n")

	out, err := runRoot(t, "doctor", "--json", root)
	if err != nil {
		t.Fatalf("doctor failed: %v", err)
	}
	var summary DoctorSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("failed to decode doctor output: %v\n%s", err, out)
	}
	if !summary.Healthy {
		t.Fatalf("expected healthy summary, got %+v", summary)
	}
	if summary.Types[project.TypeRust] != 1 || summary.Types[project.TypeGit] != 1 {
		t.Fatalf("unexpected type counts: %v", summary.Types)
	}
	if summary.Tools["bazel"].Present {
		t.Fatalf("bazel should not be present: %#v", summary.Tools["bazel"])
	}
}

func TestDoctorReportsMissingBazelTools(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "mono", "MODULE.bazel"), "module(name = \"mono\")\n")
	t.Setenv("PATH", t.TempDir())

	out, err := runRoot(t, "doctor", root)
	if err != nil {
		t.Fatalf("doctor failed: %v", err)
	}
	if !strings.HasPrefix(out, "doctor: issues\n") {
		t.Fatalf("expected issues status, got %q", out)
	}
	if !strings.Contains(out, "needed for bazel module details") {
		t.Fatalf("expected missing bazel tooling, got %q", out)
	}
	if !strings.Contains(out, "next: run projscout init --write-config") {
		t.Fatalf("expected config suggestion, got %q", out)
	}
}

func TestScanJSONLWritesOneProjectPerLine(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "alpha", "CMakeLists.txt"), "project(alpha)\n")
	mustWriteFile(t, filepath.Join(root, "beta", "build.zig"), "// zig\n")

	out, err := runRoot(t, "scan", "--jsonl", root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", out)
	}
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		var info project.Info
		if err := json.Unmarshal([]byte(line), &info); err != nil {
			t.Fatalf("failed to decode %q: %v", line, err)
		}
		names = append(names, info.Name)
	}
	if strings.Join(names, ",") != "alpha,beta" {
		t.Fatalf("unexpected project order: %v", names)
	}
}
