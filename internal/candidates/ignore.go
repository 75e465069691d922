package candidates

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

const IgnoreFile = ".projscoutignore"

// DefaultIgnore lists directories that are never project candidates.
var DefaultIgnore = []string{
	".git/",
	".hg/",
	".svn/",
	".cache/",
	"node_modules/",
	"vendor/",
	"dist/",
	"build/",
	"target/",
	"zig-out/",
	".zig-cache/",
	"bazel-*/",
	"Library/",
	"__pycache__/",
}

type ignoreRule struct {
	re       *regexp.Regexp
	pattern  string
	negated  bool
	dirOnly  bool
	anchored bool
	nested   bool
}

// Matcher applies gitignore-like rules; the last matching rule wins.
type Matcher struct {
	rules []ignoreRule
}

// NewMatcher prepends DefaultIgnore to userRules, so a user "!build/" can
// bring a default back.
func NewMatcher(userRules []string) *Matcher {
	lines := make([]string, 0, len(DefaultIgnore)+len(userRules))
	lines = append(lines, DefaultIgnore...)
	lines = append(lines, userRules...)

	m := &Matcher{rules: make([]ignoreRule, 0, len(lines))}
	for _, line := range lines {
		if r, ok := compileRule(line); ok {
			m.rules = append(m.rules, r)
		}
	}
	return m
}

// Ignored reports whether relPath (slash or OS separated, relative to the
// scan root) is ignored.
func (m *Matcher) Ignored(relPath string, isDir bool) bool {
	if m == nil {
		return false
	}
	relPath = cleanRel(relPath)
	if relPath == "" {
		return false
	}
	ignored := false
	for _, r := range m.rules {
		if r.matches(relPath, isDir) {
			ignored = !r.negated
		}
	}
	return ignored
}

func compileRule(line string) (ignoreRule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return ignoreRule{}, false
	}

	var r ignoreRule
	if rest, ok := strings.CutPrefix(line, "!"); ok {
		r.negated = true
		line = rest
	}
	if rest, ok := strings.CutPrefix(line, "/"); ok {
		r.anchored = true
		line = rest
	}
	if rest, ok := strings.CutSuffix(line, "/"); ok {
		r.dirOnly = true
		line = rest
	}
	line = cleanRel(line)
	if line == "" {
		return ignoreRule{}, false
	}

	re, err := regexp.Compile("^" + globPattern(line) + "$")
	if err != nil {
		return ignoreRule{}, false
	}
	r.re = re
	r.pattern = line
	r.nested = strings.Contains(line, "/")
	return r, true
}

func (r ignoreRule) matches(relPath string, isDir bool) bool {
	segments := strings.Split(relPath, "/")

	if r.dirOnly {
		// Any ancestor directory of relPath, or relPath itself when it is a
		// directory, may satisfy a directory rule.
		last := len(segments) - 1
		if isDir {
			last = len(segments)
		}
		for i := 1; i <= last; i++ {
			if r.matchPrefix(segments[:i]) {
				return true
			}
		}
		return false
	}

	if r.anchored || r.nested {
		if r.re.MatchString(relPath) {
			return true
		}
		if r.anchored {
			return false
		}
		for i := 1; i < len(segments); i++ {
			if r.re.MatchString(strings.Join(segments[i:], "/")) {
				return true
			}
		}
		return false
	}

	for _, segment := range segments {
		if r.re.MatchString(segment) {
			return true
		}
	}
	return false
}

// matchPrefix tests the directory formed by segments.
func (r ignoreRule) matchPrefix(segments []string) bool {
	if r.anchored || r.nested {
		return r.re.MatchString(strings.Join(segments, "/"))
	}
	return r.re.MatchString(segments[len(segments)-1])
}

func globPattern(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		switch ch := pattern[i]; {
		case ch == '*' && i+1 < len(pattern) && pattern[i+1] == '*':
			b.WriteString(".*")
			i++
		case ch == '*':
			b.WriteString("[^/]*")
		case ch == '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	return b.String()
}

func cleanRel(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return ""
	}
	return path.Clean(p)
}

// LoadRules reads the ignore file at root. A missing file yields no rules.
func LoadRules(fs afero.Fs, root string) ([]string, error) {
	ignorePath := filepath.Join(root, IgnoreFile)
	f, err := fs.Open(ignorePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", IgnoreFile, err)
	}
	defer f.Close()

	rules := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", IgnoreFile, err)
	}
	return rules, nil
}

// IgnoreTemplate is the starter ignore file written by init. It only holds
// comments, so it loads as an empty rule set.
func IgnoreTemplate() string {
	var b strings.Builder
	b.WriteString("# Directories skipped by projscout scan, in gitignore syntax.\n")
	b.WriteString("# Built in (negate with !name/ to scan them anyway):\n")
	for _, rule := range DefaultIgnore {
		b.WriteString("#   " + rule + "\n")
	}
	b.WriteString("#\n# archive/\n# /experiments/*-old/\n")
	return b.String()
}
