// Package readme extracts a short description from a project's README.
package readme

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const DefaultMaxLines = 8

var DefaultCandidates = []string{
	"README.md",
	"README",
	"README.markdown",
	"README.txt",
	"readme.md",
	"Readme.md",
}

type Options struct {
	MaxLines   int
	Candidates []string
}

// Find returns the first README candidate present in dir.
func Find(fs afero.Fs, dir string, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		info, err := fs.Stat(path)
		if err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Describe returns the lines of the first prose paragraph of the README in dir.
// Headings, HTML blocks and badge-only paragraphs are skipped.
func Describe(fs afero.Fs, dir string, opts Options) []string {
	path, ok := Find(fs, dir, opts.Candidates)
	if !ok {
		return nil
	}
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil
	}
	return FirstParagraph(src, opts.MaxLines)
}

func FirstParagraph(src []byte, maxLines int) []string {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if node.Kind() != ast.KindParagraph || isDecorative(node, src) {
			continue
		}
		lines := node.Lines()
		out := make([]string, 0, lines.Len())
		for i := 0; i < lines.Len() && len(out) < maxLines; i++ {
			segment := lines.At(i)
			line := strings.TrimSpace(string(segment.Value(src)))
			if line == "" {
				continue
			}
			out = append(out, line)
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// isDecorative reports paragraphs made only of images, image links and raw html.
func isDecorative(node ast.Node, src []byte) bool {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Image, *ast.RawHTML:
			continue
		case *ast.Link:
			if !isDecorative(n, src) {
				return false
			}
		case *ast.Text:
			if strings.TrimSpace(string(n.Segment.Value(src))) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}
