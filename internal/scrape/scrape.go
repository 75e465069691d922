// Package scrape pulls "key: value" and "key=value" pairs out of loosely
// structured text files such as Unity assets, Godot projects and ini files.
package scrape

import (
	"bufio"
	"strings"

	"github.com/spf13/afero"
)

const (
	Colon  = ":"
	Equals = "="

	maxLineSize = 1024 * 1024
)

// ExtractColon reads "key: value" lines.
func ExtractColon(fs afero.Fs, path string, keys ...string) map[string]string {
	return Extract(fs, path, Colon, keys...)
}

// ExtractEquals reads "key=value" lines.
func ExtractEquals(fs afero.Fs, path string, keys ...string) map[string]string {
	return Extract(fs, path, Equals, keys...)
}

// Extract returns the first value seen for each requested key. Lines are split
// at the first delimiter and both halves trimmed. Reading stops once every key
// has a value. A file that cannot be opened yields an empty map.
func Extract(fs afero.Fs, path string, delim string, keys ...string) map[string]string {
	values := make(map[string]string, len(keys))
	wanted := make(map[string]bool, len(keys))
	for _, key := range keys {
		wanted[key] = true
	}
	if len(wanted) == 0 || delim == "" {
		return values
	}

	f, err := fs.Open(path)
	if err != nil {
		return values
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		rawKey, rawValue, ok := strings.Cut(scanner.Text(), delim)
		if !ok {
			continue
		}
		key := strings.TrimSpace(rawKey)
		if !wanted[key] {
			continue
		}
		if _, seen := values[key]; seen {
			continue
		}
		values[key] = strings.TrimSpace(rawValue)
		if len(values) == len(wanted) {
			break
		}
	}
	return values
}

// Unquote strips a trailing comma and one pair of matching quotes.
func Unquote(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimSpace(strings.TrimSuffix(value, ","))
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' || first == '\'') && first == last {
			value = value[1 : len(value)-1]
		}
	}
	return value
}
