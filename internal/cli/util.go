package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func resolveWorkingDirectory() (string, error) {
	rootPath, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return rootPath, nil
}

func absPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return resolveWorkingDirectory()
	}
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}

// resolveTargetDirs turns positional args into absolute directories,
// defaulting to the working directory.
func resolveTargetDirs(args []string) ([]string, error) {
	if len(args) == 0 {
		dir, err := resolveWorkingDirectory()
		if err != nil {
			return nil, err
		}
		return []string{dir}, nil
	}
	dirs := make([]string, 0, len(args))
	for _, arg := range args {
		dir, err := absPath(arg)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}
