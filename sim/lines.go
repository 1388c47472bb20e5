package sim

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoLines indicates a peer script produced no usable lines.
var ErrNoLines = errors.New("no peer lines")

// LoadLines reads peer lines from every file in fsys matching pattern.
// Patterns support ** for recursive matching. Files are read in lexical
// order, each non-blank line becomes one peer line.
func LoadLines(fsys iofs.FS, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var paths []string
	err := doublestar.GlobWalk(fsys, pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", pattern, err)
	}
	slices.Sort(paths)

	var lines []string
	for _, p := range paths {
		data, err := iofs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("pattern %q: %w", pattern, ErrNoLines)
	}
	return lines, nil
}
