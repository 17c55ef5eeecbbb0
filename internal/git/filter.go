package git

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

// PathFilter keeps file changes whose paths match the include/exclude globs.
type PathFilter struct {
	Include []string // Glob patterns to include
	Exclude []string // Glob patterns to exclude
}

// IsEmpty reports whether the filter accepts every path.
func (f PathFilter) IsEmpty() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Validate checks that every pattern is a well-formed glob.
func (f PathFilter) Validate() error {
	for _, pattern := range append(append([]string{}, f.Include...), f.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return &InvalidPatternError{Pattern: pattern}
		}
	}
	return nil
}

// Matches checks if a path matches the include/exclude filters.
func (f PathFilter) Matches(path string) bool {
	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range f.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	// If no include patterns, accept all
	if len(f.Include) == 0 {
		return true
	}

	for _, pattern := range f.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}

	return false
}

// Apply returns copies of the records with non-matching file changes removed.
// Commits are never dropped, only their file lists are narrowed.
func (f PathFilter) Apply(records []CommitRecord) []CommitRecord {
	if f.IsEmpty() {
		return records
	}
	return lo.Map(records, func(r CommitRecord, _ int) CommitRecord {
		r.FilesChanged = lo.Filter(r.FilesChanged, func(fc FileChange, _ int) bool {
			return f.Matches(fc.FilePath)
		})
		return r
	})
}

// InvalidPatternError reports a malformed glob pattern.
type InvalidPatternError struct {
	Pattern string
}

func (e *InvalidPatternError) Error() string {
	return "invalid glob pattern: " + e.Pattern
}
