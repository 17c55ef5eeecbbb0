package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gitwhisperer/whisper/internal/classify"
	"github.com/gitwhisperer/whisper/internal/git"
)

const reportDateTimeLayout = "2006-01-02T15:04:05"

func limitTop[T any](items []T, top int) []T {
	if top <= 0 || top >= len(items) {
		return items
	}
	return items[:top]
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}

// tagSummary renders non-zero tag counts in precedence order, e.g. "fix 2, feature 1".
func tagSummary(counts map[classify.Tag]int) string {
	parts := make([]string, 0, len(classify.Order))
	for _, tag := range classify.Order {
		if n := counts[tag]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", tag, n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func filePaths(files []git.FileChange) []string {
	paths := make([]string, len(files))
	for i, fc := range files {
		paths[i] = fc.FilePath
	}
	return paths
}

func commitHashes(records []git.CommitRecord) []string {
	hashes := make([]string, len(records))
	for i, r := range records {
		hashes[i] = r.Hash
	}
	return hashes
}
