package aggregation

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/gitwhisperer/whisper/internal/git"
)

// --- Property Tests ---

func TestRapidChangeEntropy_OutputBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		churns := rapid.SliceOfN(rapid.IntRange(0, 1000), 0, 50).Draw(t, "churns")

		result := changeEntropy(churns)

		if result < 0.0 || result > 1.0 {
			t.Fatalf("changeEntropy returned %f, expected in [0,1]", result)
		}
	})
}

func TestRapidChangeEntropy_PermutationInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		churns := rapid.SliceOfN(rapid.IntRange(0, 500), 2, 20).Draw(t, "churns")

		reversed := make([]int, len(churns))
		for i := range churns {
			reversed[i] = churns[len(churns)-1-i]
		}

		if a, b := changeEntropy(churns), changeEntropy(reversed); math.Abs(a-b) > 1e-10 {
			t.Fatalf("Permutation changed entropy: original=%f, reversed=%f", a, b)
		}
	})
}

func TestRapidParseSummary_SplitsLines(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.IntRange(0, 5000).Draw(t, "lines")
		glyphs := rapid.StringMatching(`[+-]{0,40}`).Draw(t, "glyphs")

		got := ParseSummary(strings.TrimSpace(fmt.Sprintf("%d %s", lines, glyphs)))

		if got.Lines != lines || got.Added+got.Deleted != lines {
			t.Fatalf("ParseSummary(%d %s) = %+v", lines, glyphs, got)
		}
		if got.Added < 0 || got.Deleted < 0 {
			t.Fatalf("negative estimate: %+v", got)
		}
	})
}

func TestRapidMostChanged_CountsEveryTouch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := genCommitRecords().Draw(t, "records")

		touches := 0
		for _, rec := range records {
			touches += len(rec.FilesChanged)
		}

		total := 0
		for _, fa := range MostChanged(records, 0) {
			total += fa.CommitCount
		}
		if total != touches {
			t.Fatalf("aggregated %d touches, expected %d", total, touches)
		}
	})
}

// --- Generators ---

func genCommitRecords() *rapid.Generator[[]git.CommitRecord] {
	return rapid.Custom(func(t *rapid.T) []git.CommitRecord {
		count := rapid.IntRange(0, 15).Draw(t, "count")
		records := make([]git.CommitRecord, count)
		for i := range records {
			files := rapid.IntRange(0, 5).Draw(t, fmt.Sprintf("files%d", i))
			seen := make(map[string]bool)
			changes := make([]git.FileChange, 0, files)
			for j := 0; j < files; j++ {
				path := fmt.Sprintf("dir%d/file%d.go", rapid.IntRange(0, 3).Draw(t, "dir"), rapid.IntRange(0, 5).Draw(t, "file"))
				if seen[path] {
					continue
				}
				seen[path] = true
				changes = append(changes, git.FileChange{
					FilePath: path,
					Summary:  fmt.Sprintf("%d +-", rapid.IntRange(0, 100).Draw(t, "lines")),
				})
			}
			records[i] = git.CommitRecord{Hash: fmt.Sprintf("%07x", i+1), FilesChanged: changes}
		}
		return records
	})
}
