package aggregation

import (
	"math"
	"strings"

	"github.com/gitwhisperer/whisper/internal/git"
)

// CommitShape holds diffusion and size metrics for a single commit.
type CommitShape struct {
	Hash           string
	FileCount      int     // NF
	DirectoryCount int     // ND
	SubsystemCount int     // NS: top-level directories
	Added          int     // LA (estimated)
	Deleted        int     // LD (estimated)
	ChangeEntropy  float64 // normalized Shannon entropy of churn over files
}

// Churn returns the total lines changed.
func (c CommitShape) Churn() int {
	return c.Added + c.Deleted
}

// Shape computes the metrics of one commit.
func Shape(rec git.CommitRecord) CommitShape {
	directories := make(map[string]struct{})
	subsystems := make(map[string]struct{})
	churns := make([]int, 0, len(rec.FilesChanged))

	shape := CommitShape{Hash: rec.Hash, FileCount: len(rec.FilesChanged)}
	for _, change := range rec.FilesChanged {
		stat := ParseSummary(change.Summary)
		shape.Added += stat.Added
		shape.Deleted += stat.Deleted
		churns = append(churns, stat.Lines)

		_, path, _ := change.Paths()
		dir, subsystem := pathComponents(path)
		if dir != "" {
			directories[strings.ToLower(dir)] = struct{}{}
		}
		if subsystem != "" {
			subsystems[strings.ToLower(subsystem)] = struct{}{}
		}
	}

	shape.DirectoryCount = len(directories)
	shape.SubsystemCount = len(subsystems)
	if shape.SubsystemCount == 0 && shape.FileCount > 0 {
		shape.SubsystemCount = 1
	}
	shape.ChangeEntropy = changeEntropy(churns)
	return shape
}

// changeEntropy returns the Shannon entropy of the churn distribution,
// normalized to [0, 1]: 0 is a focused change, 1 an evenly spread one.
func changeEntropy(churns []int) float64 {
	if len(churns) < 2 {
		return 0
	}

	total := 0
	for _, c := range churns {
		total += c
	}
	if total == 0 {
		return 1
	}

	entropy := 0.0
	for _, c := range churns {
		if c > 0 {
			p := float64(c) / float64(total)
			entropy -= p * math.Log2(p)
		}
	}

	normalized := entropy / math.Log2(float64(len(churns)))
	return math.Max(0, math.Min(1, normalized))
}

// pathComponents returns the directory of path and its first component.
func pathComponents(path string) (directory, subsystem string) {
	path = strings.ReplaceAll(path, "\\", "/")
	last := strings.LastIndex(path, "/")
	if last <= 0 {
		return "", ""
	}
	directory = path[:last]
	subsystem, _, _ = strings.Cut(directory, "/")
	return directory, subsystem
}
