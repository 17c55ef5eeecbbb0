package coupling

import (
	"sort"
	"strings"

	"github.com/gitwhisperer/whisper/config"
	"github.com/gitwhisperer/whisper/internal/git"
)

// FilePair is an unordered pair of files.
type FilePair struct {
	FileA string
	FileB string
}

// NewFilePair orders the two paths so that (a, b) and (b, a) compare equal.
func NewFilePair(a, b string) FilePair {
	if strings.ToLower(a) > strings.ToLower(b) {
		a, b = b, a
	}
	return FilePair{FileA: a, FileB: b}
}

// ChangeCoupling describes how often two files are committed together.
type ChangeCoupling struct {
	FileA              string  `json:"fileA"`
	FileB              string  `json:"fileB"`
	CoCommitCount      int     `json:"coCommits"`
	FileACommitCount   int     `json:"fileACommits"`
	FileBCommitCount   int     `json:"fileBCommits"`
	JaccardCoefficient float64 `json:"jaccard"`    // |A ∩ B| / |A ∪ B|
	Confidence         float64 `json:"confidence"` // P(B|A)
	Lift               float64 `json:"lift"`       // P(A,B) / (P(A) × P(B))
}

// Result holds the ranked couplings plus totals over the analyzed commits.
type Result struct {
	Couplings    []ChangeCoupling
	TotalCommits int
	TotalFiles   int
	TotalPairs   int
}

// Analyzer finds files that tend to change in the same commit.
type Analyzer struct {
	options config.CouplingConfig
}

// NewAnalyzer creates a new coupling analyzer.
func NewAnalyzer(options config.CouplingConfig) *Analyzer {
	return &Analyzer{options: options}
}

// Analyze counts co-commits across records. Commits touching more than
// MaxFilesPerCommit files still count towards per-file totals but form no pairs.
func (a *Analyzer) Analyze(records []git.CommitRecord) Result {
	fileCommitCounts := make(map[string]int)
	pairCoCommitCounts := make(map[FilePair]int)

	for _, rec := range records {
		seen := make(map[string]struct{}, len(rec.FilesChanged))
		files := make([]string, 0, len(rec.FilesChanged))

		for _, change := range rec.FilesChanged {
			_, path, _ := change.Paths()
			path = strings.ToLower(strings.TrimSpace(path))
			if path == "" {
				continue
			}
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			fileCommitCounts[path]++
			files = append(files, path)
		}

		if len(files) < 2 || (a.options.MaxFilesPerCommit > 0 && len(files) > a.options.MaxFilesPerCommit) {
			continue
		}
		for i := 0; i < len(files)-1; i++ {
			for j := i + 1; j < len(files); j++ {
				pairCoCommitCounts[NewFilePair(files[i], files[j])]++
			}
		}
	}

	totalCommits := len(records)
	var couplings []ChangeCoupling
	for pair, coCommits := range pairCoCommitCounts {
		if coCommits < a.options.MinCoCommits {
			continue
		}

		commitsA := fileCommitCounts[pair.FileA]
		commitsB := fileCommitCounts[pair.FileB]

		jaccard := float64(coCommits) / float64(commitsA+commitsB-coCommits)
		if jaccard < a.options.MinJaccardThreshold {
			continue
		}

		supportA := float64(commitsA) / float64(totalCommits)
		supportB := float64(commitsB) / float64(totalCommits)
		supportAB := float64(coCommits) / float64(totalCommits)

		couplings = append(couplings, ChangeCoupling{
			FileA:              pair.FileA,
			FileB:              pair.FileB,
			CoCommitCount:      coCommits,
			FileACommitCount:   commitsA,
			FileBCommitCount:   commitsB,
			JaccardCoefficient: jaccard,
			Confidence:         float64(coCommits) / float64(commitsA),
			Lift:               supportAB / (supportA * supportB),
		})
	}

	// Map iteration order is random; break ties so output is stable.
	sort.Slice(couplings, func(i, j int) bool {
		ci, cj := couplings[i], couplings[j]
		if ci.JaccardCoefficient != cj.JaccardCoefficient {
			return ci.JaccardCoefficient > cj.JaccardCoefficient
		}
		if ci.CoCommitCount != cj.CoCommitCount {
			return ci.CoCommitCount > cj.CoCommitCount
		}
		if ci.FileA != cj.FileA {
			return ci.FileA < cj.FileA
		}
		return ci.FileB < cj.FileB
	})

	if a.options.TopPairs > 0 && len(couplings) > a.options.TopPairs {
		couplings = couplings[:a.options.TopPairs]
	}

	return Result{
		Couplings:    couplings,
		TotalCommits: totalCommits,
		TotalFiles:   len(fileCommitCounts),
		TotalPairs:   len(pairCoCommitCounts),
	}
}
