package aggregation

import (
	"sort"

	"github.com/gitwhisperer/whisper/internal/git"
)

// FileActivity holds how often and how heavily one file was touched.
type FileActivity struct {
	Path        string `json:"path"`
	CommitCount int    `json:"commits"`
	Added       int    `json:"added"`
	Deleted     int    `json:"deleted"`
	// LastCommit is the hash of the newest commit touching the file.
	LastCommit string `json:"lastCommit"`
}

// Churn returns total lines changed (added + deleted).
func (f *FileActivity) Churn() int {
	return f.Added + f.Deleted
}

// FileActivityAggregator accumulates per-file activity across commits.
type FileActivityAggregator struct {
	files map[string]*FileActivity
}

// NewFileActivityAggregator creates a new aggregator.
func NewFileActivityAggregator() *FileActivityAggregator {
	return &FileActivityAggregator{files: make(map[string]*FileActivity)}
}

// Process aggregates records given in log order (newest first) and returns
// the activity per current path.
func (a *FileActivityAggregator) Process(records []git.CommitRecord) map[string]*FileActivity {
	// Oldest first, so a rename can carry the history of its old path.
	for i := len(records) - 1; i >= 0; i-- {
		a.processRecord(records[i])
	}
	return a.files
}

func (a *FileActivityAggregator) processRecord(rec git.CommitRecord) {
	for _, change := range rec.FilesChanged {
		oldPath, path, renamed := change.Paths()
		if path == "" {
			continue
		}

		if renamed && oldPath != "" && oldPath != path {
			if old, exists := a.files[oldPath]; exists {
				a.merge(a.get(path), old)
				delete(a.files, oldPath)
			}
		}

		stat := ParseSummary(change.Summary)
		fa := a.get(path)
		fa.CommitCount++
		fa.Added += stat.Added
		fa.Deleted += stat.Deleted
		fa.LastCommit = rec.Hash
	}
}

func (a *FileActivityAggregator) get(path string) *FileActivity {
	fa, ok := a.files[path]
	if !ok {
		fa = &FileActivity{Path: path}
		a.files[path] = fa
	}
	return fa
}

func (a *FileActivityAggregator) merge(target, source *FileActivity) {
	target.CommitCount += source.CommitCount
	target.Added += source.Added
	target.Deleted += source.Deleted
	if target.LastCommit == "" {
		target.LastCommit = source.LastCommit
	}
}

// Ranked returns the aggregated files ordered by commit count, then churn, then path.
func (a *FileActivityAggregator) Ranked() []FileActivity {
	out := make([]FileActivity, 0, len(a.files))
	for _, fa := range a.files {
		out = append(out, *fa)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CommitCount != out[j].CommitCount {
			return out[i].CommitCount > out[j].CommitCount
		}
		if out[i].Churn() != out[j].Churn() {
			return out[i].Churn() > out[j].Churn()
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// MostChanged ranks the files touched by records and keeps the first n.
// n <= 0 keeps all of them.
func MostChanged(records []git.CommitRecord, n int) []FileActivity {
	a := NewFileActivityAggregator()
	a.Process(records)
	ranked := a.Ranked()
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
