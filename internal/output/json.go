package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gitwhisperer/whisper/internal/aggregation"
	"github.com/gitwhisperer/whisper/internal/coupling"
	"github.com/gitwhisperer/whisper/internal/git"
)

// JSONNarrativeWriter writes narrative reports as JSON.
type JSONNarrativeWriter struct{}

// JSONNarrativeReport is the JSON output structure for narratives.
type JSONNarrativeReport struct {
	RepoPath    string          `json:"repo"`
	Store       string          `json:"store,omitempty"`
	Model       string          `json:"model,omitempty"`
	GeneratedAt string          `json:"generatedAt"`
	CommitCount int             `json:"commitCount"`
	StoredCount int             `json:"storedCount"`
	Narratives  []JSONNarrative `json:"narratives"`
}

// JSONNarrative is the JSON output structure for a single narrative.
type JSONNarrative struct {
	Kind      string   `json:"kind"`
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Generated bool     `json:"generated"`
	Commits   []string `json:"commits"`
}

// Write outputs the narrative report as JSON.
func (w *JSONNarrativeWriter) Write(report *NarrativeReport, options OutputOptions) error {
	narratives := make([]JSONNarrative, len(report.Narratives))
	for i, n := range report.Narratives {
		narratives[i] = JSONNarrative{
			Kind:      string(n.Kind),
			Title:     n.Title,
			Text:      n.Text,
			Generated: n.Generated,
			Commits:   commitHashes(n.Commits),
		}
	}

	return writeJSON(JSONNarrativeReport{
		RepoPath:    report.RepoPath,
		Store:       report.Store,
		Model:       report.Model,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		CommitCount: report.CommitCount,
		StoredCount: report.StoredCount,
		Narratives:  narratives,
	}, options.OutputPath)
}

// JSONHistoryWriter writes history reports as JSON.
type JSONHistoryWriter struct{}

// JSONHistoryReport is the JSON output structure for stored history.
type JSONHistoryReport struct {
	RepoPath     string              `json:"repo"`
	Store        string              `json:"store,omitempty"`
	GeneratedAt  string              `json:"generatedAt"`
	TotalCommits int                 `json:"totalCommits"`
	StoredCount  int                 `json:"storedCount"`
	Tags         map[string]int      `json:"tags"`
	Commits      []JSONHistoryCommit `json:"commits"`

	MostChanged []aggregation.FileActivity `json:"mostChanged"`
	Couplings   []coupling.ChangeCoupling  `json:"couplings"`
}

// JSONHistoryCommit mirrors the stored document plus its classification and size.
type JSONHistoryCommit struct {
	ID           string           `json:"_id"`
	Hash         string           `json:"hash"`
	Message      string           `json:"message"`
	Tag          string           `json:"tag"`
	FilesChanged []git.FileChange `json:"files_changed"`
	Added        int              `json:"added"`
	Deleted      int              `json:"deleted"`
	Entropy      float64          `json:"entropy"`
}

// Write outputs the history report as JSON.
func (w *JSONHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	commits := make([]JSONHistoryCommit, len(items))
	for i, item := range items {
		commits[i] = newJSONHistoryCommit(item)
	}

	tags := make(map[string]int)
	for tag, n := range report.TagCounts() {
		tags[string(tag)] = n
	}

	mostChanged := report.MostChanged
	if mostChanged == nil {
		mostChanged = []aggregation.FileActivity{}
	}
	couplings := report.Couplings
	if couplings == nil {
		couplings = []coupling.ChangeCoupling{}
	}

	return writeJSON(JSONHistoryReport{
		RepoPath:     report.RepoPath,
		Store:        report.Store,
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		TotalCommits: len(report.Items),
		StoredCount:  report.StoredCount,
		Tags:         tags,
		Commits:      commits,
		MostChanged:  mostChanged,
		Couplings:    couplings,
	}, options.OutputPath)
}

func newJSONHistoryCommit(item HistoryItem) JSONHistoryCommit {
	files := item.Commit.FilesChanged
	if files == nil {
		files = []git.FileChange{}
	}
	return JSONHistoryCommit{
		ID:           item.Commit.Hash,
		Hash:         item.Commit.Hash,
		Message:      item.Commit.Message,
		Tag:          string(item.Tag),
		FilesChanged: files,
		Added:        item.Shape.Added,
		Deleted:      item.Shape.Deleted,
		Entropy:      item.Shape.ChangeEntropy,
	}
}

func writeJSON(data interface{}, outputPath string) error {
	out, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
