package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// CIHistoryWriter writes history reports as NDJSON (one JSON object per line) for CI pipelines.
type CIHistoryWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type         string         `json:"type"`
	Repo         string         `json:"repo"`
	TotalCommits int            `json:"totalCommits"`
	StoredCount  int            `json:"storedCount"`
	Tags         map[string]int `json:"tags"`
}

// CICommitEntry represents a single commit in CI output.
type CICommitEntry struct {
	Type string `json:"type"`
	JSONHistoryCommit
}

// Write outputs the history report as NDJSON.
func (w *CIHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	tags := make(map[string]int)
	for tag, n := range report.TagCounts() {
		tags[string(tag)] = n
	}

	summary := CISummary{
		Type:         "summary",
		Repo:         report.RepoPath,
		TotalCommits: len(report.Items),
		StoredCount:  report.StoredCount,
		Tags:         tags,
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	for _, item := range items {
		entry := CICommitEntry{Type: "commit", JSONHistoryCommit: newJSONHistoryCommit(item)}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
