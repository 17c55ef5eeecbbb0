package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/gitwhisperer/whisper/internal/aggregation"
	"github.com/gitwhisperer/whisper/internal/classify"
	"github.com/gitwhisperer/whisper/internal/coupling"
	"github.com/gitwhisperer/whisper/internal/git"
	"github.com/gitwhisperer/whisper/internal/story"
)

// Compile-time interface conformance checks.
// These ensure that all writer types correctly implement their respective interfaces.
var (
	// NarrativeReportWriter implementations
	_ NarrativeReportWriter = (*ConsoleNarrativeWriter)(nil)
	_ NarrativeReportWriter = (*JSONNarrativeWriter)(nil)
	_ NarrativeReportWriter = (*MarkdownNarrativeWriter)(nil)

	// HistoryReportWriter implementations
	_ HistoryReportWriter = (*ConsoleHistoryWriter)(nil)
	_ HistoryReportWriter = (*JSONHistoryWriter)(nil)
	_ HistoryReportWriter = (*CSVHistoryWriter)(nil)
	_ HistoryReportWriter = (*MarkdownHistoryWriter)(nil)
	_ HistoryReportWriter = (*CIHistoryWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatCSV      OutputFormat = "csv"
	FormatMarkdown OutputFormat = "markdown"
	FormatCI       OutputFormat = "ci"
)

// Formats lists every supported format.
var Formats = []OutputFormat{FormatConsole, FormatJSON, FormatCSV, FormatMarkdown, FormatCI}

// ParseFormat maps a name to an OutputFormat. "md" is accepted for markdown.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatConsole, nil
	case "md":
		return FormatMarkdown, nil
	case FormatConsole, FormatJSON, FormatCSV, FormatMarkdown, FormatCI:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected console, json, csv, markdown or ci)", s)
	}
}

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Top        int
	OutputPath string
}

// NarrativeReport holds generated narratives for one repository.
type NarrativeReport struct {
	RepoPath    string
	Store       string
	Model       string
	GeneratedAt time.Time
	// CommitCount is the number of commits ingested from the repository.
	CommitCount int
	// StoredCount is the number of commits the store held afterwards.
	StoredCount int
	Narratives  []*story.Narrative
}

// HistoryItem is one stored commit with its classification.
type HistoryItem struct {
	Commit git.CommitRecord
	Tag    classify.Tag
	Shape  aggregation.CommitShape
}

// MostChangedFiles is how many files a history report ranks.
const MostChangedFiles = 10

// HistoryReport lists the stored commits of one repository in log order.
type HistoryReport struct {
	RepoPath    string
	Store       string
	GeneratedAt time.Time
	StoredCount int
	Items       []HistoryItem
	MostChanged []aggregation.FileActivity
	Couplings   []coupling.ChangeCoupling
}

// NewHistoryReport classifies records. A nil classifier tags everything as other.
func NewHistoryReport(repoPath, storeURL string, records []git.CommitRecord, c *classify.Classifier, storedCount int) *HistoryReport {
	items := make([]HistoryItem, len(records))
	for i, r := range records {
		tag := classify.TagOther
		if c != nil {
			tag = c.Classify(r.Message)
		}
		items[i] = HistoryItem{Commit: r, Tag: tag, Shape: aggregation.Shape(r)}
	}
	return &HistoryReport{
		RepoPath:    repoPath,
		Store:       storeURL,
		GeneratedAt: time.Now(),
		StoredCount: storedCount,
		Items:       items,
		MostChanged: aggregation.MostChanged(records, MostChangedFiles),
	}
}

// TagCounts returns the number of items per tag over the whole report.
func (r *HistoryReport) TagCounts() map[classify.Tag]int {
	counts := make(map[classify.Tag]int)
	for _, item := range r.Items {
		counts[item.Tag]++
	}
	return counts
}

// NarrativeReportWriter writes narrative reports.
type NarrativeReportWriter interface {
	Write(report *NarrativeReport, options OutputOptions) error
}

// HistoryReportWriter writes history reports.
type HistoryReportWriter interface {
	Write(report *HistoryReport, options OutputOptions) error
}

// NewNarrativeReportWriter creates a narrative writer for the specified format.
// Narratives have no tabular form, so csv and ci fall back to JSON.
func NewNarrativeReportWriter(format OutputFormat) NarrativeReportWriter {
	switch format {
	case FormatJSON, FormatCSV, FormatCI:
		return &JSONNarrativeWriter{}
	case FormatMarkdown:
		return &MarkdownNarrativeWriter{}
	default:
		return &ConsoleNarrativeWriter{}
	}
}

// NewHistoryReportWriter creates a history writer for the specified format.
func NewHistoryReportWriter(format OutputFormat) HistoryReportWriter {
	switch format {
	case FormatJSON:
		return &JSONHistoryWriter{}
	case FormatCSV:
		return &CSVHistoryWriter{}
	case FormatMarkdown:
		return &MarkdownHistoryWriter{}
	case FormatCI:
		return &CIHistoryWriter{}
	default:
		return &ConsoleHistoryWriter{}
	}
}
