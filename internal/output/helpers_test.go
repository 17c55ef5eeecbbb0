package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/gitwhisperer/whisper/internal/classify"
	"github.com/gitwhisperer/whisper/internal/coupling"
	"github.com/gitwhisperer/whisper/internal/git"
	"github.com/gitwhisperer/whisper/internal/story"
)

func init() {
	color.NoColor = true
}

func testRecords() []git.CommitRecord {
	return []git.CommitRecord{
		{
			Hash:    "def5678aa",
			Message: "fix: null check | guard",
			FilesChanged: []git.FileChange{
				{FilePath: "main.py", Summary: "2 +-"},
				{FilePath: "util.py", Summary: "1 -"},
			},
		},
		{
			Hash:         "abc1234bb",
			Message:      "feat: add login",
			FilesChanged: []git.FileChange{{FilePath: "auth.py", Summary: "10 ++++"}},
		},
		{
			Hash:         "0a1b2c3cc",
			Message:      "Initial commit",
			FilesChanged: []git.FileChange{},
		},
	}
}

func testHistoryReport(t *testing.T) *HistoryReport {
	t.Helper()
	c, err := classify.NewClassifier(classify.DefaultRules())
	if err != nil {
		t.Fatal(err)
	}
	report := NewHistoryReport("/test/repo", "memory://", testRecords(), c, 5)
	report.GeneratedAt = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	report.Couplings = []coupling.ChangeCoupling{{
		FileA:              "main.py",
		FileB:              "util.py",
		CoCommitCount:      1,
		FileACommitCount:   1,
		FileBCommitCount:   1,
		JaccardCoefficient: 1,
		Confidence:         1,
		Lift:               3,
	}}
	return report
}

func testNarrativeReport() *NarrativeReport {
	records := testRecords()
	return &NarrativeReport{
		RepoPath:    "/test/repo",
		Store:       "memory://",
		Model:       "gemini-2.0-flash",
		GeneratedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		CommitCount: 3,
		StoredCount: 3,
		Narratives: []*story.Narrative{
			{Kind: story.KindSummary, Title: "Project Story", Text: "It grew.\n", Commits: records, Generated: true},
			{Kind: story.KindChangelog, Title: "Changelog", Text: "- Added login", Commits: records[:2], Generated: true},
		},
	}
}

func writeToTemp(t *testing.T, name string, write func(OutputOptions) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := write(OutputOptions{OutputPath: path}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	return string(data)
}

func TestTruncateMessage_Output(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		maxLen   int
		expected string
	}{
		{name: "Short message", msg: "hello", maxLen: 40, expected: "hello"},
		{name: "Exact length", msg: "1234567890", maxLen: 10, expected: "1234567890"},
		{name: "Over max length", msg: "a very long message here", maxLen: 10, expected: "a very ..."},
		{name: "Empty message", msg: "", maxLen: 40, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncateMessage(tt.msg, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateMessage(%q, %d) = %q, expected %q", tt.msg, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	if got := escapeMarkdown("a|b*c_d`e"); got != "a\\|b\\*c\\_d\\`e" {
		t.Errorf("escapeMarkdown() = %q", got)
	}
}

func TestLimitTop(t *testing.T) {
	items := []int{1, 2, 3, 4}

	tests := []struct {
		top  int
		want int
	}{
		{top: 0, want: 4},
		{top: -1, want: 4},
		{top: 2, want: 2},
		{top: 10, want: 4},
	}
	for _, tt := range tests {
		if got := limitTop(items, tt.top); len(got) != tt.want {
			t.Errorf("limitTop(top=%d) = %d items, want %d", tt.top, len(got), tt.want)
		}
	}
}

func TestTagSummary(t *testing.T) {
	got := tagSummary(map[classify.Tag]int{classify.TagOther: 1, classify.TagFix: 2, classify.TagDocs: 0})
	if got != "fix 2, other 1" {
		t.Errorf("tagSummary() = %q", got)
	}
	if got := tagSummary(nil); got != "none" {
		t.Errorf("tagSummary(nil) = %q", got)
	}
}
