package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func typeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}

func TestConsoleNarrativeWriter_Write(t *testing.T) {
	out := writeToTemp(t, "narrative.txt", func(o OutputOptions) error {
		return (&ConsoleNarrativeWriter{}).Write(testNarrativeReport(), o)
	})

	for _, want := range []string{
		"Git Whisperer Report",
		"Repository: /test/repo",
		"Commits analyzed: 3",
		"Model: gemini-2.0-flash",
		"PROJECT STORY",
		"It grew.",
		"CHANGELOG",
		"- Added login",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Commits in store") {
		t.Errorf("store count shown although it matches:\n%s", out)
	}
}

func TestJSONNarrativeWriter_Write(t *testing.T) {
	out := writeToTemp(t, "narrative.json", func(o OutputOptions) error {
		return (&JSONNarrativeWriter{}).Write(testNarrativeReport(), o)
	})

	var got JSONNarrativeReport
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.RepoPath != "/test/repo" || got.CommitCount != 3 || got.GeneratedAt != "2024-05-01T09:00:00Z" {
		t.Errorf("report = %+v", got)
	}
	if len(got.Narratives) != 2 {
		t.Fatalf("narratives = %d, want 2", len(got.Narratives))
	}
	if got.Narratives[1].Kind != "changelog" || len(got.Narratives[1].Commits) != 2 || !got.Narratives[1].Generated {
		t.Errorf("narrative = %+v", got.Narratives[1])
	}
}

func TestMarkdownNarrativeWriter_Write(t *testing.T) {
	out := writeToTemp(t, "narrative.md", func(o OutputOptions) error {
		return (&MarkdownNarrativeWriter{}).Write(testNarrativeReport(), o)
	})

	for _, want := range []string{"# Git Whisperer Report", "**Commits Analyzed:** 3", "## Project Story\n\nIt grew.\n", "## Changelog"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleHistoryWriter_Write(t *testing.T) {
	out := writeToTemp(t, "history.txt", func(o OutputOptions) error {
		return (&ConsoleHistoryWriter{}).Write(testHistoryReport(t), o)
	})

	for _, want := range []string{"Stored Commit History", "Commits: 3 (store holds 5)", "By type: fix 1, feature 1, other 1", "def5678", "feat: add login", "+1/-2", "Most Changed Files", "auth.py", "Files That Change Together", "util.py"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleHistoryWriter_Top(t *testing.T) {
	out := writeToTemp(t, "history.txt", func(o OutputOptions) error {
		o.Top = 1
		return (&ConsoleHistoryWriter{}).Write(testHistoryReport(t), o)
	})

	if !strings.Contains(out, "def5678") || strings.Contains(out, "abc1234") {
		t.Errorf("Top not applied:\n%s", out)
	}
}

func TestJSONHistoryWriter_Write(t *testing.T) {
	out := writeToTemp(t, "history.json", func(o OutputOptions) error {
		return (&JSONHistoryWriter{}).Write(testHistoryReport(t), o)
	})

	var got JSONHistoryReport
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if got.TotalCommits != 3 || got.StoredCount != 5 || got.Tags["fix"] != 1 {
		t.Errorf("report = %+v", got)
	}
	first := got.Commits[0]
	if first.ID != "def5678aa" || first.Hash != first.ID || first.Tag != "fix" || len(first.FilesChanged) != 2 {
		t.Errorf("commit = %+v", first)
	}
	if first.Added != 1 || first.Deleted != 2 {
		t.Errorf("commit size = +%d/-%d", first.Added, first.Deleted)
	}
	if len(got.Couplings) != 1 || got.Couplings[0].FileB != "util.py" || got.Couplings[0].Lift != 3 {
		t.Errorf("couplings = %+v", got.Couplings)
	}
	if len(got.MostChanged) != 3 || got.MostChanged[0].Path != "auth.py" || got.MostChanged[0].Added != 10 {
		t.Errorf("mostChanged = %+v", got.MostChanged)
	}
	if !strings.Contains(out, `"files_changed": []`) {
		t.Errorf("empty file list must be encoded as []:\n%s", out)
	}
}

func TestCSVHistoryWriter_Write(t *testing.T) {
	out := writeToTemp(t, "history.csv", func(o OutputOptions) error {
		return (&CSVHistoryWriter{}).Write(testHistoryReport(t), o)
	})

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0][0] != "Hash" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "def5678aa" || rows[1][1] != "fix" || rows[1][3] != "2" || rows[1][4] != "main.py;util.py" {
		t.Errorf("row = %v", rows[1])
	}
}

func TestMarkdownHistoryWriter_Write(t *testing.T) {
	out := writeToTemp(t, "history.md", func(o OutputOptions) error {
		return (&MarkdownHistoryWriter{}).Write(testHistoryReport(t), o)
	})

	if !strings.Contains(out, "| 1 | `def5678` | fix | fix: null check \\| guard | `main.py` (2 +-)<br>`util.py` (1 -) |") {
		t.Errorf("unexpected table:\n%s", out)
	}
	if !strings.Contains(out, "## Most Changed Files") || !strings.Contains(out, "| `auth.py` | 1 | 10 | 0 |") {
		t.Errorf("missing most changed files:\n%s", out)
	}
	if !strings.Contains(out, "| `main.py` | `util.py` | 1 | 1.00 | 1.00 |") {
		t.Errorf("missing coupled files:\n%s", out)
	}
}

func TestCIHistoryWriter_Write(t *testing.T) {
	out := writeToTemp(t, "history.ndjson", func(o OutputOptions) error {
		return (&CIHistoryWriter{}).Write(testHistoryReport(t), o)
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 { // 1 summary + 3 commits
		t.Fatalf("expected 4 lines, got %d: %s", len(lines), out)
	}

	var summary CISummary
	if err := json.Unmarshal([]byte(lines[0]), &summary); err != nil {
		t.Fatalf("Failed to parse summary: %v", err)
	}
	if summary.Type != "summary" || summary.TotalCommits != 3 || summary.Tags["feature"] != 1 {
		t.Errorf("summary = %+v", summary)
	}

	var entry CICommitEntry
	if err := json.Unmarshal([]byte(lines[2]), &entry); err != nil {
		t.Fatalf("Failed to parse entry: %v", err)
	}
	if entry.Type != "commit" || entry.Hash != "abc1234bb" || entry.Tag != "feature" {
		t.Errorf("entry = %+v", entry)
	}
}
