package story

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gitwhisperer/whisper/internal/git"
)

func makeRecords(n int) []git.CommitRecord {
	records := make([]git.CommitRecord, n)
	for i := range records {
		records[i] = git.CommitRecord{
			Hash:         fmt.Sprintf("%07x", i+1),
			Message:      fmt.Sprintf("commit %d", i+1),
			FilesChanged: []git.FileChange{},
		}
	}
	return records
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(" " + string(k) + " ")
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKind("poem"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestSelect_Windows(t *testing.T) {
	records := makeRecords(30)

	tests := []struct {
		name string
		kind Kind
		opts Options
		want int
	}{
		{name: "Summary uses everything", kind: KindSummary, want: 30},
		{name: "Changelog uses everything", kind: KindChangelog, want: 30},
		{name: "Demo default", kind: KindDemo, want: DefaultDemoCommits},
		{name: "Recent default", kind: KindRecent, want: DefaultRecentCommits},
		{name: "Recent custom", kind: KindRecent, opts: Options{Limit: 3}, want: 3},
		{name: "Limit above length", kind: KindRecent, opts: Options{Limit: 100}, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.kind, records, tt.opts)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if len(got) > 0 && got[0].Hash != records[0].Hash {
				t.Errorf("selection must start at the newest commit, got %s", got[0].Hash)
			}
		})
	}
}

func TestSince(t *testing.T) {
	records := []git.CommitRecord{
		{Hash: "ccc3333", Message: "feat: search"},
		{Hash: "bbb2222", Message: "release v1.0"},
		{Hash: "aaa1111", Message: "Initial commit"},
	}

	tests := []struct {
		name string
		ref  string
		want []string
	}{
		{name: "Hash prefix", ref: "bbb", want: []string{"ccc3333"}},
		{name: "Message fragment", ref: "v1.0", want: []string{"ccc3333"}},
		{name: "Newest commit", ref: "ccc3333", want: []string{}},
		{name: "Oldest commit", ref: "Initial", want: []string{"ccc3333", "bbb2222"}},
		{name: "No match keeps all", ref: "zzz", want: []string{"ccc3333", "bbb2222", "aaa1111"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Since(records, tt.ref)
			if len(got) != len(tt.want) {
				t.Fatalf("Since(%q) = %d commits, want %d", tt.ref, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Hash != tt.want[i] {
					t.Errorf("commit %d = %s, want %s", i, got[i].Hash, tt.want[i])
				}
			}
		})
	}
}

func TestSelect_SinceRequiresReference(t *testing.T) {
	if _, err := Select(KindSince, makeRecords(3), Options{Reference: "  "}); !errors.Is(err, ErrMissingReference) {
		t.Errorf("error = %v, want ErrMissingReference", err)
	}
}

func TestSelect_UnknownKind(t *testing.T) {
	if _, err := Select(Kind("poem"), makeRecords(1), Options{}); err == nil {
		t.Error("expected error for unknown kind")
	}
}
