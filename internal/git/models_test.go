package git

import "testing"

func TestFileChange_Paths(t *testing.T) {
	tests := []struct {
		path        string
		wantOld     string
		wantNew     string
		wantRenamed bool
	}{
		{path: "main.go", wantNew: "main.go"},
		{path: "old.go => new.go", wantOld: "old.go", wantNew: "new.go", wantRenamed: true},
		{path: "src/{old => new}/file.go", wantOld: "src/old/file.go", wantNew: "src/new/file.go", wantRenamed: true},
		{path: "src/{ => lib}/file.go", wantOld: "src/file.go", wantNew: "src/lib/file.go", wantRenamed: true},
		{path: "{a.go => b.go}", wantOld: "a.go", wantNew: "b.go", wantRenamed: true},
	}

	for _, tt := range tests {
		oldPath, newPath, renamed := FileChange{FilePath: tt.path}.Paths()
		if oldPath != tt.wantOld || newPath != tt.wantNew || renamed != tt.wantRenamed {
			t.Errorf("Paths(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.path, oldPath, newPath, renamed, tt.wantOld, tt.wantNew, tt.wantRenamed)
		}
	}
}

func TestCommitRecord_Clone(t *testing.T) {
	orig := CommitRecord{Hash: "abc1234", Message: "msg", FilesChanged: []FileChange{{FilePath: "a.go", Summary: "1 +"}}}

	clone := orig.Clone()
	clone.FilesChanged[0].FilePath = "b.go"

	if orig.FilesChanged[0].FilePath != "a.go" {
		t.Errorf("Clone shares FilesChanged with the original")
	}

	empty := CommitRecord{Hash: "abc1234"}.Clone()
	if empty.FilesChanged == nil {
		t.Errorf("Clone of nil FilesChanged should be an empty slice")
	}
}

func TestCommitRecord_ShortHash(t *testing.T) {
	tests := map[string]string{
		"abc":                  "abc",
		"abc1234":              "abc1234",
		"abc1234def5678abcdef": "abc1234",
	}
	for hash, want := range tests {
		if got := (CommitRecord{Hash: hash}).ShortHash(); got != want {
			t.Errorf("ShortHash(%q) = %q, want %q", hash, got, want)
		}
	}
}
