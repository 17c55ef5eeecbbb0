package git

import (
	"strings"
	"time"
)

// CommitRecord is one commit as reported by `git log --oneline --stat`.
type CommitRecord struct {
	Hash         string       `json:"hash"`
	Message      string       `json:"message"`
	FilesChanged []FileChange `json:"files_changed"`
}

// FileChange is one file's stat line within a commit.
// Both fields are kept exactly as git printed them.
type FileChange struct {
	FilePath string `json:"file_path"`
	Summary  string `json:"summary"`
}

// Paths expands git's rename notation in FilePath. "src/{old => new}/a.go"
// yields ("src/old/a.go", "src/new/a.go", true); plain paths yield ("", FilePath, false).
func (fc FileChange) Paths() (oldPath, newPath string, renamed bool) {
	path := fc.FilePath
	if !strings.Contains(path, " => ") {
		return "", path, false
	}

	open := strings.Index(path, "{")
	closing := strings.LastIndex(path, "}")
	if open == -1 || closing < open {
		before, after, _ := strings.Cut(path, " => ")
		return strings.TrimSpace(before), strings.TrimSpace(after), true
	}

	prefix, suffix := path[:open], path[closing+1:]
	before, after, found := strings.Cut(path[open+1:closing], " => ")
	if !found {
		return "", path, false
	}
	return cleanSlashes(prefix + before + suffix), cleanSlashes(prefix + after + suffix), true
}

func cleanSlashes(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return strings.TrimPrefix(path, "/")
}

// Clone returns a copy of the record that shares no slices with r.
func (r CommitRecord) Clone() CommitRecord {
	files := make([]FileChange, len(r.FilesChanged))
	copy(files, r.FilesChanged)
	return CommitRecord{
		Hash:         r.Hash,
		Message:      r.Message,
		FilesChanged: files,
	}
}

// ShortHash returns at most the first seven characters of the hash.
func (r CommitRecord) ShortHash() string {
	if len(r.Hash) <= 7 {
		return r.Hash
	}
	return r.Hash[:7]
}

// ExtractOptions configures the log extractor.
type ExtractOptions struct {
	Binary  string        // git executable, defaults to "git"
	Timeout time.Duration // zero means no timeout
}
