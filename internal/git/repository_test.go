package git_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gitwhisperer/whisper/internal/git"
	"github.com/gitwhisperer/whisper/internal/testutil"
)

func TestOpenRepository(t *testing.T) {
	dir, repo := testutil.InitRepo(t)
	testutil.Commit(t, repo, "init", map[string]string{"sub/file.txt": "x"}, time.Now())

	root, err := git.OpenRepository(filepath.Join(dir, "sub"))
	if err != nil {
		t.Fatalf("OpenRepository: %v", err)
	}

	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Errorf("root = %q, expected %q", got, want)
	}
}

func TestOpenRepository_NotRepository(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "plain"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := git.OpenRepository(filepath.Join(dir, "plain"))

	if !errors.Is(err, git.ErrNotRepository) {
		t.Fatalf("expected ErrNotRepository, got %v", err)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		target string
		want   bool
	}{
		{target: "https://github.com/user/repo.git", want: true},
		{target: "http://example.com/repo", want: true},
		{target: "git@github.com:user/repo.git", want: true},
		{target: "ssh://git@host/repo", want: true},
		{target: "/home/user/repo", want: false},
		{target: ".", want: false},
	}

	for _, tt := range tests {
		if got := git.IsRemote(tt.target); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

func TestRepoName(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{target: "https://github.com/user/repo.git", want: "repo"},
		{target: "git@github.com:user/other.git", want: "other"},
		{target: "/home/user/project/", want: "project"},
		{target: "project", want: "project"},
	}

	for _, tt := range tests {
		if got := git.RepoName(tt.target); got != tt.want {
			t.Errorf("RepoName(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestCloneRepository_Local(t *testing.T) {
	testutil.RequireGit(t)

	src, repo := testutil.InitRepo(t)
	testutil.Commit(t, repo, "init", map[string]string{"a.txt": "a"}, time.Now())

	dst := filepath.Join(t.TempDir(), "clone")
	if err := git.CloneRepository(context.Background(), src, dst); err != nil {
		t.Fatalf("CloneRepository: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "a.txt")); err != nil {
		t.Errorf("cloned worktree missing a.txt: %v", err)
	}
}
