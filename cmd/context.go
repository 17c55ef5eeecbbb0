package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/gitwhisperer/whisper/config"
	"github.com/gitwhisperer/whisper/internal/console"
	"github.com/gitwhisperer/whisper/internal/git"
	"github.com/gitwhisperer/whisper/internal/ingest"
	"github.com/gitwhisperer/whisper/internal/output"
	"github.com/gitwhisperer/whisper/internal/store"
	"github.com/gitwhisperer/whisper/internal/workspace"
)

// ErrNoRepository is returned when no repository was given and none was added before.
var ErrNoRepository = errors.New("no repository given and none added yet (pass a path, use --repo, or run `whisper add <repo>`)")

// contextOptions selects how NewCommandContext resolves and prepares the repository.
type contextOptions struct {
	// Target is the positional repository argument, if any.
	Target string
	// CloneDir keeps remote clones in this directory instead of a temporary one.
	CloneDir string
	// RequireNarrative validates the Gemini settings before any work is done.
	RequireNarrative bool
}

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config   *config.Config
	Logger   *console.Logger
	Format   output.OutputFormat
	Target   string
	RepoURL  string
	RepoPath string
	Store    store.Store
	Result   *ingest.Result

	progress bool
	cleanup  []func()
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, resolves and opens the repository, connects to the
// store and runs the ingestion pipeline.
func NewCommandContext(c *cli.Context, opts contextOptions) (_ *CommandContext, err error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	if opts.RequireNarrative {
		if err := cfg.ValidateForNarrative(); err != nil {
			return nil, err
		}
	}

	format, err := getOutputFormat(c.String("format"))
	if err != nil {
		return nil, err
	}

	cctx := &CommandContext{
		Config:   cfg,
		Logger:   newLogger(cfg),
		Format:   format,
		progress: format == output.FormatConsole && c.String("output") == "" && !c.Bool("no-progress"),
	}
	defer func() {
		if err != nil {
			cctx.Close()
		}
	}()

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	if cctx.Target, err = resolveTarget(c, opts.Target); err != nil {
		return nil, err
	}

	if cctx.RepoPath, err = cctx.prepareRepository(ctx, opts.CloneDir); err != nil {
		return nil, err
	}

	cctx.Logger.Debugf("connecting to %s", cfg.Store.URL)
	cctx.Store, err = store.Open(ctx, store.Options{URL: cfg.Store.URL, Namespace: cfg.Store.Namespace})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	cctx.cleanup = append(cctx.cleanup, func() { _ = cctx.Store.Close() })

	pipeline := ingest.NewPipeline(
		git.NewExtractor(git.ExtractOptions{Binary: cfg.Git.Binary, Timeout: cfg.GitTimeout()}),
		cctx.Store,
		git.PathFilter{Include: cfg.Filters.Include, Exclude: cfg.Filters.Exclude},
		cctx.Logger,
	)

	err = cctx.spin("Reading commit history...", func() error {
		var runErr error
		cctx.Result, runErr = pipeline.Run(ctx, cctx.RepoPath)
		return runErr
	})
	if err != nil {
		return nil, err
	}

	return cctx, nil
}

// prepareRepository clones remote targets and returns the local worktree root.
func (cctx *CommandContext) prepareRepository(ctx context.Context, cloneDir string) (string, error) {
	path := cctx.Target

	if git.IsRemote(cctx.Target) {
		cctx.RepoURL = cctx.Target

		if cloneDir != "" {
			path = filepath.Join(cloneDir, git.RepoName(cctx.Target))
			if _, err := os.Stat(filepath.Join(path, ".git")); err == nil {
				cctx.Logger.Infof("using existing clone at %s", path)
				return git.OpenRepository(path)
			}
		} else {
			tmp, err := os.MkdirTemp("", "whisper-clone-*")
			if err != nil {
				return "", err
			}
			cctx.cleanup = append(cctx.cleanup, func() { _ = os.RemoveAll(tmp) })
			path = tmp
		}

		cctx.Logger.Infof("cloning %s", cctx.Target)
		err := cctx.spin("Cloning repository...", func() error {
			return git.CloneRepository(ctx, cctx.Target, path)
		})
		if err != nil {
			return "", err
		}
	}

	return git.OpenRepository(path)
}

func (cctx *CommandContext) spin(description string, fn func() error) error {
	return console.Spin(description, cctx.progress, fn)
}

// Close releases the store and removes temporary clones.
func (cctx *CommandContext) Close() {
	for i := len(cctx.cleanup) - 1; i >= 0; i-- {
		cctx.cleanup[i]()
	}
	cctx.cleanup = nil
}

// History returns this run's commits as stored, newest first.
func (cctx *CommandContext) History() []git.CommitRecord {
	if cctx.Result == nil {
		return nil
	}
	return cctx.Result.History()
}

// HasCommits returns true if the repository produced any commits.
func (cctx *CommandContext) HasCommits() bool {
	return len(cctx.History()) > 0
}

// resolveTarget picks the repository from the argument, the --repo flag or the workspace.
func resolveTarget(c *cli.Context, arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if repo := c.String("repo"); repo != "" {
		return repo, nil
	}

	registry, err := openRegistry()
	if err != nil {
		return "", err
	}
	last, err := registry.Last()
	if errors.Is(err, workspace.ErrEmpty) {
		return "", ErrNoRepository
	}
	if err != nil {
		return "", err
	}
	return last.Path, nil
}

// openRegistry honors WHISPER_HOME so tests and scripts can relocate the workspace.
func openRegistry() (*workspace.Registry, error) {
	if home := os.Getenv("WHISPER_HOME"); home != "" {
		return workspace.Open(filepath.Join(home, "repos.json")), nil
	}
	path, err := workspace.DefaultPath()
	if err != nil {
		return nil, err
	}
	return workspace.Open(path), nil
}

// cloneRoot is where `whisper add` keeps remote clones.
func cloneRoot() (string, error) {
	if home := os.Getenv("WHISPER_HOME"); home != "" {
		return filepath.Join(home, "repos"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".whisper", "repos"), nil
}
