package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/gitwhisperer/whisper/internal/git"
	"github.com/gitwhisperer/whisper/internal/workspace"
)

// AddCmd returns the add command.
func AddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Ingest a repository and make it the default for later commands",
		ArgsUsage: "<repository path or URL>",
		Flags:     commonFlags(),
		Action:    addAction,
	}
}

func addAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("add: a repository path or URL is required")
	}
	target := c.Args().First()

	opts := contextOptions{Target: target}
	if git.IsRemote(target) {
		dir, err := cloneRoot()
		if err != nil {
			return err
		}
		opts.CloneDir = dir
	}

	cctx, err := NewCommandContext(c, opts)
	if err != nil {
		return err
	}
	defer cctx.Close()

	registry, err := openRegistry()
	if err != nil {
		return err
	}
	entry, err := registry.Add(workspace.RepoEntry{
		Name: git.RepoName(target),
		Path: cctx.RepoPath,
		URL:  cctx.RepoURL,
	})
	if err != nil {
		return fmt.Errorf("failed to register repository: %w", err)
	}

	color.Green("Added %s (%s commits stored)", entry.Name, humanize.Comma(int64(len(cctx.History()))))
	fmt.Printf("Path: %s\n", entry.Path)
	return nil
}
