// Package ingest runs the extract, parse and store stages for one repository.
package ingest

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/gitwhisperer/whisper/internal/console"
	"github.com/gitwhisperer/whisper/internal/git"
	"github.com/gitwhisperer/whisper/internal/store"
)

// Result is the outcome of one ingestion run.
type Result struct {
	RepoPath string
	// Parsed holds the records produced by this run, in log order (newest first).
	Parsed []git.CommitRecord
	// Stored holds everything the store returned after saving, in backend order.
	Stored []store.StoredCommit

	filter git.PathFilter
}

// History returns this run's commits as read back from the store, in log order,
// with the path filter applied to their files. Stored documents keep every file.
// Commits missing from the store are skipped.
func (r *Result) History() []git.CommitRecord {
	byHash := lo.KeyBy(r.Stored, func(doc store.StoredCommit) string { return doc.Hash })

	history := make([]git.CommitRecord, 0, len(r.Parsed))
	for _, rec := range r.Parsed {
		if doc, ok := byHash[rec.Hash]; ok {
			history = append(history, doc.Record())
		}
	}
	return r.filter.Apply(history)
}

// Pipeline wires a log source to a commit store.
type Pipeline struct {
	source git.LogSource
	store  store.Store
	filter git.PathFilter
	log    *console.Logger
}

// NewPipeline creates a pipeline. A nil logger discards messages.
func NewPipeline(source git.LogSource, st store.Store, filter git.PathFilter, log *console.Logger) *Pipeline {
	if log == nil {
		log = console.Discard()
	}
	return &Pipeline{source: source, store: st, filter: filter, log: log}
}

// Run extracts the log of repoPath, parses it, saves the records and reads the store back.
// Nothing is saved when extraction fails.
func (p *Pipeline) Run(ctx context.Context, repoPath string) (*Result, error) {
	p.log.Debugf("extracting history from %s", repoPath)
	raw, err := p.source.Extract(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	records := git.ParseLog(raw)
	p.log.Infof("parsed %d commits from %s", len(records), repoPath)

	if err := p.store.Save(ctx, records); err != nil {
		return nil, fmt.Errorf("save commits: %w", err)
	}

	stored, err := p.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load commits: %w", err)
	}
	p.log.Debugf("store holds %d commits", len(stored))

	return &Result{
		RepoPath: repoPath,
		Parsed:   records,
		Stored:   stored,
		filter:   p.filter,
	}, nil
}
