package run

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/tagsum/internal/config"
	"github.com/dshills/tagsum/internal/gitdiff"
	"github.com/dshills/tagsum/internal/report"
	"github.com/dshills/tagsum/internal/summarize"
)

// Params identifies one analysis run. Either FromTag/ToTag or Commit is
// set, never both.
type Params struct {
	Project  string
	FromTag  string
	ToTag    string
	Commit   string
	RepoPath string
}

// DiffSource retrieves change text for a run. The git-backed
// implementation is [GitSource]; tests substitute fakes.
type DiffSource interface {
	Retrieve(p Params) (gitdiff.Result, error)
}

// GitSource retrieves diffs by shelling out to git.
type GitSource struct {
	Opts gitdiff.Options
}

func (g GitSource) Retrieve(p Params) (gitdiff.Result, error) {
	if p.Commit != "" {
		return gitdiff.Commit(p.RepoPath, p.Commit, g.Opts)
	}
	return gitdiff.Tags(p.RepoPath, p.FromTag, p.ToTag, g.Opts)
}

// Outcome reports what a run produced.
type Outcome struct {
	DiffPath    string
	SummaryPath string
	Model       string
	Skipped     bool // true when the diff was empty and the run short-circuited
}

// Run executes the pipeline: retrieve -> write diff file -> summarize ->
// write summary file. The diff file is written before the API call so it
// survives a summarization failure. An empty diff short-circuits: nothing
// is written, the API is never called, and Outcome.Skipped is set.
func Run(ctx context.Context, p Params, cfg config.Config, src DiffSource, sum summarize.Summarizer, status io.Writer) (Outcome, error) {
	if status == nil {
		status = io.Discard
	}

	if _, err := os.Stat(p.RepoPath); err != nil {
		return Outcome{}, fmt.Errorf("repository path does not exist: %s", p.RepoPath)
	}

	if p.Commit != "" {
		fmt.Fprintf(status, "Retrieving changes for commit %s in %s...\n", p.Commit, p.RepoPath)
	} else {
		fmt.Fprintf(status, "Retrieving diff %s -> %s in %s...\n", p.FromTag, p.ToTag, p.RepoPath)
	}

	result, err := src.Retrieve(p)
	if err != nil {
		return Outcome{}, fmt.Errorf("retrieving diff: %w", err)
	}

	if result.Empty() {
		if p.Commit != "" {
			fmt.Fprintln(status, "No changes in that commit.")
		} else {
			fmt.Fprintln(status, "No changes between the two tags.")
		}
		return Outcome{Skipped: true}, nil
	}

	var names report.Names
	if p.Commit != "" {
		names = report.CommitNames(p.Project, p.Commit)
	} else {
		names = report.TagNames(p.Project, p.FromTag, p.ToTag)
	}

	out := Outcome{}
	out.DiffPath, err = report.WriteDiff(cfg.OutDir, names, result.Diff)
	if err != nil {
		return out, err
	}
	fmt.Fprintf(status, "Diff written to %s\n", out.DiffPath)

	fmt.Fprintf(status, "Summarizing with %s...\n", sum.Name())
	resp, err := sum.Summarize(ctx, summarize.Request{
		Project: p.Project,
		FromTag: p.FromTag,
		ToTag:   p.ToTag,
		Commit:  p.Commit,
		Diff:    result.Diff,
	})
	if err != nil {
		// The diff file stays on disk as partial output.
		return out, fmt.Errorf("summarizing: %w", err)
	}
	out.Model = resp.Model

	out.SummaryPath, err = report.WriteSummary(cfg.OutDir, names, resp.Summary)
	if err != nil {
		return out, err
	}
	fmt.Fprintf(status, "Summary written to %s\n", out.SummaryPath)

	return out, nil
}
