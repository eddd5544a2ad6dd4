package gitdiff

import (
	"fmt"
	"os/exec"
	"strings"
)

// Options controls how diffs are gathered.
type Options struct {
	// NoExclude disables the lock-file and build-artifact pathspec
	// exclusions and the generated-file post-filter.
	NoExclude bool
}

// Result holds the collected diff and metadata.
type Result struct {
	Diff  string
	Files []string
	Mode  string
	Range string
}

// Empty reports whether the diff contains no changes.
func (r Result) Empty() bool {
	return strings.TrimSpace(r.Diff) == ""
}

// RunError is returned when the git subprocess cannot be spawned or exits
// non-zero. Stderr carries the subprocess diagnostics (unknown tag, not a
// repository, bad path).
type RunError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *RunError) Unwrap() error { return e.Err }

// excludePathspecs are appended after "--" so git itself skips lock files,
// minified assets, and build output. The diff of a dependency bump is noise
// to a change summary and routinely blows the token budget.
var excludePathspecs = []string{
	":!package-lock.json",
	":!yarn.lock",
	":!pnpm-lock.yaml",
	":!composer.lock",
	":!Gemfile.lock",
	":!poetry.lock",
	":!Pipfile.lock",
	":!go.sum",
	":!*.min.js",
	":!*.min.css",
	":!dist/*",
	":!build/*",
}

// Tags returns the diff between two tags of the repository at repoPath.
// An empty diff (identical tags) is success.
func Tags(repoPath, fromTag, toTag string, opts Options) (Result, error) {
	args := []string{"diff", fromTag, toTag}
	args = appendExcludes(args, opts)

	diff, err := gitOutput(repoPath, args...)
	if err != nil {
		return Result{}, err
	}
	return buildResult(diff, "tags", fromTag+".."+toTag, opts), nil
}

// Commit returns the changes introduced by a single commit, including its
// full header, via git show.
func Commit(repoPath, sha string, opts Options) (Result, error) {
	args := []string{"show", "--format=fuller", sha}
	args = appendExcludes(args, opts)

	diff, err := gitOutput(repoPath, args...)
	if err != nil {
		return Result{}, err
	}
	return buildResult(diff, "commit", sha, opts), nil
}

func appendExcludes(args []string, opts Options) []string {
	if opts.NoExclude {
		return args
	}
	args = append(args, "--")
	return append(args, excludePathspecs...)
}

func buildResult(diff, mode, rangeStr string, opts Options) Result {
	if !opts.NoExclude {
		diff = FilterGenerated(diff)
	}
	return Result{
		Diff:  diff,
		Files: extractFiles(diff),
		Mode:  mode,
		Range: rangeStr,
	}
}

func extractFiles(diff string) []string {
	var files []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+++ b/") {
			f := strings.TrimPrefix(line, "+++ b/")
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files
}

func gitOutput(repoPath string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath
	out, err := cmd.Output()
	if err != nil {
		runErr := &RunError{Args: args, Err: err}
		if exitErr, ok := err.(*exec.ExitError); ok {
			runErr.Stderr = string(exitErr.Stderr)
		}
		return "", runErr
	}
	return string(out), nil
}
