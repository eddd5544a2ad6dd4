package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Names holds the deterministic report file names for one run.
type Names struct {
	Diff    string
	Summary string
}

// TagNames returns the report names for a tag-range run:
// {project}_{from}__{to}.txt and {project}_{from}__{to}_summary.txt.
func TagNames(project, fromTag, toTag string) Names {
	base := fmt.Sprintf("%s_%s__%s", Sanitize(project), Sanitize(fromTag), Sanitize(toTag))
	return Names{
		Diff:    base + ".txt",
		Summary: base + "_summary.txt",
	}
}

// CommitNames returns the report names for a single-commit run.
func CommitNames(project, sha string) Names {
	base := fmt.Sprintf("%s_commit_%s", Sanitize(project), Sanitize(sha))
	return Names{
		Diff:    base + ".txt",
		Summary: base + "_summary.txt",
	}
}

// Sanitize makes a project name or git ref safe for use in a file name.
// Tags like "release/2.0" or "v1.0^{}" would otherwise produce paths git
// accepts but filesystems do not.
func Sanitize(ref string) string {
	var b strings.Builder
	for _, r := range ref {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	s := strings.Trim(b.String(), ". ")
	if s == "" {
		return "_"
	}
	return s
}

// WriteDiff writes the raw diff text into dir under the given name,
// overwriting any existing file. Returns the written path.
func WriteDiff(dir string, names Names, diff string) (string, error) {
	return writeFile(dir, names.Diff, diff)
}

// WriteSummary writes the summary text into dir under the given name,
// overwriting any existing file. Returns the written path.
func WriteSummary(dir string, names Names, summary string) (string, error) {
	return writeFile(dir, names.Summary, summary)
}

func writeFile(dir, name, content string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
