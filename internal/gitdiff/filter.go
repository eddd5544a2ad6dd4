package gitdiff

import "strings"

// skipPatterns matches generated files that git's pathspec exclusion can
// miss (renames, nested copies, map files). A path matching any pattern has
// its whole diff section dropped.
var skipPatterns = []string{
	// Lock files
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"composer.lock",
	"Gemfile.lock",
	"poetry.lock",
	"Pipfile.lock",
	"go.sum",

	// Generated/compiled files
	".min.js",
	".min.css",
	".bundle.js",
	".bundle.css",

	// Build directories
	"dist/",
	"build/",
	"output/",
	"out/",

	// Auto-generated docs
	"CHANGELOG.md",

	// IDE/Editor files
	".vscode/",
	".idea/",

	// OS files
	".DS_Store",
	"Thumbs.db",

	// Source maps
	".json.map",
	".js.map",
	".css.map",
}

// FilterGenerated removes diff sections for lock files and other generated
// artifacts. Sections are the runs of lines starting at each "diff --git"
// header; content before the first header (e.g. the commit header emitted
// by git show) is always kept.
func FilterGenerated(diff string) string {
	var kept []string
	for _, section := range splitSections(diff) {
		path := sectionPath(section)
		if path == "" || !shouldSkip(path) {
			kept = append(kept, section)
		}
	}
	return strings.Join(kept, "")
}

func shouldSkip(path string) bool {
	for _, pattern := range skipPatterns {
		if strings.Contains(path, pattern) || strings.HasSuffix(path, pattern) {
			return true
		}
	}
	return false
}

func splitSections(diff string) []string {
	var sections []string
	var current strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "diff --git") && current.Len() > 0 {
			sections = append(sections, current.String())
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if current.Len() > 0 {
		sections = append(sections, current.String())
	}
	return sections
}

func sectionPath(section string) string {
	for _, line := range strings.Split(section, "\n") {
		if strings.HasPrefix(line, "diff --git") {
			// "diff --git a/<path> b/<path>"
			fields := strings.Fields(line)
			if len(fields) >= 4 {
				return strings.TrimPrefix(fields[3], "b/")
			}
		}
		if strings.HasPrefix(line, "+++ b/") {
			return strings.TrimPrefix(line, "+++ b/")
		}
	}
	return ""
}
