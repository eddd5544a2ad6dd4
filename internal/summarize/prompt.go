package summarize

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert release engineer. You analyze version-control diffs and produce clear, accurate change summaries for developers who consume the project as a dependency.

Rules:
1. Only describe the changes shown in the diff. Do not speculate about unchanged code.
2. Lead with behavior changes that affect users of the project: API changes, logic changes, performance impact.
3. Ignore changes with no runtime effect (comments, formatting, whitespace) unless they alter documentation of behavior.
4. Name the files involved in each change.
5. Close with an overall assessment: change size (small/medium/large), side-effect risk (low/medium/high), and an update recommendation.

Respond in markdown.`

// BuildPrompt renders the user prompt for a request. Tag mode and commit
// mode share the same report structure and differ only in how the subject
// of the analysis is named.
func BuildPrompt(req Request) string {
	var b strings.Builder

	if req.Commit != "" {
		fmt.Fprintf(&b, "Analyze the changes introduced by commit %s of %s.\n\n", req.Commit, req.Project)
	} else {
		fmt.Fprintf(&b, "Analyze the changes in %s between %s and %s.\n\n", req.Project, req.FromTag, req.ToTag)
	}

	b.WriteString("Structure the report as:\n")
	b.WriteString("1. Overview — what this change set is about\n")
	b.WriteString("2. User-facing changes — per change: files, what changed, who is affected\n")
	b.WriteString("3. Update cautions — what to test before adopting\n")
	b.WriteString("4. Overall assessment — size, risk, recommendation\n")

	b.WriteString("\n--- BEGIN DIFF ---\n")
	b.WriteString(req.Diff)
	b.WriteString("\n--- END DIFF ---\n")

	return b.String()
}

// SystemPrompt returns the system prompt for the LLM.
func SystemPrompt() string {
	return systemPrompt
}
