package summarize

import (
	"fmt"
	"strings"
	"unicode"
)

// EstimateTokens gives a rough token count for mixed-script text. CJK
// scripts tokenize close to one token per character; everything else
// averages about four characters per token.
func EstimateTokens(text string) int {
	cjk := 0
	total := 0
	for _, r := range text {
		total++
		if isCJK(r) {
			cjk++
		}
	}
	return cjk + (total-cjk)/4
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hangul, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r)
}

// FitToBudget returns diff text that fits within budget estimated tokens.
// When the diff is over budget the result is prefixed with change
// statistics and the body is cut at a line boundary with an explicit
// truncation marker — the caller and the model both see that content was
// dropped. Returns the text and whether truncation happened.
func FitToBudget(diff string, budget int) (string, bool) {
	if EstimateTokens(diff) <= budget {
		return diff, false
	}

	lines := strings.Split(diff, "\n")
	added, removed, files := 0, 0, 0
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "diff "):
			files++
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== change statistics ===\n%d files, +%d -%d lines\n\n", files, added, removed)

	used := EstimateTokens(b.String())
	for _, line := range lines {
		lineTokens := EstimateTokens(line) + 1
		if used+lineTokens > budget {
			b.WriteString("... (remaining diff omitted to fit the model context)\n")
			break
		}
		b.WriteString(line)
		b.WriteString("\n")
		used += lineTokens
	}
	return b.String(), true
}
