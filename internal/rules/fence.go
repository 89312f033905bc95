package rules

import "strings"

// fenceToken opens and closes literal code blocks in markdown.
const fenceToken = "```"

// FenceCount counts lines whose trimmed form begins with the fence token.
// An optional language tag after the token is ignored.
func FenceCount(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), fenceToken) {
			count++
		}
	}
	return count
}

// BalanceFences appends a closing fence, preceded by a blank line, when the
// text contains an odd number of fence markers. Existing lines are never
// modified, so the repair is idempotent on balanced text. Fences that are
// mismatched while still yielding an even count are not detected; this is a
// heuristic repair, not a parser.
func BalanceFences(text string) string {
	if FenceCount(text)%2 == 0 {
		return text
	}

	var b strings.Builder
	b.WriteString(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n" + fenceToken + "\n")
	return b.String()
}
