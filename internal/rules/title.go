package rules

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractTitle returns the text of the first level-1 heading found in the
// body. The body is parsed with goldmark so emphasis and inline code inside
// the heading resolve to their plain text; a line scan backstops documents
// goldmark reads differently (e.g. headings inside unterminated fences).
// An empty string is returned when no level-1 heading exists.
func ExtractTitle(body []string) string {
	source := []byte(strings.Join(body, "\n"))
	if len(source) == 0 {
		return ""
	}

	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = strings.TrimSpace(string(heading.Text(source)))
		return ast.WalkStop, nil
	})

	if title == "" {
		title = scanTitleLine(body)
	}
	return title
}

func scanTitleLine(body []string) string {
	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
