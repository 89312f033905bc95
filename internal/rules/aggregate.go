package rules

import (
	"path"
	"regexp"
	"sort"
	"strings"

	slug "github.com/goliatone/go-slug"

	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

// numericPrefix matches filename stems like "1001-name" whose leading digits
// become the section identifier.
var numericPrefix = regexp.MustCompile(`^(\d+)[-_.]`)

// Section is one heading-delimited block of an aggregated document.
type Section struct {
	Identifier string
	Title      string
	Anchor     string
	Body       []string
}

// HeadingText renders the section heading: the bracketed identifier when one
// was derived from the filename, followed by the title.
func (s Section) HeadingText() string {
	if s.Identifier == "" {
		return s.Title
	}
	return "[" + s.Identifier + "] " + s.Title
}

// AggregateOptions configures how sections are assembled into one document.
type AggregateOptions struct {
	// Scaffold is the fixed template text emitted before the first section.
	Scaffold string
	// TOC inserts a table of contents with slugified anchors between the
	// scaffold and the first section.
	TOC bool
}

// Aggregate merges rule documents into a single output document. Sections
// appear in lexicographic order of source path, so unchanged inputs always
// produce byte-identical output. Fences are re-balanced after every section
// so a truncated block in one rule cannot swallow the next rule's content.
func Aggregate(docs []*interfaces.RuleDocument, opts AggregateOptions) string {
	sorted := make([]*interfaces.RuleDocument, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].FilePath < sorted[j].FilePath
	})

	sections := make([]Section, 0, len(sorted))
	for _, doc := range sorted {
		sections = append(sections, BuildSection(doc))
	}

	out := scaffoldBlock(opts.Scaffold)
	if opts.TOC && len(sections) > 0 {
		out += tocBlock(sections)
	}

	for _, section := range sections {
		out += "## " + section.HeadingText() + "\n"
		if len(section.Body) > 0 {
			out += "\n" + strings.Join(section.Body, "\n") + "\n"
		}
		out = BalanceFences(out)
		out += "\n"
	}

	return BalanceFences(out)
}

// BuildSection derives the identifier, title, anchor, and normalized body
// for one rule document.
func BuildSection(doc *interfaces.RuleDocument) Section {
	section := Section{}
	if doc == nil {
		return section
	}

	stem := fileStem(doc.FilePath)
	if match := numericPrefix.FindStringSubmatch(stem); match != nil {
		section.Identifier = match[1]
	}

	section.Title = ExtractTitle(doc.Body)
	if section.Title == "" {
		section.Title = numericPrefix.ReplaceAllString(stem, "")
	}

	section.Anchor = sectionAnchor(section.HeadingText())
	section.Body = normalizeBody(doc.Body)
	return section
}

// scanState drives the single forward pass over a section body. Modelling
// the pass as an explicit state machine keeps header stripping, heading
// removal, and blank collapsing from interfering with each other.
type scanState int

const (
	scanBeforeHeader scanState = iota
	scanInHeader
	scanInBody
)

// normalizeBody strips the header block again (idempotent even when the body
// was already separated from its header), drops the first level-1 heading
// line, removes leading blank lines, and collapses runs of blank lines to a
// single one. Trailing blank lines never survive.
func normalizeBody(lines []string) []string {
	state := scanBeforeHeader
	pendingBlank := false
	headingConsumed := false
	out := []string{}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if state == scanBeforeHeader {
			if i == 0 && trimmed == headerSeparator {
				state = scanInHeader
				continue
			}
			state = scanInBody
		}
		if state == scanInHeader {
			if trimmed == headerSeparator {
				state = scanInBody
			}
			continue
		}

		if !headingConsumed && strings.HasPrefix(trimmed, "# ") {
			headingConsumed = true
			continue
		}
		if trimmed == "" {
			if len(out) > 0 {
				pendingBlank = true
			}
			continue
		}
		if pendingBlank {
			out = append(out, "")
			pendingBlank = false
		}
		out = append(out, line)
	}

	return out
}

func scaffoldBlock(scaffold string) string {
	trimmed := strings.TrimRight(scaffold, "\n")
	if strings.TrimSpace(trimmed) == "" {
		return ""
	}
	return trimmed + "\n\n"
}

func tocBlock(sections []Section) string {
	var b strings.Builder
	for _, section := range sections {
		heading := section.HeadingText()
		if section.Anchor == "" {
			b.WriteString("- " + heading + "\n")
			continue
		}
		b.WriteString("- [" + heading + "](#" + section.Anchor + ")\n")
	}
	b.WriteString("\n")
	return b.String()
}

func sectionAnchor(heading string) string {
	normalized, err := slug.Normalize(heading)
	if err != nil {
		return ""
	}
	return normalized
}

func fileStem(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	base = strings.TrimSuffix(base, sourceExtension)
	return strings.TrimSuffix(base, ".md")
}
