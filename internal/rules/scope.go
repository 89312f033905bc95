package rules

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// AllFilesToken is the canonical merged pattern meaning "apply to every file".
const AllFilesToken = "*,**/*"

// EmptyListMarker is the merged form for a rule that applies to no files.
const EmptyListMarker = "[]"

// ScopeKind enumerates the shapes a merged scope can take. Modelling the
// output as a small sum type keeps the collapse-to-all and empty edge cases
// handled explicitly rather than through string comparisons.
type ScopeKind int

const (
	// ScopeEmpty means the source supplied neither patterns nor the always
	// flag; the rendered value comes from a caller-supplied default.
	ScopeEmpty ScopeKind = iota
	// ScopeAllFiles is the "no restriction" case.
	ScopeAllFiles
	// ScopeSingle carries exactly one pattern, passed through unchanged.
	ScopeSingle
	// ScopeJoined carries two or more patterns in their original order.
	ScopeJoined
)

// Scope is the translated file-applicability of a rule.
type Scope struct {
	Kind     ScopeKind
	Patterns []string
}

// TranslateScope maps the source vocabulary (pattern list + always flag) to
// the merged scope. The always flag wins unconditionally; the specific pair
// {"*", "**/*"} collapses to the all-files case regardless of order.
func TranslateScope(globs string, always bool) Scope {
	patterns := ParsePatternList(globs)

	if always {
		return Scope{Kind: ScopeAllFiles}
	}

	switch len(patterns) {
	case 0:
		return Scope{Kind: ScopeEmpty}
	case 1:
		return Scope{Kind: ScopeSingle, Patterns: patterns}
	}

	if isAllFilesPair(patterns) {
		return Scope{Kind: ScopeAllFiles}
	}
	return Scope{Kind: ScopeJoined, Patterns: patterns}
}

// Merged renders the scope as a single pattern string. The fallback is used
// for empty scopes; a blank fallback selects the empty-list marker.
func (s Scope) Merged(fallback string) string {
	switch s.Kind {
	case ScopeAllFiles:
		return AllFilesToken
	case ScopeSingle:
		return s.Patterns[0]
	case ScopeJoined:
		return strings.Join(s.Patterns, ",")
	default:
		if trimmed := strings.TrimSpace(fallback); trimmed != "" {
			return trimmed
		}
		return EmptyListMarker
	}
}

// ParsePatternList parses a bracketed, comma-separated, optionally quoted
// pattern list into trimmed pattern strings. Parsing is lossy but never
// fatal: a missing close bracket keeps everything up to the end of the line,
// and empty entries are discarded.
func ParsePatternList(raw string) []string {
	value := unquote(strings.TrimSpace(raw))

	if strings.HasPrefix(value, "[") {
		value = value[1:]
		if end := strings.Index(value, "]"); end >= 0 {
			value = value[:end]
		}
	}

	var patterns []string
	for _, part := range strings.Split(value, ",") {
		part = unquote(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		patterns = append(patterns, part)
	}
	return patterns
}

// ParseAlways interprets the "apply everywhere" flag. Only the exact token
// "true" enables it; anything else, including "True", is false.
func ParseAlways(raw string) bool {
	return strings.TrimSpace(raw) == "true"
}

// ValidatePatterns compiles each pattern and reports the ones that are not
// valid globs. Findings are advisory; the sync pipeline never rejects a rule
// over them.
func ValidatePatterns(patterns []string) []error {
	var issues []error
	for _, pattern := range patterns {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			issues = append(issues, fmt.Errorf("pattern %q: %w", pattern, err))
		}
	}
	return issues
}

func isAllFilesPair(patterns []string) bool {
	if len(patterns) != 2 {
		return false
	}
	return (patterns[0] == "*" && patterns[1] == "**/*") ||
		(patterns[0] == "**/*" && patterns[1] == "*")
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	if (value[0] == '"' && value[len(value)-1] == '"') ||
		(value[0] == '\'' && value[len(value)-1] == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
