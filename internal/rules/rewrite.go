package rules

import (
	"path"
	"strings"

	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

// Source dialect tokens rewritten into their destination equivalents when a
// rule body references other rule files.
const (
	sourceRulesDir  = ".cursor/rules/"
	sourceExtension = ".mdc"
)

// artifactMarker identifies rule bodies that were themselves produced by a
// previous sync run. Such documents are skipped, never converted.
const artifactMarker = "copilot-instructions.md"

// Dialect describes a per-file output format: the header key carrying the
// merged scope, plus the path fragment and extension substituted into body
// text.
type Dialect struct {
	Name      string
	ScopeKey  string
	RulesDir  string
	Extension string
}

var (
	// DialectCopilot emits GitHub Copilot instruction files.
	DialectCopilot = Dialect{
		Name:      "copilot",
		ScopeKey:  "applyTo",
		RulesDir:  ".github/instructions/",
		Extension: ".instructions.md",
	}
	// DialectWindsurf emits Windsurf rule files.
	DialectWindsurf = Dialect{
		Name:      "windsurf",
		ScopeKey:  "globs",
		RulesDir:  ".windsurf/rules/",
		Extension: ".md",
	}
)

// OutputName maps a source file name onto the dialect's naming convention.
func (d Dialect) OutputName(sourcePath string) string {
	base := path.Base(strings.ReplaceAll(sourcePath, "\\", "/"))
	stem := strings.TrimSuffix(base, sourceExtension)
	stem = strings.TrimSuffix(stem, ".md")
	return stem + d.Extension
}

// RewriteOptions tunes per-file conversion.
type RewriteOptions struct {
	// DefaultScope renders in place of an empty scope. Blank selects the
	// "[]" marker.
	DefaultScope string
}

// Rewrite converts one rule document into the destination dialect. It
// returns the output text and whether the document was skipped because it is
// itself a generated artifact, in which case the text is a minimal
// placeholder.
func Rewrite(doc *interfaces.RuleDocument, dialect Dialect, opts RewriteOptions) (string, bool) {
	if doc == nil {
		return "", false
	}

	if IsGeneratedArtifact(doc) {
		return placeholderDocument(dialect), true
	}

	globs, _ := doc.Header.Get(keyGlobs)
	alwaysRaw, _ := doc.Header.Get(keyAlwaysApply)
	scope := TranslateScope(globs, ParseAlways(alwaysRaw))

	var b strings.Builder
	b.WriteString(headerSeparator + "\n")

	description, _ := doc.Header.Get(keyDescription)
	b.WriteString(keyDescription + ": " + description + "\n")

	// Unrecognized metadata survives the translation in its original
	// relative order.
	for _, line := range doc.Header.Lines {
		if !line.Recognized {
			b.WriteString(line.Raw + "\n")
		}
	}

	b.WriteString(dialect.ScopeKey + ": \"" + scope.Merged(opts.DefaultScope) + "\"\n")
	b.WriteString(headerSeparator + "\n")
	b.WriteString("\n")

	for _, line := range doc.Body {
		b.WriteString(rewriteLine(line, dialect) + "\n")
	}

	return b.String(), false
}

// IsGeneratedArtifact reports whether the document body carries the marker
// line left behind by a previous sync run.
func IsGeneratedArtifact(doc *interfaces.RuleDocument) bool {
	if doc == nil {
		return false
	}
	for _, line := range doc.Body {
		if strings.TrimSpace(line) == artifactMarker {
			return true
		}
	}
	return false
}

func rewriteLine(line string, dialect Dialect) string {
	out := strings.ReplaceAll(line, sourceRulesDir, dialect.RulesDir)
	return strings.ReplaceAll(out, sourceExtension, dialect.Extension)
}

func placeholderDocument(dialect Dialect) string {
	var b strings.Builder
	b.WriteString(headerSeparator + "\n")
	b.WriteString(keyDescription + ": \n")
	b.WriteString(dialect.ScopeKey + ": \"" + EmptyListMarker + "\"\n")
	b.WriteString(headerSeparator + "\n")
	b.WriteString("\n")
	b.WriteString("<!-- Skipped: source file is a generated sync artifact. -->\n")
	return b.String()
}
