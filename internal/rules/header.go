package rules

import (
	"strings"

	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

// headerSeparator delimits the metadata block at the top of a rule document.
const headerSeparator = "---"

// Header keys recognized in the source dialect. Any other "key: value" line
// is preserved verbatim and re-emitted when the document is rewritten.
const (
	keyDescription = "description"
	keyGlobs       = "globs"
	keyAlwaysApply = "alwaysApply"
)

// ParseHeader splits raw document text into its metadata header and body.
// The header is only recognized when the very first line is the separator;
// otherwise the header is empty and the body is the entire input. A document
// whose header block is never closed is treated as having no header, with
// everything after the opening separator returned as body.
func ParseHeader(raw string) (interfaces.Header, []string) {
	lines := SplitLines(raw)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != headerSeparator {
		return interfaces.Header{}, lines
	}

	var header interfaces.Header
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == headerSeparator {
			return header, lines[i+1:]
		}
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			// Blank lines inside the header block carry no metadata.
			continue
		}
		header.Lines = append(header.Lines, parseHeaderLine(line))
	}

	// Degenerate single-delimiter document.
	return interfaces.Header{}, lines[1:]
}

// ParseDocument builds a RuleDocument from the supplied path and raw bytes.
func ParseDocument(path string, source []byte) *interfaces.RuleDocument {
	header, body := ParseHeader(string(source))
	return &interfaces.RuleDocument{
		FilePath: path,
		Header:   header,
		Body:     body,
	}
}

func parseHeaderLine(line string) interfaces.HeaderLine {
	parsed := interfaces.HeaderLine{Raw: line}
	idx := strings.Index(line, ":")
	if idx < 0 {
		return parsed
	}
	parsed.Key = strings.TrimSpace(line[:idx])
	parsed.Value = strings.TrimSpace(line[idx+1:])
	switch parsed.Key {
	case keyDescription, keyGlobs, keyAlwaysApply:
		parsed.Recognized = true
	}
	return parsed
}

// SplitLines normalizes line endings and splits text into lines. A trailing
// newline does not produce a final empty line.
func SplitLines(raw string) []string {
	if raw == "" {
		return nil
	}
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.TrimSuffix(normalized, "\n")
	return strings.Split(normalized, "\n")
}
