package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// HeaderLine captures one line of a rule document's metadata header. Lines
// shaped like "key: value" carry the parsed key and value; every line keeps
// its raw text so unrecognized metadata can be re-emitted verbatim.
type HeaderLine struct {
	Key        string
	Value      string
	Raw        string
	Recognized bool
}

// Header is the metadata block parsed from the top of a rule document. The
// zero value represents a document without a header block.
type Header struct {
	Lines []HeaderLine
}

// Get returns the value of the first header line carrying the supplied key.
func (h Header) Get(key string) (string, bool) {
	for _, line := range h.Lines {
		if line.Key == key {
			return line.Value, true
		}
	}
	return "", false
}

// Empty reports whether the header block is absent or carries no lines.
func (h Header) Empty() bool {
	return len(h.Lines) == 0
}

// RuleDocument is a single parsed rule file. The header is either empty or a
// well-formed block found at the very start of the source; the body is every
// line after the header, unmodified.
type RuleDocument struct {
	FilePath string
	Header   Header
	Body     []string
}

// SyncOptions configures a sync run across one or more targets.
type SyncOptions struct {
	// Targets names the output formats to produce (e.g. "copilot", "claude").
	Targets []string
	// DryRun walks the full pipeline without writing any destination file.
	DryRun bool
	// DefaultScope overrides the merged scope emitted for rules that supply
	// neither patterns nor the always flag. Empty selects the "[]" marker.
	DefaultScope string
}

// TargetReport accumulates per-target counters for a sync run.
type TargetReport struct {
	Target    string
	Processed int
	Converted int
	Skipped   int
	Errored   int
	Unknown   bool
	Errors    []error
}

// SyncResult is the outcome of one full sync run.
type SyncResult struct {
	RunID   uuid.UUID
	Reports []TargetReport
}

// HardErrors counts failures that should surface as a nonzero exit status.
// Unknown targets and skipped documents are soft recoveries and excluded.
func (r *SyncResult) HardErrors() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, report := range r.Reports {
		total += report.Errored
	}
	return total
}

// Converted sums converted documents across every target.
func (r *SyncResult) Converted() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, report := range r.Reports {
		total += report.Converted
	}
	return total
}

// Skipped sums skipped documents across every target.
func (r *SyncResult) Skipped() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, report := range r.Reports {
		total += report.Skipped
	}
	return total
}

// LintIssue is a single finding reported by the strict header linter.
type LintIssue struct {
	Path     string
	Location string
	Message  string
}

// LintResult captures the outcome of linting a directory of rule documents.
type LintResult struct {
	Checked int
	Issues  []LintIssue
}

// RuleService exposes rule discovery, transformation, and lint workflows.
type RuleService interface {
	// Load reads a single rule document relative to the configured base path.
	Load(ctx context.Context, path string) (*RuleDocument, error)
	// LoadDirectory reads every rule document within dir, sorted by path.
	LoadDirectory(ctx context.Context, dir string) ([]*RuleDocument, error)
	// Sync produces every requested target format from the configured rules
	// directory. Soft failures are counted in the result, not returned.
	Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error)
	// Lint re-parses rule headers strictly and reports what the tolerant
	// sync parser silently accepts.
	Lint(ctx context.Context, dir string) (*LintResult, error)
}

// FileWriter persists destination files. Implementations are expected to take
// a backup copy before overwriting an existing file.
type FileWriter interface {
	Write(path string, data []byte) error
}
