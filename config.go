package rulesync

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config captures everything the sync module needs to run.
type Config struct {
	// RulesDir is the directory holding the canonical rule documents.
	RulesDir string
	// Pattern limits discovery to matching files (defaults to "*.mdc").
	Pattern string
	// Recursive controls whether sub-directories of RulesDir are traversed.
	Recursive bool
	// OutputRoot is the directory destination files are written under.
	OutputRoot string
	// Targets lists the output formats produced by default.
	Targets []string
	// DefaultScope is emitted for rules that supply neither patterns nor the
	// always flag. Blank selects the "[]" empty-list marker.
	DefaultScope string
	// TemplatesDir optionally overrides the built-in scaffold templates.
	// When set, every requested aggregate target must have a template there.
	TemplatesDir string
	// TOC inserts a table of contents into aggregated documents.
	TOC bool
	// Logging configures the go-logger provider built by the module.
	Logging LoggingConfig
}

// LoggingConfig mirrors the options of the go-logger adapter.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the configuration used when the host supplies nothing.
func DefaultConfig() Config {
	return Config{
		RulesDir:   ".cursor/rules",
		Pattern:    "*.mdc",
		Recursive:  false,
		OutputRoot: ".",
		Targets:    []string{"copilot", "claude"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration before the module is built. Unknown
// target names pass validation on purpose: the sync run skips and counts
// them without aborting the remaining targets.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.RulesDir, validation.Required),
		validation.Field(&c.OutputRoot, validation.Required),
		validation.Field(&c.Targets, validation.By(func(value any) error {
			targets, _ := value.([]string)
			for _, target := range targets {
				if strings.TrimSpace(target) == "" {
					return validation.NewError("rulesync.config.target_blank", "targets must not contain blank values")
				}
			}
			return nil
		})),
		validation.Field(&c.Logging),
	)
}

// Validate checks the logging options against what the go-logger adapter accepts.
func (c LoggingConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("", "trace", "debug", "info", "warn", "warning", "error", "fatal")),
		validation.Field(&c.Format, validation.In("", "console", "json", "pretty")),
	)
}
