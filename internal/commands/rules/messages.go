package rulescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	syncTargetsMessageType   = "rulesync.rules.sync_targets"
	lintDirectoryMessageType = "rulesync.rules.lint_directory"
)

// SyncTargetsCommand triggers a full sync run producing every named target
// format from the configured rules directory. Options map directly onto
// interfaces.SyncOptions.
type SyncTargetsCommand struct {
	// Targets names the output formats to produce (e.g. "copilot", "claude").
	Targets []string `json:"targets"`
	// DryRun walks the full pipeline without writing destination files.
	DryRun bool `json:"dry_run,omitempty"`
	// DefaultScope overrides the merged scope emitted for rules without
	// patterns or the always flag.
	DefaultScope string `json:"default_scope,omitempty"`
}

// Type implements command.Message.
func (SyncTargetsCommand) Type() string { return syncTargetsMessageType }

// Validate ensures at least one non-blank target was requested.
func (cmd SyncTargetsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Targets, validation.Required, validation.By(func(value any) error {
			targets, _ := value.([]string)
			for _, target := range targets {
				if strings.TrimSpace(target) == "" {
					return validation.NewError("rulesync.rules.sync_targets.target_blank", "targets must not contain blank values")
				}
			}
			return nil
		})),
	)
}

// LintDirectoryCommand runs the strict header linter over every rule file
// within Directory, relative to the configured rules root.
type LintDirectoryCommand struct {
	// Directory selects the directory to lint, relative to the rules root.
	Directory string `json:"directory"`
}

// Type implements command.Message.
func (LintDirectoryCommand) Type() string { return lintDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd LintDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("rulesync.rules.lint_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
