package rulescmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-rulesync/internal/commands"
	"github.com/goliatone/go-rulesync/internal/logging"
	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

const (
	syncOperation = "rules.sync_targets"
	lintOperation = "rules.lint_directory"
)

// ErrSyncCompletedWithErrors is returned when a sync run finishes but one or
// more targets recorded hard failures. Callers should surface it as a
// nonzero exit status.
var ErrSyncCompletedWithErrors = errors.New("rules command: sync completed with errors")

// ErrRuleServiceRequired is returned when a handler is constructed without a service.
var ErrRuleServiceRequired = errors.New("rules command: rule service is required")

var (
	_ command.Commander[SyncTargetsCommand]   = (*SyncTargetsHandler)(nil)
	_ command.Commander[LintDirectoryCommand] = (*LintDirectoryHandler)(nil)
)

// SyncObserver receives the sync result before the handler returns, letting
// callers print summaries without re-running the pipeline.
type SyncObserver func(*interfaces.SyncResult)

// SyncTargetsHandler orchestrates sync runs via the shared command handler foundation.
type SyncTargetsHandler struct {
	inner *commands.Handler[SyncTargetsCommand]
}

// NewSyncTargetsHandler creates a handler bound to the supplied rule service.
func NewSyncTargetsHandler(service interfaces.RuleService, logger interfaces.Logger, observer SyncObserver, opts ...commands.HandlerOption[SyncTargetsCommand]) *SyncTargetsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SyncTargetsCommand) error {
		if service == nil {
			return ErrRuleServiceRequired
		}

		result, err := service.Sync(ctx, interfaces.SyncOptions{
			Targets:      msg.Targets,
			DryRun:       msg.DryRun,
			DefaultScope: msg.DefaultScope,
		})
		if err != nil {
			return err
		}

		if observer != nil {
			observer(result)
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"run_id":          result.RunID.String(),
				"converted_count": result.Converted(),
				"skipped_count":   result.Skipped(),
				"error_count":     result.HardErrors(),
				"dry_run":         msg.DryRun,
			}).Info("rules.command.sync_targets.completed")

			if result.HardErrors() > 0 {
				return ErrSyncCompletedWithErrors
			}
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncTargetsCommand]{
		commands.WithLogger[SyncTargetsCommand](baseLogger),
		commands.WithOperation[SyncTargetsCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncTargetsCommand) map[string]any {
			fields := map[string]any{
				"targets": strings.Join(msg.Targets, ","),
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.DefaultScope != "" {
				fields["default_scope"] = msg.DefaultScope
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncTargetsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncTargetsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncTargetsCommand].
func (h *SyncTargetsHandler) Execute(ctx context.Context, msg SyncTargetsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LintObserver receives the lint result before the handler returns.
type LintObserver func(*interfaces.LintResult)

// LintDirectoryHandler orchestrates strict header lint runs.
type LintDirectoryHandler struct {
	inner *commands.Handler[LintDirectoryCommand]
}

// NewLintDirectoryHandler creates a handler bound to the supplied rule service.
func NewLintDirectoryHandler(service interfaces.RuleService, logger interfaces.Logger, observer LintObserver, opts ...commands.HandlerOption[LintDirectoryCommand]) *LintDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg LintDirectoryCommand) error {
		if service == nil {
			return ErrRuleServiceRequired
		}

		result, err := service.Lint(ctx, msg.Directory)
		if err != nil {
			return err
		}

		if observer != nil {
			observer(result)
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"checked_count": result.Checked,
				"issue_count":   len(result.Issues),
			}).Info("rules.command.lint_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[LintDirectoryCommand]{
		commands.WithLogger[LintDirectoryCommand](baseLogger),
		commands.WithOperation[LintDirectoryCommand](lintOperation),
		commands.WithMessageFields(func(msg LintDirectoryCommand) map[string]any {
			return map[string]any{
				"directory": msg.Directory,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LintDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LintDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[LintDirectoryCommand].
func (h *LintDirectoryHandler) Execute(ctx context.Context, msg LintDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
