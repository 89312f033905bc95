package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

const (
	rootModule  = "rulesync"
	rulesModule = "rulesync.rules"
	lintModule  = "rulesync.lint"
)

const (
	fieldRulePath   = "rule_path"
	fieldRuleTarget = "target"
	fieldRuleAction = "sync_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RulesLogger returns the logger namespace reserved for the rule sync engine.
func RulesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rulesModule)
}

// LintLogger returns the logger namespace reserved for lint workflows.
func LintLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, lintModule)
}

// WithRuleContext enriches the provided logger with common sync fields such
// as source file path, target name, and sync action. Empty values are
// ignored.
func WithRuleContext(logger interfaces.Logger, path, target, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldRulePath] = trimmed
	}
	if trimmed := strings.TrimSpace(target); trimmed != "" {
		fields[fieldRuleTarget] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldRuleAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so the engine can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
