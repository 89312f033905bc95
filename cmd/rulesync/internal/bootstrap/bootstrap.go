package bootstrap

import (
	"fmt"
	"strings"

	rulesync "github.com/goliatone/go-rulesync"
	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

// Options captures configuration for rulesync CLI bootstraps.
type Options struct {
	RulesDir       string
	Pattern        string
	Recursive      bool
	OutputRoot     string
	Targets        []string
	DefaultScope   string
	TemplatesDir   string
	TOC            bool
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the rulesync module with the service and logger provider the
// CLI builds its command loggers from.
type Module struct {
	Module   *rulesync.Module
	Service  interfaces.RuleService
	Provider interfaces.LoggerProvider
}

// BuildModule constructs a rulesync module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := rulesync.DefaultConfig()

	if trimmed := strings.TrimSpace(opts.RulesDir); trimmed != "" {
		cfg.RulesDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Pattern = trimmed
	}
	cfg.Recursive = opts.Recursive
	if trimmed := strings.TrimSpace(opts.OutputRoot); trimmed != "" {
		cfg.OutputRoot = trimmed
	}
	if len(opts.Targets) > 0 {
		cfg.Targets = opts.Targets
	}
	cfg.DefaultScope = strings.TrimSpace(opts.DefaultScope)
	cfg.TemplatesDir = strings.TrimSpace(opts.TemplatesDir)
	cfg.TOC = opts.TOC
	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogFormat); trimmed != "" {
		cfg.Logging.Format = trimmed
	}

	moduleOpts := []rulesync.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, rulesync.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := rulesync.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise rulesync module: %w", err)
	}

	service := module.Rules()
	if service == nil {
		return nil, fmt.Errorf("rule service not configured")
	}

	return &Module{
		Module:   module,
		Service:  service,
		Provider: module.LoggerProvider(),
	}, nil
}

// SplitList parses a comma separated flag value into trimmed entries.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
