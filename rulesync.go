// Package rulesync keeps a canonical directory of rule documents
// synchronized into assistant-specific formats: per-file variants with a
// translated metadata header, and aggregated single-file variants built from
// a scaffold template.
package rulesync

import (
	"fmt"
	"path/filepath"

	"github.com/goliatone/go-rulesync/internal/logging"
	"github.com/goliatone/go-rulesync/internal/logging/gologger"
	"github.com/goliatone/go-rulesync/internal/rules"
	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

// Module wires the rule service together with its logging provider.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	service  *rules.Service
}

// Option customises module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider interfaces.LoggerProvider
	writer   interfaces.FileWriter
}

// WithLoggerProvider injects a logging provider, replacing the go-logger
// provider the module would otherwise build from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(opts *moduleOptions) {
		opts.provider = provider
	}
}

// WithFileWriter injects the destination writer, replacing the default
// backup-taking filesystem writer rooted at Config.OutputRoot.
func WithFileWriter(writer interfaces.FileWriter) Option {
	return func(opts *moduleOptions) {
		opts.writer = writer
	}
}

// New validates the configuration and builds a ready-to-use module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rulesync: invalid config: %w", err)
	}

	options := moduleOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	provider := options.provider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("rulesync: build logger provider: %w", err)
		}
		provider = built
	}

	writer := options.writer
	if writer == nil {
		writer = rules.NewWriter(filepath.Clean(cfg.OutputRoot))
	}

	service, err := rules.NewService(rules.Config{
		BasePath:     cfg.RulesDir,
		Pattern:      cfg.Pattern,
		Recursive:    cfg.Recursive,
		TemplatesDir: cfg.TemplatesDir,
		DefaultScope: cfg.DefaultScope,
		TOC:          cfg.TOC,
	}, writer, logging.RulesLogger(provider))
	if err != nil {
		return nil, fmt.Errorf("rulesync: build rule service: %w", err)
	}

	return &Module{
		cfg:      cfg,
		provider: provider,
		service:  service,
	}, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Rules exposes the rule service.
func (m *Module) Rules() interfaces.RuleService {
	if m == nil {
		return nil
	}
	return m.service
}

// LoggerProvider exposes the provider used for module loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil {
		return nil
	}
	return m.provider
}
