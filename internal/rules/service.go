package rules

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-rulesync/internal/logging"
	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

// Config controls how the rule service discovers sources and renders targets.
type Config struct {
	BasePath     string
	Pattern      string
	Recursive    bool
	TemplatesDir string
	DefaultScope string
	TOC          bool
}

// Service implements interfaces.RuleService for filesystem-backed rules.
type Service struct {
	cfg    Config
	loader *Loader
	writer interfaces.FileWriter
	logger interfaces.Logger
}

var _ interfaces.RuleService = (*Service)(nil)

// NewService constructs a rule service rooted at cfg.BasePath. When writer is
// nil a backup-taking filesystem writer rooted at the working directory is
// used; when logger is nil logging is disabled.
func NewService(cfg Config, writer interfaces.FileWriter, logger interfaces.Logger) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	if writer == nil {
		writer = NewWriter("")
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:    cfg,
		loader: loader,
		writer: writer,
		logger: logger,
	}, nil
}

// Load reads a single rule document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string) (*interfaces.RuleDocument, error) {
	result, err := s.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads every rule document within the supplied directory.
func (s *Service) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.RuleDocument, error) {
	results, err := s.loader.LoadDirectory(ctx, normalizeDir(dir))
	if err != nil {
		return nil, err
	}
	docs := make([]*interfaces.RuleDocument, 0, len(results))
	for _, result := range results {
		docs = append(docs, result.Document)
	}
	return docs, nil
}

// Sync renders every requested target from the configured rules directory.
// Targets are processed strictly sequentially; a failed target never stops
// the remaining ones. Soft recoveries (unknown targets, skipped artifacts,
// tolerated header problems) are counted but do not produce errors.
func (s *Service) Sync(ctx context.Context, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	docs, err := s.LoadDirectory(ctx, ".")
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	logger := logging.WithFields(s.logger, map[string]any{
		"run_id":  runID.String(),
		"dry_run": opts.DryRun,
	})
	logger.Info("rules.sync.start", "documents", len(docs), "targets", strings.Join(opts.Targets, ","))

	writer := s.writer
	if opts.DryRun {
		writer = discardWriter{}
	}
	if strings.TrimSpace(opts.DefaultScope) == "" {
		// Fall back to the configured default so hosts that set it once at
		// construction time are not required to repeat it per run.
		opts.DefaultScope = s.cfg.DefaultScope
	}

	acc := newRunAccumulator(runID)
	for _, name := range opts.Targets {
		target, ok := LookupTarget(name)
		if !ok {
			logger.Warn("rules.sync.unknown_target", "target", name, "known", strings.Join(TargetNames(), ","))
			acc.unknownTarget(name)
			continue
		}

		report := newTargetAccumulator(target.Name)
		switch target.Kind {
		case TargetPerFile:
			s.syncPerFile(target, docs, opts, writer, logger, report)
		case TargetAggregate:
			s.syncAggregate(target, docs, writer, logger, report)
		}
		acc.add(report)
	}

	result := acc.result()
	logger.Info("rules.sync.completed",
		"converted", result.Converted(),
		"skipped", result.Skipped(),
		"errors", result.HardErrors(),
	)
	return result, nil
}

func (s *Service) syncPerFile(target Target, docs []*interfaces.RuleDocument, opts interfaces.SyncOptions, writer interfaces.FileWriter, logger interfaces.Logger, report *targetAccumulator) {
	for _, doc := range docs {
		report.processed()
		entry := logging.WithRuleContext(logger, doc.FilePath, target.Name, "convert")

		if doc.Header.Empty() {
			entry.Warn("rules.sync.header_missing")
		}
		if globsRaw, ok := doc.Header.Get(keyGlobs); ok {
			for _, issue := range ValidatePatterns(ParsePatternList(globsRaw)) {
				entry.Warn("rules.sync.pattern_invalid", "error", issue)
			}
		}

		text, skipped := Rewrite(doc, target.Dialect, RewriteOptions{DefaultScope: opts.DefaultScope})
		outPath := path.Join(target.OutputDir, target.Dialect.OutputName(doc.FilePath))

		if err := writer.Write(outPath, []byte(text)); err != nil {
			entry.Error("rules.sync.write_failed", "error", err)
			report.errored(err)
			continue
		}
		if skipped {
			entry.Info("rules.sync.artifact_skipped")
			report.skipped()
			continue
		}
		report.converted()
	}
}

func (s *Service) syncAggregate(target Target, docs []*interfaces.RuleDocument, writer interfaces.FileWriter, logger interfaces.Logger, report *targetAccumulator) {
	entry := logging.WithRuleContext(logger, "", target.Name, "aggregate")

	scaffold, err := LoadScaffold(s.cfg.TemplatesDir, target)
	if err != nil {
		entry.Error("rules.sync.scaffold_unavailable", "error", err)
		report.errored(err)
		return
	}

	kept := make([]*interfaces.RuleDocument, 0, len(docs))
	for _, doc := range docs {
		report.processed()
		if IsGeneratedArtifact(doc) {
			logging.WithRuleContext(logger, doc.FilePath, target.Name, "aggregate").Info("rules.sync.artifact_skipped")
			report.skipped()
			continue
		}
		kept = append(kept, doc)
	}

	text := Aggregate(kept, AggregateOptions{
		Scaffold: scaffold,
		TOC:      s.cfg.TOC,
	})

	if err := writer.Write(target.OutputPath, []byte(text)); err != nil {
		entry.Error("rules.sync.write_failed", "error", err)
		report.errored(err)
		return
	}
	for range kept {
		report.converted()
	}
}

// Lint strictly re-parses every rule header within dir and reports findings
// the tolerant sync parser accepts silently.
func (s *Service) Lint(ctx context.Context, dir string) (*interfaces.LintResult, error) {
	results, err := s.loader.LoadDirectory(ctx, normalizeDir(dir))
	if err != nil {
		return nil, err
	}

	lint := &interfaces.LintResult{}
	for _, result := range results {
		lint.Checked++
		lint.Issues = append(lint.Issues, LintDocument(result.Document.FilePath, result.Source)...)
	}
	return lint, nil
}

type targetAccumulator struct {
	report interfaces.TargetReport
}

func newTargetAccumulator(name string) *targetAccumulator {
	return &targetAccumulator{report: interfaces.TargetReport{Target: name}}
}

func (a *targetAccumulator) processed() { a.report.Processed++ }
func (a *targetAccumulator) converted() { a.report.Converted++ }
func (a *targetAccumulator) skipped()   { a.report.Skipped++ }

func (a *targetAccumulator) errored(err error) {
	if err == nil {
		return
	}
	a.report.Errored++
	a.report.Errors = append(a.report.Errors, err)
}

type runAccumulator struct {
	runID   uuid.UUID
	reports []interfaces.TargetReport
}

func newRunAccumulator(runID uuid.UUID) *runAccumulator {
	return &runAccumulator{runID: runID}
}

func (a *runAccumulator) add(target *targetAccumulator) {
	a.reports = append(a.reports, target.report)
}

func (a *runAccumulator) unknownTarget(name string) {
	a.reports = append(a.reports, interfaces.TargetReport{
		Target:  name,
		Unknown: true,
		Skipped: 1,
	})
}

func (a *runAccumulator) result() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		RunID:   a.runID,
		Reports: a.reports,
	}
}

func normalizeDir(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return "."
	}
	return dir
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("rules service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
