package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-rulesync/internal/commands"
	rulescmd "github.com/goliatone/go-rulesync/internal/commands/rules"
	"github.com/goliatone/go-rulesync/internal/logging"
	"github.com/goliatone/go-rulesync/pkg/interfaces"

	"github.com/goliatone/go-rulesync/cmd/rulesync/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rulesync: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}

func run(args []string, out *os.File) (int, error) {
	fs := flag.NewFlagSet("rulesync", flag.ContinueOnError)
	rulesDir := fs.String("rules-dir", ".cursor/rules", "Path to the canonical rule documents")
	pattern := fs.String("pattern", "*.mdc", "Glob pattern applied when discovering rule files")
	recursive := fs.Bool("recursive", false, "Traverse sub-directories of the rules directory")
	outputRoot := fs.String("output", ".", "Directory destination files are written under")
	targets := fs.String("targets", "copilot,claude", "Comma separated list of targets to produce")
	defaultScope := fs.String("default-scope", "", "Merged scope emitted for rules without patterns or the always flag")
	templatesDir := fs.String("templates-dir", "", "Directory overriding the built-in scaffold templates")
	toc := fs.Bool("toc", false, "Insert a table of contents into aggregated documents")
	dryRun := fs.Bool("dry-run", false, "Walk the full pipeline without writing destination files")
	lint := fs.Bool("lint", false, "Strictly re-parse rule headers and report findings instead of syncing")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	logFormat := fs.String("log-format", "console", "Log format (console, json, pretty)")

	if err := fs.Parse(args); err != nil {
		return 2, err
	}

	module, err := moduleBuilder(bootstrap.Options{
		RulesDir:     *rulesDir,
		Pattern:      *pattern,
		Recursive:    *recursive,
		OutputRoot:   *outputRoot,
		Targets:      bootstrap.SplitList(*targets),
		DefaultScope: *defaultScope,
		TemplatesDir: *templatesDir,
		TOC:          *toc,
		LogLevel:     *logLevel,
		LogFormat:    *logFormat,
	})
	if err != nil {
		return 1, fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()

	if *lint {
		return runLint(ctx, module, out)
	}
	return runSync(ctx, module, bootstrap.SplitList(*targets), *dryRun, *defaultScope, out)
}

func runSync(ctx context.Context, module *bootstrap.Module, targets []string, dryRun bool, defaultScope string, out *os.File) (int, error) {
	var result *interfaces.SyncResult
	logger := commands.CommandLogger(module.Provider, "rules")
	handler := rulescmd.NewSyncTargetsHandler(module.Service, logger, func(r *interfaces.SyncResult) {
		result = r
	})

	err := handler.Execute(ctx, rulescmd.SyncTargetsCommand{
		Targets:      targets,
		DryRun:       dryRun,
		DefaultScope: defaultScope,
	})

	if result != nil {
		printSyncSummary(out, result)
	}

	if err != nil {
		if errors.Is(err, rulescmd.ErrSyncCompletedWithErrors) {
			return 1, nil
		}
		return 1, fmt.Errorf("execute sync command: %w", err)
	}
	return 0, nil
}

func runLint(ctx context.Context, module *bootstrap.Module, out *os.File) (int, error) {
	var result *interfaces.LintResult
	handler := rulescmd.NewLintDirectoryHandler(module.Service, logging.LintLogger(module.Provider), func(r *interfaces.LintResult) {
		result = r
	})

	if err := handler.Execute(ctx, rulescmd.LintDirectoryCommand{Directory: "."}); err != nil {
		return 1, fmt.Errorf("execute lint command: %w", err)
	}

	if result != nil {
		fmt.Fprintf(out, "checked %d rule files, %d issues\n", result.Checked, len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "  %s [%s] %s\n", issue.Path, issue.Location, issue.Message)
		}
		if len(result.Issues) > 0 {
			return 1, nil
		}
	}
	return 0, nil
}

func printSyncSummary(out *os.File, result *interfaces.SyncResult) {
	fmt.Fprintf(out, "run %s\n", result.RunID)
	for _, report := range result.Reports {
		if report.Unknown {
			fmt.Fprintf(out, "  %-10s unknown target, skipped\n", report.Target)
			continue
		}
		fmt.Fprintf(out, "  %-10s processed=%d converted=%d skipped=%d errors=%d\n",
			report.Target, report.Processed, report.Converted, report.Skipped, report.Errored)
	}
	fmt.Fprintf(out, "total converted=%d skipped=%d errors=%d\n",
		result.Converted(), result.Skipped(), result.HardErrors())
}
