package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-rulesync/cmd/rulesync/internal/bootstrap"
	"github.com/goliatone/go-rulesync/internal/logging"
	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

type stubRuleService struct {
	syncCalls  int
	syncOpts   interfaces.SyncOptions
	syncResult *interfaces.SyncResult

	lintCalls  int
	lintResult *interfaces.LintResult
}

func (s *stubRuleService) Load(context.Context, string) (*interfaces.RuleDocument, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRuleService) LoadDirectory(context.Context, string) ([]*interfaces.RuleDocument, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRuleService) Sync(_ context.Context, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	s.syncCalls++
	s.syncOpts = opts
	return s.syncResult, nil
}

func (s *stubRuleService) Lint(context.Context, string) (*interfaces.LintResult, error) {
	s.lintCalls++
	return s.lintResult, nil
}

type recordingProvider struct {
	requested []string
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.requested = append(p.requested, name)
	return logging.NoOp()
}

func useStubModule(t *testing.T, svc *stubRuleService) *recordingProvider {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })

	provider := &recordingProvider{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Service:  svc,
			Provider: provider,
		}, nil
	}
	return provider
}

func captureFile(t *testing.T) *os.File {
	t.Helper()
	out, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("create capture file: %v", err)
	}
	t.Cleanup(func() { out.Close() })
	return out
}

func readCapture(t *testing.T, out *os.File) string {
	t.Helper()
	data, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatalf("read capture file: %v", err)
	}
	return string(data)
}

func TestRunSyncUsesCommandHandler(t *testing.T) {
	svc := &stubRuleService{
		syncResult: &interfaces.SyncResult{
			RunID: uuid.New(),
			Reports: []interfaces.TargetReport{
				{Target: "copilot", Processed: 2, Converted: 2},
			},
		},
	}
	provider := useStubModule(t, svc)

	out := captureFile(t)
	code, err := run([]string{"-targets", "copilot", "-dry-run"}, out)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if svc.syncCalls != 1 {
		t.Fatalf("expected one sync call, got %d", svc.syncCalls)
	}
	if len(svc.syncOpts.Targets) != 1 || svc.syncOpts.Targets[0] != "copilot" || !svc.syncOpts.DryRun {
		t.Fatalf("unexpected sync options: %+v", svc.syncOpts)
	}

	summary := readCapture(t, out)
	if !strings.Contains(summary, "total converted=2") {
		t.Fatalf("summary missing totals: %q", summary)
	}
	if len(provider.requested) == 0 || provider.requested[0] != "rulesync.commands.rules" {
		t.Fatalf("expected command logger module request, got %v", provider.requested)
	}
}

func TestRunSyncExitsNonzeroOnHardErrors(t *testing.T) {
	svc := &stubRuleService{
		syncResult: &interfaces.SyncResult{
			RunID: uuid.New(),
			Reports: []interfaces.TargetReport{
				{Target: "claude", Processed: 1, Errored: 1, Errors: []error{errors.New("disk full")}},
			},
		},
	}
	useStubModule(t, svc)

	code, err := run([]string{"-targets", "claude"}, captureFile(t))
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRunLintReportsIssues(t *testing.T) {
	svc := &stubRuleService{
		lintResult: &interfaces.LintResult{
			Checked: 2,
			Issues: []interfaces.LintIssue{
				{Path: "bad.mdc", Location: "alwaysApply", Message: "not a literal boolean"},
			},
		},
	}
	provider := useStubModule(t, svc)

	out := captureFile(t)
	code, err := run([]string{"-lint"}, out)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if svc.lintCalls != 1 {
		t.Fatalf("expected one lint call, got %d", svc.lintCalls)
	}

	report := readCapture(t, out)
	if !strings.Contains(report, "checked 2 rule files, 1 issues") {
		t.Fatalf("lint report missing summary: %q", report)
	}
	if !strings.Contains(report, "bad.mdc") {
		t.Fatalf("lint report missing issue path: %q", report)
	}
	if len(provider.requested) == 0 || provider.requested[0] != "rulesync.lint" {
		t.Fatalf("expected lint logger module request, got %v", provider.requested)
	}
}

func TestRunLintCleanExitsZero(t *testing.T) {
	svc := &stubRuleService{lintResult: &interfaces.LintResult{Checked: 3}}
	useStubModule(t, svc)

	code, err := run([]string{"-lint"}, captureFile(t))
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
}
