package rulescmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

type stubRuleService struct {
	syncOpts   interfaces.SyncOptions
	syncResult *interfaces.SyncResult
	syncErr    error
	syncCalled bool

	lintDir    string
	lintResult *interfaces.LintResult
	lintErr    error
	lintCalled bool
}

func (s *stubRuleService) Load(ctx context.Context, path string) (*interfaces.RuleDocument, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRuleService) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.RuleDocument, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRuleService) Sync(ctx context.Context, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	s.syncCalled = true
	s.syncOpts = opts
	return s.syncResult, s.syncErr
}

func (s *stubRuleService) Lint(ctx context.Context, dir string) (*interfaces.LintResult, error) {
	s.lintCalled = true
	s.lintDir = dir
	return s.lintResult, s.lintErr
}

func cleanSyncResult() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		RunID: uuid.New(),
		Reports: []interfaces.TargetReport{
			{Target: "copilot", Processed: 2, Converted: 2},
		},
	}
}

func TestSyncTargetsHandlerSuccess(t *testing.T) {
	service := &stubRuleService{syncResult: cleanSyncResult()}

	var observed *interfaces.SyncResult
	handler := NewSyncTargetsHandler(service, nil, func(result *interfaces.SyncResult) {
		observed = result
	})

	msg := SyncTargetsCommand{
		Targets:      []string{"copilot", "claude"},
		DryRun:       true,
		DefaultScope: "**/*.go",
	}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if !service.syncCalled {
		t.Fatal("expected service.Sync to be invoked")
	}
	if len(service.syncOpts.Targets) != 2 || !service.syncOpts.DryRun || service.syncOpts.DefaultScope != "**/*.go" {
		t.Fatalf("unexpected sync options: %+v", service.syncOpts)
	}
	if observed == nil || observed.RunID != service.syncResult.RunID {
		t.Fatal("expected observer to receive the sync result")
	}
}

func TestSyncTargetsHandlerValidation(t *testing.T) {
	service := &stubRuleService{syncResult: cleanSyncResult()}
	handler := NewSyncTargetsHandler(service, nil, nil)

	err := handler.Execute(context.Background(), SyncTargetsCommand{})
	if err == nil {
		t.Fatal("expected validation error for empty targets")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if service.syncCalled {
		t.Fatal("expected service not to run when validation fails")
	}
}

func TestSyncTargetsHandlerReportsHardErrors(t *testing.T) {
	service := &stubRuleService{
		syncResult: &interfaces.SyncResult{
			RunID: uuid.New(),
			Reports: []interfaces.TargetReport{
				{Target: "claude", Processed: 2, Errored: 1, Errors: []error{errors.New("disk full")}},
			},
		},
	}
	handler := NewSyncTargetsHandler(service, nil, nil)

	err := handler.Execute(context.Background(), SyncTargetsCommand{Targets: []string{"claude"}})
	if err == nil {
		t.Fatal("expected error when targets recorded failures")
	}
	if !errors.Is(err, ErrSyncCompletedWithErrors) {
		t.Fatalf("expected ErrSyncCompletedWithErrors, got %v", err)
	}
}

func TestSyncTargetsHandlerPropagatesServiceError(t *testing.T) {
	service := &stubRuleService{syncErr: errors.New("load failed")}
	handler := NewSyncTargetsHandler(service, nil, nil)

	err := handler.Execute(context.Background(), SyncTargetsCommand{Targets: []string{"copilot"}})
	if err == nil {
		t.Fatal("expected error from service")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestSyncTargetsHandlerRequiresService(t *testing.T) {
	handler := NewSyncTargetsHandler(nil, nil, nil)

	err := handler.Execute(context.Background(), SyncTargetsCommand{Targets: []string{"copilot"}})
	if !errors.Is(err, ErrRuleServiceRequired) {
		t.Fatalf("expected ErrRuleServiceRequired, got %v", err)
	}
}

func TestSyncTargetsHandlerContextCancellation(t *testing.T) {
	service := &stubRuleService{syncResult: cleanSyncResult()}
	handler := NewSyncTargetsHandler(service, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, SyncTargetsCommand{Targets: []string{"copilot"}})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if service.syncCalled {
		t.Fatal("expected service not to run when context is cancelled")
	}
}

func TestLintDirectoryHandlerSuccess(t *testing.T) {
	service := &stubRuleService{
		lintResult: &interfaces.LintResult{
			Checked: 3,
			Issues: []interfaces.LintIssue{
				{Path: "bad.mdc", Location: "alwaysApply", Message: "not a literal boolean"},
			},
		},
	}

	var observed *interfaces.LintResult
	handler := NewLintDirectoryHandler(service, nil, func(result *interfaces.LintResult) {
		observed = result
	})

	if err := handler.Execute(context.Background(), LintDirectoryCommand{Directory: "."}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !service.lintCalled || service.lintDir != "." {
		t.Fatalf("unexpected lint invocation: called=%v dir=%q", service.lintCalled, service.lintDir)
	}
	if observed == nil || observed.Checked != 3 {
		t.Fatal("expected observer to receive the lint result")
	}
}

func TestLintDirectoryHandlerValidation(t *testing.T) {
	service := &stubRuleService{}
	handler := NewLintDirectoryHandler(service, nil, nil)

	err := handler.Execute(context.Background(), LintDirectoryCommand{Directory: "   "})
	if err == nil {
		t.Fatal("expected validation error for blank directory")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if service.lintCalled {
		t.Fatal("expected service not to run when validation fails")
	}
}
