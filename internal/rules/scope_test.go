package rules

import (
	"reflect"
	"testing"
)

func TestTranslateScopeAlwaysWins(t *testing.T) {
	scope := TranslateScope(`"*.js,*.ts"`, true)

	if scope.Kind != ScopeAllFiles {
		t.Fatalf("kind = %d, want ScopeAllFiles", scope.Kind)
	}
	if got := scope.Merged(""); got != AllFilesToken {
		t.Fatalf("merged = %q, want %q", got, AllFilesToken)
	}
}

func TestTranslateScopeSinglePattern(t *testing.T) {
	scope := TranslateScope(`"*.py"`, false)

	if scope.Kind != ScopeSingle {
		t.Fatalf("kind = %d, want ScopeSingle", scope.Kind)
	}
	if got := scope.Merged(""); got != "*.py" {
		t.Fatalf("merged = %q, want %q", got, "*.py")
	}
}

func TestTranslateScopeJoinsMultiplePatterns(t *testing.T) {
	scope := TranslateScope(`["src/**/*.go", "cmd/**/*.go"]`, false)

	if scope.Kind != ScopeJoined {
		t.Fatalf("kind = %d, want ScopeJoined", scope.Kind)
	}
	if got := scope.Merged(""); got != "src/**/*.go,cmd/**/*.go" {
		t.Fatalf("merged = %q", got)
	}
}

func TestTranslateScopeCollapsesAllFilesPair(t *testing.T) {
	for _, raw := range []string{`["*", "**/*"]`, `["**/*", "*"]`, `"*,**/*"`} {
		scope := TranslateScope(raw, false)
		if scope.Kind != ScopeAllFiles {
			t.Fatalf("raw %q: kind = %d, want ScopeAllFiles", raw, scope.Kind)
		}
		if got := scope.Merged(""); got != AllFilesToken {
			t.Fatalf("raw %q: merged = %q, want %q", raw, got, AllFilesToken)
		}
	}
}

func TestTranslateScopeEmptyUsesFallback(t *testing.T) {
	scope := TranslateScope("", false)

	if scope.Kind != ScopeEmpty {
		t.Fatalf("kind = %d, want ScopeEmpty", scope.Kind)
	}
	if got := scope.Merged(""); got != EmptyListMarker {
		t.Fatalf("merged with blank fallback = %q, want %q", got, EmptyListMarker)
	}
	if got := scope.Merged("*.md"); got != "*.md" {
		t.Fatalf("merged with fallback = %q, want %q", got, "*.md")
	}
}

func TestTranslateScopeEmptyListMarker(t *testing.T) {
	scope := TranslateScope(`"[]"`, false)

	if scope.Kind != ScopeEmpty {
		t.Fatalf("kind = %d, want ScopeEmpty", scope.Kind)
	}
	if got := scope.Merged(""); got != EmptyListMarker {
		t.Fatalf("merged = %q, want %q", got, EmptyListMarker)
	}
}

func TestParsePatternListLossyBracket(t *testing.T) {
	// Missing close bracket keeps everything to the end of the value.
	got := ParsePatternList(`["*.go", "*.md"`)
	want := []string{"*.go", "*.md"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("patterns = %#v, want %#v", got, want)
	}
}

func TestParsePatternListDropsEmptyEntries(t *testing.T) {
	got := ParsePatternList(`"*.go,, *.md,"`)
	want := []string{"*.go", "*.md"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("patterns = %#v, want %#v", got, want)
	}
}

func TestParsePatternListSingleQuotes(t *testing.T) {
	got := ParsePatternList(`'*.tsx'`)
	if !reflect.DeepEqual(got, []string{"*.tsx"}) {
		t.Fatalf("patterns = %#v", got)
	}
}

func TestParseAlwaysExactTokenOnly(t *testing.T) {
	cases := map[string]bool{
		"true":   true,
		" true ": true,
		"True":   false,
		"TRUE":   false,
		"yes":    false,
		"1":      false,
		"":       false,
	}
	for raw, want := range cases {
		if got := ParseAlways(raw); got != want {
			t.Fatalf("ParseAlways(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestValidatePatternsReportsBadGlobs(t *testing.T) {
	issues := ValidatePatterns([]string{"*.go", "[unclosed"})
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %d: %v", len(issues), issues)
	}

	if issues := ValidatePatterns([]string{"*.go", "src/**/*.ts"}); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}
