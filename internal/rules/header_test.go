package rules

import (
	"reflect"
	"testing"
)

func TestParseHeaderExtractsRecognizedKeys(t *testing.T) {
	raw := "---\n" +
		"description: Always think\n" +
		"globs: \"*.js,*.ts\"\n" +
		"alwaysApply: true\n" +
		"---\n" +
		"\n" +
		"# Title\n" +
		"Body line.\n"

	header, body := ParseHeader(raw)

	if got, ok := header.Get("description"); !ok || got != "Always think" {
		t.Fatalf("description = %q (%v)", got, ok)
	}
	if got, ok := header.Get("globs"); !ok || got != "\"*.js,*.ts\"" {
		t.Fatalf("globs = %q (%v)", got, ok)
	}
	if got, ok := header.Get("alwaysApply"); !ok || got != "true" {
		t.Fatalf("alwaysApply = %q (%v)", got, ok)
	}

	want := []string{"", "# Title", "Body line."}
	if !reflect.DeepEqual(body, want) {
		t.Fatalf("body = %#v, want %#v", body, want)
	}
}

func TestParseHeaderWithoutSeparatorReturnsEverythingAsBody(t *testing.T) {
	raw := "# Title\n\nJust a document.\n"

	header, body := ParseHeader(raw)

	if !header.Empty() {
		t.Fatalf("expected empty header, got %#v", header)
	}
	want := []string{"# Title", "", "Just a document."}
	if !reflect.DeepEqual(body, want) {
		t.Fatalf("body = %#v, want %#v", body, want)
	}
}

func TestParseHeaderPreservesUnrecognizedLines(t *testing.T) {
	raw := "---\n" +
		"description: Rule\n" +
		"priority: high\n" +
		"owner: platform-team\n" +
		"globs: \"*.go\"\n" +
		"---\n" +
		"Body.\n"

	header, _ := ParseHeader(raw)

	var extras []string
	for _, line := range header.Lines {
		if !line.Recognized {
			extras = append(extras, line.Raw)
		}
	}
	want := []string{"priority: high", "owner: platform-team"}
	if !reflect.DeepEqual(extras, want) {
		t.Fatalf("extras = %#v, want %#v", extras, want)
	}
}

func TestParseHeaderSkipsBlankLinesInsideBlock(t *testing.T) {
	raw := "---\n" +
		"description: Rule\n" +
		"\n" +
		"globs: \"*.go\"\n" +
		"---\n" +
		"Body.\n"

	header, _ := ParseHeader(raw)

	if len(header.Lines) != 2 {
		t.Fatalf("expected 2 header lines, got %d: %#v", len(header.Lines), header.Lines)
	}
}

func TestParseHeaderUnterminatedBlockBecomesBody(t *testing.T) {
	raw := "---\n" +
		"description: never closed\n" +
		"Body anyway.\n"

	header, body := ParseHeader(raw)

	if !header.Empty() {
		t.Fatalf("expected empty header for unterminated block, got %#v", header)
	}
	want := []string{"description: never closed", "Body anyway."}
	if !reflect.DeepEqual(body, want) {
		t.Fatalf("body = %#v, want %#v", body, want)
	}
}

func TestParseHeaderHandlesCRLF(t *testing.T) {
	raw := "---\r\ndescription: Rule\r\n---\r\nBody.\r\n"

	header, body := ParseHeader(raw)

	if got, ok := header.Get("description"); !ok || got != "Rule" {
		t.Fatalf("description = %q (%v)", got, ok)
	}
	if !reflect.DeepEqual(body, []string{"Body."}) {
		t.Fatalf("body = %#v", body)
	}
}
