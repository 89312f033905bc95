package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-rulesync/pkg/interfaces"
)

// headerSchema constrains the strict (YAML) reading of a rule header. The
// sync pipeline itself never requires strict YAML; the linter exists to
// surface what the tolerant parser papers over in hand-edited files.
const headerSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"description": {"type": "string"},
		"globs": {"type": ["string", "array", "null"]},
		"alwaysApply": {"type": "boolean"}
	}
}`

var compiledHeaderSchema = mustCompileHeaderSchema()

func mustCompileHeaderSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("header.schema.json", strings.NewReader(headerSchema)); err != nil {
		panic(fmt.Sprintf("rules: add header schema: %v", err))
	}
	schema, err := compiler.Compile("header.schema.json")
	if err != nil {
		panic(fmt.Sprintf("rules: compile header schema: %v", err))
	}
	return schema
}

// LintDocument strictly re-parses a rule document's header as YAML
// frontmatter, validates it against the header schema, and reports findings
// the tolerant sync parser would accept silently. Findings are advisory.
func LintDocument(path string, source []byte) []interfaces.LintIssue {
	var issues []interfaces.LintIssue

	var meta map[string]any
	if _, err := frontmatter.Parse(bytes.NewReader(source), &meta); err != nil {
		issues = append(issues, interfaces.LintIssue{
			Path:     path,
			Location: "header",
			Message:  fmt.Sprintf("header is not strict YAML: %v", err),
		})
		return append(issues, lintLooseHeader(path, source)...)
	}

	if len(meta) > 0 {
		if err := compiledHeaderSchema.Validate(normalizeYAML(meta)); err != nil {
			issues = append(issues, schemaIssues(path, err)...)
		}
	}

	return append(issues, lintLooseHeader(path, source)...)
}

// lintLooseHeader applies checks expressed against the tolerant reading of
// the header: boolean spelling and glob pattern validity.
func lintLooseHeader(path string, source []byte) []interfaces.LintIssue {
	header, _ := ParseHeader(string(source))
	var issues []interfaces.LintIssue

	if raw, ok := header.Get(keyAlwaysApply); ok {
		trimmed := strings.TrimSpace(raw)
		if trimmed != "true" && trimmed != "false" {
			issues = append(issues, interfaces.LintIssue{
				Path:     path,
				Location: keyAlwaysApply,
				Message:  fmt.Sprintf("value %q is not the literal true or false; it reads as false", raw),
			})
		}
	}

	if raw, ok := header.Get(keyGlobs); ok {
		// The tolerant parser strips the opening bracket before it can
		// notice a missing close, so check the raw value here.
		value := unquote(strings.TrimSpace(raw))
		if strings.HasPrefix(value, "[") && !strings.Contains(value, "]") {
			issues = append(issues, interfaces.LintIssue{
				Path:     path,
				Location: keyGlobs,
				Message:  fmt.Sprintf("pattern list %q has no closing bracket; everything to the end of the line reads as patterns", raw),
			})
		}
		for _, err := range ValidatePatterns(ParsePatternList(raw)) {
			issues = append(issues, interfaces.LintIssue{
				Path:     path,
				Location: keyGlobs,
				Message:  err.Error(),
			})
		}
	}

	return issues
}

func schemaIssues(path string, err error) []interfaces.LintIssue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []interfaces.LintIssue{{Path: path, Location: "header", Message: err.Error()}}
	}

	var issues []interfaces.LintIssue
	var walk func(node *jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, interfaces.LintIssue{
				Path:     path,
				Location: "header" + node.InstanceLocation,
				Message:  node.Message,
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return issues
}

// normalizeYAML converts YAML-decoded values into JSON-compatible shapes so
// the schema validator can walk them (yaml.v2 produces interface-keyed maps).
func normalizeYAML(value any) any {
	switch typed := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[fmt.Sprintf("%v", key)] = normalizeYAML(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[key] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = normalizeYAML(val)
		}
		return out
	case int:
		return json.Number(fmt.Sprintf("%d", typed))
	default:
		return typed
	}
}
