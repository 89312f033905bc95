package rules

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

//go:embed templates/*.md
var templateFS embed.FS

// TargetKind separates per-file rewriting targets from aggregated ones.
type TargetKind int

const (
	// TargetPerFile rewrites every rule into its own destination file.
	TargetPerFile TargetKind = iota
	// TargetAggregate concatenates every rule under one scaffolded document.
	TargetAggregate
)

// Target is one requested output format.
type Target struct {
	Name         string
	Kind         TargetKind
	Dialect      Dialect
	OutputDir    string
	OutputPath   string
	TemplateName string
}

var builtinTargets = map[string]Target{
	"copilot": {
		Name:      "copilot",
		Kind:      TargetPerFile,
		Dialect:   DialectCopilot,
		OutputDir: ".github/instructions",
	},
	"windsurf": {
		Name:      "windsurf",
		Kind:      TargetPerFile,
		Dialect:   DialectWindsurf,
		OutputDir: ".windsurf/rules",
	},
	"claude": {
		Name:         "claude",
		Kind:         TargetAggregate,
		OutputPath:   "CLAUDE.md",
		TemplateName: "claude.md",
	},
	"agents": {
		Name:         "agents",
		Kind:         TargetAggregate,
		OutputPath:   "AGENTS.md",
		TemplateName: "agents.md",
	},
	"gemini": {
		Name:         "gemini",
		Kind:         TargetAggregate,
		OutputPath:   "GEMINI.md",
		TemplateName: "gemini.md",
	},
}

// LookupTarget resolves a target by name.
func LookupTarget(name string) (Target, bool) {
	target, ok := builtinTargets[name]
	return target, ok
}

// TargetNames returns every known target name in sorted order.
func TargetNames() []string {
	names := make([]string, 0, len(builtinTargets))
	for name := range builtinTargets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadScaffold returns the scaffold template for an aggregate target. When
// an override directory is configured the template must exist there; a
// missing override is fatal for the target so a partially configured
// templates directory never silently falls back to the built-in scaffold.
func LoadScaffold(overrideDir string, target Target) (string, error) {
	if target.TemplateName == "" {
		return "", fmt.Errorf("%w: target %s has no scaffold", ErrTemplateMissing, target.Name)
	}

	if overrideDir != "" {
		data, err := os.ReadFile(filepath.Join(overrideDir, target.TemplateName))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: %s in %s", ErrTemplateMissing, target.TemplateName, overrideDir)
			}
			return "", fmt.Errorf("rules: read scaffold %s: %w", target.TemplateName, err)
		}
		return string(data), nil
	}

	data, err := templateFS.ReadFile("templates/" + target.TemplateName)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateMissing, target.TemplateName)
	}
	return string(data), nil
}
