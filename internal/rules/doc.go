// Package rules implements the rule document transformation engine: header
// parsing, scope translation between file-applicability vocabularies,
// per-file rewriting into sibling dialects, and aggregation of many rules
// into a single scaffolded document.
package rules
