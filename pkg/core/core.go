package core

import (
	"github.com/envdelta/envdelta/internal/pipeline"
	"github.com/envdelta/envdelta/internal/redact"
	"github.com/envdelta/envdelta/internal/rules"
	"github.com/envdelta/envdelta/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	CompareInput   = pipeline.CompareInput
	CompareResult  = pipeline.CompareResult
	ValidateInput  = pipeline.ValidateInput
	ValidateResult = pipeline.ValidateResult
	Session        = pipeline.Session
	Format         = pipeline.Format
	Finding        = types.Finding
	DiffResult     = types.DiffResult
	RuleSet        = rules.RuleSet
	RedactOptions  = redact.Options
	Redacted       = redact.Redacted
)

// Format selectors.
const (
	FormatEnv  = pipeline.FormatEnv
	FormatJSON = pipeline.FormatJSON
	FormatYAML = pipeline.FormatYAML
)

// Compare is the stable entrypoint for embedding the comparison pipeline.
func Compare(in CompareInput) (*CompareResult, error) {
	return pipeline.Compare(in)
}

// Validate parses documents and reports diagnostics without diffing.
func Validate(in ValidateInput) (*ValidateResult, error) {
	return pipeline.Validate(in)
}

// DefaultRules returns the built-in versioned risk-rule set.
func DefaultRules() RuleSet { return rules.DefaultRules() }

// RedactValue masks a raw value for display.
func RedactValue(raw string, opts RedactOptions) Redacted {
	return redact.Value(raw, opts)
}

// ResolveFindingLine maps a finding onto a best-effort source line.
func ResolveFindingLine(f Finding, leftSource, rightSource string, format Format) (int, bool) {
	return pipeline.ResolveFindingLine(f, leftSource, rightSource, format)
}
