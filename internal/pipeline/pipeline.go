// Package pipeline wires the parsing, diff and rule stages into the
// compare and validate operations. Every stage is a pure function over
// immutable inputs; the pipeline holds no shared mutable state and is
// re-run from scratch on every request.
package pipeline

import (
	"fmt"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/envdelta/envdelta/internal/diff"
	"github.com/envdelta/envdelta/internal/envparse"
	"github.com/envdelta/envdelta/internal/flatten"
	"github.com/envdelta/envdelta/internal/lineref"
	"github.com/envdelta/envdelta/internal/logging"
	"github.com/envdelta/envdelta/internal/rules"
	"github.com/envdelta/envdelta/internal/types"
)

// Format selects the parser for both sides of a comparison.
type Format string

const (
	FormatEnv  Format = "env"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// CompareInput carries the two raw documents plus per-format options.
type CompareInput struct {
	Left, Right string
	Format      Format
	Env         envparse.Options
	Flatten     flatten.Options
	Rules       rules.RuleSet // empty set means rules.DefaultRules()
	IncludeKeys []string      // doublestar globs; empty means all keys
	ExcludeKeys []string
}

// Side reports one side's parse outcome.
type Side struct {
	OK         bool              `json:"ok"`
	Issues     []types.Issue     `json:"issues,omitempty"`
	Duplicates []types.Duplicate `json:"duplicates,omitempty"`
	Meta       types.Meta        `json:"meta"`
}

// CompareResult is the full output of one comparison request.
type CompareResult struct {
	Seq      uint64           `json:"seq,omitempty"`
	Diff     types.DiffResult `json:"diff"`
	Findings []types.Finding  `json:"findings"`
	Warnings []string         `json:"warnings,omitempty"`
	Left     Side             `json:"left"`
	Right    Side             `json:"right"`
}

// Compare parses both sides independently, diffs them and applies the risk
// rules. A hard parse failure on one side skips the diff but still reports
// the other side's diagnostics. Oversized input is the one condition
// returned as an error, since truncating it could hide entries.
func Compare(in CompareInput) (*CompareResult, error) {
	start := time.Now()

	left := parseSide(in, in.Left)
	right := parseSide(in, in.Right)
	if err := oversized("left", left); err != nil {
		return nil, err
	}
	if err := oversized("right", right); err != nil {
		return nil, err
	}

	res := &CompareResult{Left: sideOf(left), Right: sideOf(right)}
	if !left.OK || !right.OK {
		if !left.OK {
			res.Warnings = append(res.Warnings, "left side failed to parse; diff skipped")
		}
		if !right.OK {
			res.Warnings = append(res.Warnings, "right side failed to parse; diff skipped")
		}
		return res, nil
	}

	lv := filterKeys(left.Values, in.IncludeKeys, in.ExcludeKeys)
	rv := filterKeys(right.Values, in.IncludeKeys, in.ExcludeKeys)
	res.Diff = diff.Entries(lv, rv)

	rs := in.Rules
	if len(rs.Rules) == 0 {
		rs = rules.DefaultRules()
	}
	engine := rules.Apply(res.Diff, rs)
	findings := engine.Findings
	findings = append(findings, rules.DuplicateFindings("left", left)...)
	findings = append(findings, rules.DuplicateFindings("right", right)...)
	rules.Sort(findings)
	res.Findings = findings
	res.Warnings = append(res.Warnings, engine.Warnings...)

	logging.L().Debug().
		Str("format", string(in.Format)).
		Int("leftKeys", len(left.Values)).
		Int("rightKeys", len(right.Values)).
		Int("findings", len(res.Findings)).
		Dur("elapsed", time.Since(start)).
		Msg("compare")
	return res, nil
}

// SideReport is one side's validation outcome.
type SideReport struct {
	OK         bool              `json:"ok"`
	Issues     []types.Issue     `json:"issues,omitempty"`
	Duplicates []types.Duplicate `json:"duplicates,omitempty"`
	Meta       types.Meta        `json:"meta"`
}

// Totals aggregates issue severities across all validated sides.
type Totals struct {
	Errors     int `json:"errors"`
	Warnings   int `json:"warnings"`
	Duplicates int `json:"duplicates"`
}

// ValidateInput names the documents to validate, all with the same format.
type ValidateInput struct {
	Sides   []string
	Format  Format
	Env     envparse.Options
	Flatten flatten.Options
}

// ValidateResult reports per-side diagnostics plus aggregated totals.
type ValidateResult struct {
	Sides  []SideReport `json:"sides"`
	Totals Totals       `json:"totals"`
}

// Validate parses each document independently and aggregates diagnostics.
func Validate(in ValidateInput) (*ValidateResult, error) {
	ci := CompareInput{Format: in.Format, Env: in.Env, Flatten: in.Flatten}
	res := &ValidateResult{}
	for i, text := range in.Sides {
		pc := parseSide(ci, text)
		if err := oversized(fmt.Sprintf("document %d", i+1), pc); err != nil {
			return nil, err
		}
		res.Sides = append(res.Sides, SideReport{OK: pc.OK, Issues: pc.Issues, Duplicates: pc.Duplicates, Meta: pc.Meta})
		for _, is := range pc.Issues {
			if is.Kind == types.IssueError {
				res.Totals.Errors++
			} else {
				res.Totals.Warnings++
			}
		}
		res.Totals.Duplicates += len(pc.Duplicates)
	}
	return res, nil
}

// ResolveFindingLine maps a finding onto a source line for navigation. The
// finding's message decides the side when it names one; otherwise added
// findings resolve against the right source and removed against the left,
// falling back to the other side.
func ResolveFindingLine(f types.Finding, leftSource, rightSource string, format Format) (int, bool) {
	ref := lineref.Ref{Key: f.Key, Message: f.Message}
	first, second := rightSource, leftSource
	switch {
	case lineref.PreferredSide(f.Message) == "left":
		first, second = leftSource, rightSource
	case lineref.PreferredSide(f.Message) == "right":
	case f.Context == types.ContextRemoved:
		first, second = leftSource, rightSource
	}
	if line, ok := lineref.Resolve(ref, first, string(format)); ok {
		return line, true
	}
	return lineref.Resolve(ref, second, string(format))
}

func parseSide(in CompareInput, text string) types.ParsedConfig {
	switch in.Format {
	case FormatJSON:
		return flatten.JSON(text, in.Flatten)
	case FormatYAML:
		return flatten.YAML(text, in.Flatten)
	default:
		return envparse.Parse(text, in.Env)
	}
}

func sideOf(pc types.ParsedConfig) Side {
	return Side{OK: pc.OK, Issues: pc.Issues, Duplicates: pc.Duplicates, Meta: pc.Meta}
}

func oversized(side string, pc types.ParsedConfig) error {
	for _, is := range pc.Issues {
		if is.Code == flatten.CodeTooLarge {
			return fmt.Errorf("%s side: %w", side, flatten.ErrTooLarge)
		}
	}
	return nil
}

// filterKeys applies include/exclude doublestar globs to a value map. An
// empty include list admits every key; excludes win over includes.
func filterKeys(values map[string]string, include, exclude []string) map[string]string {
	if len(include) == 0 && len(exclude) == 0 {
		return values
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(include) > 0 && !matchAny(include, k) {
			continue
		}
		if matchAny(exclude, k) {
			continue
		}
		out[k] = v
	}
	return out
}

func matchAny(patterns []string, key string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, key); err == nil && ok {
			return true
		}
	}
	return false
}
