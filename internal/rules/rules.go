// Package rules evaluates a declarative risk-rule set against a diff and
// produces a deduplicated, capped, rank-ordered list of findings. Rules are
// static configuration: the engine never derives them from input.
package rules

import (
	"regexp"
	"strings"

	semver "github.com/blang/semver/v4"

	"github.com/envdelta/envdelta/internal/types"
)

// Message is the text attached to a rule's findings. When Template is set
// it wins over Text and every "{key}" placeholder is replaced with the
// matched key, which keeps rule definitions serializable.
type Message struct {
	Text     string `json:"text,omitempty"`
	Template string `json:"template,omitempty"`
}

// Render produces the finding message for a key.
func (m Message) Render(key string) string {
	if m.Template != "" {
		return strings.ReplaceAll(m.Template, "{key}", key)
	}
	return m.Text
}

// Rule is one declarative risk pattern. A nil KeyPattern matches every key;
// a nil ValuePattern ignores the value entirely. Verify, when set, tightens
// a value match with a cheap structural check (alphabet, length) to cut
// false positives; it never widens a match.
type Rule struct {
	ID           string
	Severity     types.Severity
	KeyPattern   *regexp.Regexp
	ValuePattern *regexp.Regexp
	Message      Message
	Verify       func(value string) bool
}

func (r Rule) matchKey(key string) bool {
	return r.KeyPattern == nil || r.KeyPattern.MatchString(key)
}

// matchValue is total: it treats a missing value as "does not match"
// rather than failing.
func (r Rule) matchValue(value string, present bool) bool {
	if r.ValuePattern == nil {
		return false
	}
	if !present || !r.ValuePattern.MatchString(value) {
		return false
	}
	if r.Verify != nil {
		m := r.ValuePattern.FindString(value)
		return r.Verify(m)
	}
	return true
}

// RuleSet is an immutable, versioned rule collection injected into the
// engine at call time.
type RuleSet struct {
	Version semver.Version
	Rules   []Rule
}
