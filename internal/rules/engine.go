package rules

import (
	"fmt"
	"sort"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/envdelta/envdelta/internal/types"
)

const (
	// MaxFindings caps engine output. Past the cap further findings are
	// silently dropped and a single truncation warning is appended.
	MaxFindings = 500
	// advisoryThreshold is the softer, uncapped warning threshold.
	advisoryThreshold = 200
)

// Result is the rule engine output: findings plus engine-level warnings.
type Result struct {
	Findings []types.Finding `json:"findings"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Apply evaluates a rule set against a diff. Added and removed entries are
// matched on key plus their single value. Changed entries are matched
// asymmetrically: value-less rules fire once per key, valued rules run
// independently against the new and old value — a hit on the new value is
// tagged "matches new value", a hit on only the old one "matches old value"
// (a risky removal). Running Apply twice on the same inputs yields an
// identical ordered finding list.
func Apply(d types.DiffResult, rs RuleSet) Result {
	e := &evaluator{seen: make(map[uint64]struct{})}

	for _, a := range d.Added {
		for _, r := range rs.Rules {
			e.evalSingle(r, types.ContextAdded, a.Key, a.Value)
		}
	}
	for _, rm := range d.Removed {
		for _, r := range rs.Rules {
			e.evalSingle(r, types.ContextRemoved, rm.Key, rm.Value)
		}
	}
	for _, c := range d.Changed {
		for _, r := range rs.Rules {
			e.evalChanged(r, c)
		}
	}

	Sort(e.findings)

	var warnings []string
	if e.truncated {
		warnings = append(warnings, fmt.Sprintf("finding list truncated at %d entries; further matches were dropped", MaxFindings))
	} else if len(e.findings) >= advisoryThreshold {
		warnings = append(warnings, fmt.Sprintf("%d findings; consider narrowing the comparison", len(e.findings)))
	}
	return Result{Findings: e.findings, Warnings: warnings}
}

type evaluator struct {
	findings  []types.Finding
	seen      map[uint64]struct{}
	truncated bool
}

func (e *evaluator) evalSingle(r Rule, context, key, value string) {
	if !r.matchKey(key) {
		return
	}
	if r.ValuePattern != nil && !r.matchValue(value, true) {
		return
	}
	e.add(r, context, key, "")
}

func (e *evaluator) evalChanged(r Rule, c types.ChangedEntry) {
	if !r.matchKey(c.Key) {
		return
	}
	if r.ValuePattern == nil {
		e.add(r, types.ContextChanged, c.Key, "")
		return
	}
	toHit := r.matchValue(c.To, true)
	if toHit {
		e.add(r, types.ContextChanged, c.Key, types.NoteNewValue)
	}
	if r.matchValue(c.From, true) && !toHit {
		e.add(r, types.ContextChanged, c.Key, types.NoteOldValue)
	}
}

// add appends a finding unless its fingerprint was already seen or the cap
// is reached. The fingerprint covers (ruleID, context, key, note) so a
// re-run of the same rule set produces the same set.
func (e *evaluator) add(r Rule, context, key, note string) {
	fp := fingerprint(r.ID, context, key, note)
	if _, dup := e.seen[fp]; dup {
		return
	}
	e.seen[fp] = struct{}{}
	if len(e.findings) >= MaxFindings {
		e.truncated = true
		return
	}
	e.findings = append(e.findings, types.Finding{
		Key:      key,
		Severity: r.Severity,
		RuleID:   r.ID,
		Message:  r.Message.Render(key),
		Context:  context,
		Note:     note,
	})
}

func fingerprint(ruleID, context, key, note string) uint64 {
	h := xxhash.New()
	for _, part := range []string{ruleID, context, key, note} {
		_, _ = h.WriteString(part)
		_, _ = h.Write([]byte{0x1f})
	}
	return h.Sum64()
}

// Sort orders findings by severity (high first), then key, rule ID and note.
func Sort(findings []types.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Note < b.Note
	})
}

// DuplicateFindings projects a side's duplicate-key diagnostics into
// low-severity findings so the finding list also surfaces parse problems.
// The side name and line numbers are embedded in the message, which the
// line resolver picks up.
func DuplicateFindings(side string, pc types.ParsedConfig) []types.Finding {
	var out []types.Finding
	for _, d := range pc.Duplicates {
		msg := fmt.Sprintf("key declared %d times on the %s side", d.Occurrences, side)
		if len(d.Lines) > 0 {
			parts := make([]string, len(d.Lines))
			for i, ln := range d.Lines {
				parts[i] = fmt.Sprintf("line %d", ln)
			}
			msg += " (" + strings.Join(parts, ", ") + ")"
		}
		out = append(out, types.Finding{
			Key:      d.Key,
			Severity: types.SevLow,
			RuleID:   "duplicate-key",
			Message:  msg,
			Context:  side,
		})
	}
	return out
}
