package types

// Severity is a coarse-grained risk level for a finding or issue.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Rank maps a severity onto an integer so findings can be sorted
// high-to-low. Unknown severities sort last.
func (s Severity) Rank() int {
	switch s {
	case SevHigh:
		return 3
	case SevMed:
		return 2
	case SevLow:
		return 1
	}
	return 0
}

// IssueKind distinguishes hard parse errors from recoverable warnings.
type IssueKind string

const (
	IssueError   IssueKind = "error"
	IssueWarning IssueKind = "warning"
)

// Issue is a single non-fatal parse problem attached to one side of a
// comparison. Line is 1-based, 0 when unknown.
type Issue struct {
	Line    int       `json:"line,omitempty"`
	Kind    IssueKind `json:"kind"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
}

// Duplicate records a key that appeared more than once in the source.
// Lines are best-effort and may be empty for formats without position info.
type Duplicate struct {
	Key         string `json:"key"`
	Occurrences int    `json:"occurrences"`
	Lines       []int  `json:"lines,omitempty"`
}

// Meta carries per-side bookkeeping about the parsed document.
type Meta struct {
	LineCount int    `json:"lineCount"`
	Profile   string `json:"profile,omitempty"` // env only: dotenv or compose
}

// ParsedConfig is the result of parsing one side of a comparison.
// Values maps flattened keys to string values; last occurrence wins on
// duplicates. A hard parse failure yields OK=false, empty Values and a
// single error issue. ParsedConfig is never mutated after creation.
type ParsedConfig struct {
	OK         bool              `json:"ok"`
	Values     map[string]string `json:"values"`
	Duplicates []Duplicate       `json:"duplicates,omitempty"`
	Issues     []Issue           `json:"issues,omitempty"`
	Meta       Meta              `json:"meta"`
}

// AddedEntry is a key present only on the right side.
type AddedEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RemovedEntry is a key present only on the left side.
type RemovedEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ChangedEntry is a key present on both sides with differing values.
type ChangedEntry struct {
	Key  string `json:"key"`
	From string `json:"from"`
	To   string `json:"to"`
}

// UnchangedEntry is a key present on both sides with equal values.
type UnchangedEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DiffResult partitions the union of left/right keys into four disjoint
// lists, each sorted lexicographically by key. Every key appears in
// exactly one list.
type DiffResult struct {
	Added     []AddedEntry     `json:"added"`
	Removed   []RemovedEntry   `json:"removed"`
	Changed   []ChangedEntry   `json:"changed"`
	Unchanged []UnchangedEntry `json:"unchanged"`
}

// Context names the diff bucket a finding was raised from.
const (
	ContextAdded   = "added"
	ContextRemoved = "removed"
	ContextChanged = "changed"
)

// Notes attached to findings on changed entries, distinguishing a risk
// introduced by the new value from a risky removal of the old one.
const (
	NoteNewValue = "matches new value"
	NoteOldValue = "matches old value"
)

// Finding is a single risk-rule match attached to a key. Findings are
// derived, never persisted; they are recomputed on every comparison.
type Finding struct {
	Key      string   `json:"key"`
	Severity Severity `json:"severity"`
	RuleID   string   `json:"ruleId"`
	Message  string   `json:"message"`
	Context  string   `json:"context"`        // added, removed or changed
	Note     string   `json:"note,omitempty"` // set for changed entries only
}
