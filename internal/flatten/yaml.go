package flatten

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/envdelta/envdelta/internal/types"
)

// YAML parses and flattens a YAML document. Unlike a plain yaml.Unmarshal,
// it walks the node tree so duplicate mapping keys (which a loader silently
// overwrites) are detected before merge keys are resolved. In strict mode a
// duplicate is a hard error; otherwise it is recorded and the last value
// wins. Merge keys (<<) are resolved while flattening, with explicit keys
// taking precedence over merged ones.
func YAML(text string, opts Options) types.ParsedConfig {
	opts = opts.normalized()
	meta := types.Meta{LineCount: countLines(text)}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return types.ParsedConfig{
			Values: map[string]string{},
			Issues: []types.Issue{{Kind: types.IssueError, Message: "invalid YAML: " + err.Error()}},
			Meta:   meta,
		}
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return types.ParsedConfig{OK: true, Values: map[string]string{}, Meta: meta}
		}
		doc = doc.Content[0]
	}
	if doc.Kind == 0 {
		// Empty input decodes to a zero node.
		return types.ParsedConfig{OK: true, Values: map[string]string{}, Meta: meta}
	}

	if doc.Kind == yaml.ScalarNode {
		return types.ParsedConfig{
			OK:     true,
			Values: map[string]string{},
			Issues: []types.Issue{{Line: doc.Line, Kind: types.IssueWarning, Message: "root is not a mapping or sequence"}},
			Meta:   meta,
		}
	}

	w := &yamlWalker{opts: opts, values: make(map[string]string)}
	if err := w.walk("", doc); err != nil {
		return types.ParsedConfig{
			Values: map[string]string{},
			Issues: []types.Issue{{Line: errLine(err), Kind: types.IssueError, Code: issueCode(err), Message: err.Error()}},
			Meta:   meta,
		}
	}
	sort.Slice(w.dups, func(i, j int) bool { return w.dups[i].Key < w.dups[j].Key })
	return types.ParsedConfig{OK: true, Values: w.values, Duplicates: w.dups, Issues: w.issues, Meta: meta}
}

type yamlWalker struct {
	opts   Options
	values map[string]string
	dups   []types.Duplicate
	issues []types.Issue
}

type dupKeyError struct {
	key  string
	line int
}

func (e *dupKeyError) Error() string {
	return fmt.Sprintf("duplicate mapping key %q (line %d)", e.key, e.line)
}

func errLine(err error) int {
	if de, ok := err.(*dupKeyError); ok {
		return de.line
	}
	return 0
}

func (w *yamlWalker) emit(key, val string) error {
	if len(w.values) >= w.opts.MaxKeys {
		return ErrTooLarge
	}
	w.values[key] = val
	return nil
}

func (w *yamlWalker) walk(prefix string, n *yaml.Node) error {
	n = deref(n)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		return w.walkMapping(prefix, n)
	case yaml.SequenceNode:
		return w.walkSequence(prefix, n)
	case yaml.ScalarNode:
		return w.emit(prefix, scalarNodeString(n))
	}
	return nil
}

func (w *yamlWalker) walkSequence(prefix string, n *yaml.Node) error {
	switch w.opts.ArrayMode {
	case ArrayIgnore:
		return nil
	case ArrayStringify:
		return w.emit(prefix, stringifyNode(n))
	default:
		for i, c := range n.Content {
			if err := w.walk(joinIndex(prefix, i), c); err != nil {
				return err
			}
		}
		return nil
	}
}

// walkMapping records duplicates among the mapping's explicit keys, then
// builds the effective key set: explicit pairs (last one wins), topped up by
// merge sources, where an earlier merge entry beats a later one and both
// lose to explicit keys.
func (w *yamlWalker) walkMapping(prefix string, n *yaml.Node) error {
	effective := make(map[string]*yaml.Node)
	seenLines := make(map[string][]int)
	var mergeSources []*yaml.Node

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if isMergeKey(k) {
			mergeSources = append(mergeSources, v)
			continue
		}
		key := k.Value
		seenLines[key] = append(seenLines[key], k.Line)
		if len(seenLines[key]) == 2 {
			if w.opts.Strict {
				return &dupKeyError{key: joinKey(prefix, key), line: k.Line}
			}
			w.issues = append(w.issues, types.Issue{
				Line: k.Line, Kind: types.IssueWarning, Code: CodeDuplicateKey,
				Message: fmt.Sprintf("duplicate mapping key %q, last value wins", joinKey(prefix, key)),
			})
		}
		effective[key] = v
	}

	for key, lines := range seenLines {
		if len(lines) > 1 {
			w.dups = append(w.dups, types.Duplicate{Key: joinKey(prefix, key), Occurrences: len(lines), Lines: lines})
		}
	}

	for _, src := range mergeSources {
		w.applyMerge(effective, src)
	}

	keys := make([]string, 0, len(effective))
	for k := range effective {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.walk(joinKey(prefix, k), effective[k]); err != nil {
			return err
		}
	}
	return nil
}

// applyMerge copies entries from a merge source (a mapping, an alias to one,
// or a sequence of either) into the effective set without overwriting keys
// already present.
func (w *yamlWalker) applyMerge(effective map[string]*yaml.Node, src *yaml.Node) {
	src = deref(src)
	if src == nil {
		return
	}
	switch src.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(src.Content); i += 2 {
			k, v := src.Content[i], src.Content[i+1]
			if isMergeKey(k) {
				w.applyMerge(effective, v)
				continue
			}
			if _, ok := effective[k.Value]; !ok {
				effective[k.Value] = v
			}
		}
	case yaml.SequenceNode:
		for _, c := range src.Content {
			w.applyMerge(effective, c)
		}
	}
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isMergeKey(k *yaml.Node) bool {
	return k.Tag == "!!merge" || k.Value == "<<"
}

func scalarNodeString(n *yaml.Node) string {
	if n.Tag == "!!null" {
		return "null"
	}
	return n.Value
}

// stringifyNode serializes a subtree as compact JSON so stringified arrays
// compare byte-for-byte with their JSON counterparts. Documents that do not
// fit JSON (non-string keys) fall back to single-line YAML.
func stringifyNode(n *yaml.Node) string {
	var v any
	if err := n.Decode(&v); err != nil {
		return ""
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
