package flatten

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/envdelta/envdelta/internal/types"
)

// JSON parses and flattens a JSON document. Malformed syntax short-circuits
// to an empty value map and a single error issue; everything else is
// best-effort with warnings.
func JSON(text string, opts Options) types.ParsedConfig {
	opts = opts.normalized()
	meta := types.Meta{LineCount: countLines(text)}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return types.ParsedConfig{
			Values: map[string]string{},
			Issues: []types.Issue{{Kind: types.IssueError, Message: "invalid JSON: " + err.Error()}},
			Meta:   meta,
		}
	}

	switch root.(type) {
	case map[string]any, []any:
	default:
		return types.ParsedConfig{
			OK:     true,
			Values: map[string]string{},
			Issues: []types.Issue{{Kind: types.IssueWarning, Message: "root is not an object or array"}},
			Meta:   meta,
		}
	}

	w := &jsonWalker{opts: opts, values: make(map[string]string)}
	if err := w.walk("", root); err != nil {
		return types.ParsedConfig{
			Values: map[string]string{},
			Issues: []types.Issue{{Kind: types.IssueError, Code: issueCode(err), Message: err.Error()}},
			Meta:   meta,
		}
	}
	return types.ParsedConfig{OK: true, Values: w.values, Meta: meta}
}

type jsonWalker struct {
	opts   Options
	values map[string]string
}

func (w *jsonWalker) emit(key, val string) error {
	if len(w.values) >= w.opts.MaxKeys {
		return ErrTooLarge
	}
	w.values[key] = val
	return nil
}

func (w *jsonWalker) walk(prefix string, v any) error {
	switch node := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := w.walk(joinKey(prefix, k), node[k]); err != nil {
				return err
			}
		}
		return nil
	case []any:
		switch w.opts.ArrayMode {
		case ArrayIgnore:
			return nil
		case ArrayStringify:
			b, err := json.Marshal(node)
			if err != nil {
				return err
			}
			return w.emit(prefix, string(b))
		default:
			for i, elem := range node {
				if err := w.walk(joinIndex(prefix, i), elem); err != nil {
					return err
				}
			}
			return nil
		}
	default:
		return w.emit(prefix, scalarString(v))
	}
}

// scalarString renders a JSON scalar losslessly: numbers keep their source
// form via json.Number, null becomes "null".
func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return "null"
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return s.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
