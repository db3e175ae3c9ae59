// Package diff classifies the union of two flat key sets into added,
// removed, changed and unchanged entries with a deterministic order.
package diff

import (
	"sort"

	"github.com/envdelta/envdelta/internal/types"
)

// Entries diffs two flat mappings. The union of both key sets is sorted
// with a locale-independent ordinal compare and each key lands in exactly
// one of the four buckets. Comparison is exact string equality; no
// normalization happens here.
func Entries(left, right map[string]string) types.DiffResult {
	keys := make([]string, 0, len(left)+len(right))
	seen := make(map[string]struct{}, len(left)+len(right))
	for k := range left {
		keys = append(keys, k)
		seen[k] = struct{}{}
	}
	for k := range right {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var res types.DiffResult
	for _, k := range keys {
		lv, inLeft := left[k]
		rv, inRight := right[k]
		switch {
		case !inLeft:
			res.Added = append(res.Added, types.AddedEntry{Key: k, Value: rv})
		case !inRight:
			res.Removed = append(res.Removed, types.RemovedEntry{Key: k, Value: lv})
		case lv != rv:
			res.Changed = append(res.Changed, types.ChangedEntry{Key: k, From: lv, To: rv})
		default:
			res.Unchanged = append(res.Unchanged, types.UnchangedEntry{Key: k, Value: lv})
		}
	}
	return res
}
