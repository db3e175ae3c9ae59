// Package flatten reduces nested JSON and YAML documents to flat maps of
// dot/bracket paths (a.b, a[0].b) to string values. Object keys are visited
// in sorted order so structurally identical documents flatten to identical
// key sequences regardless of source ordering.
package flatten

import (
	"errors"
	"strconv"
	"strings"
)

// ArrayMode selects how sequences are expanded.
type ArrayMode string

const (
	// ArrayIndex emits one path per element: arr[0], arr[1], ...
	ArrayIndex ArrayMode = "index"
	// ArrayStringify stores the whole array JSON-serialized at its path.
	ArrayStringify ArrayMode = "stringify"
	// ArrayIgnore emits nothing for arrays.
	ArrayIgnore ArrayMode = "ignore"
)

// DefaultMaxKeys bounds the number of emitted keys on pathological input.
const DefaultMaxKeys = 200000

// ErrTooLarge is reported when a document would emit more than MaxKeys
// flattened keys. It is terminal: silently truncating could hide
// security-relevant entries.
var ErrTooLarge = errors.New("document expands to too many keys")

// Options control JSON/YAML flattening.
type Options struct {
	ArrayMode ArrayMode
	MaxKeys   int
	Strict    bool // YAML only: duplicate mapping keys become a hard error
}

func (o Options) normalized() Options {
	if o.ArrayMode == "" {
		o.ArrayMode = ArrayIndex
	}
	if o.MaxKeys <= 0 {
		o.MaxKeys = DefaultMaxKeys
	}
	return o
}

// Issue codes recorded by the flatteners.
const (
	CodeTooLarge     = "TOO_LARGE"
	CodeDuplicateKey = "DUPLICATE_KEY"
)

func issueCode(err error) string {
	if errors.Is(err, ErrTooLarge) {
		return CodeTooLarge
	}
	var de *dupKeyError
	if errors.As(err, &de) {
		return CodeDuplicateKey
	}
	return ""
}

// joinKey appends an object key to a path with a dot separator.
func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// joinIndex appends an array index to a path in bracket form.
func joinIndex(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
