// Package lineref maps issues and findings back to a source line. It is a
// pure heuristic used only for navigation: it degrades to "no answer"
// rather than guessing, and never affects diff or rule results.
package lineref

import (
	"regexp"
	"strings"
)

// Ref is the subset of an issue or finding the resolver inspects.
type Ref struct {
	Line    int    // already-known line, 0 when absent
	Key     string // key or id-like field
	Message string // free-text message
}

// Format names accepted by Resolve.
const (
	FormatEnv  = "env"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	lineTokenRe = regexp.MustCompile(`(?i)\bline\s+(\d+)(?:\s*-\s*\d+)?|\b[LR](\d+)\b`)
	sideRe      = regexp.MustCompile(`(?i)\b(left|right)\b`)
)

type strategy func(ref Ref, source, format string) (int, bool)

var strategies = []strategy{
	fromAttachedLine,
	fromKeyField,
	fromMessage,
	fromSourceScan,
}

// Resolve runs the ordered strategy chain and returns the first hit.
func Resolve(ref Ref, source, format string) (int, bool) {
	for _, s := range strategies {
		if line, ok := s(ref, source, format); ok {
			return line, true
		}
	}
	return 0, false
}

// PreferredSide reports which side a message names explicitly, so callers
// can resolve against that side's source even when the key matches both.
func PreferredSide(message string) string {
	m := sideRe.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

func fromAttachedLine(ref Ref, _, _ string) (int, bool) {
	if ref.Line > 0 {
		return ref.Line, true
	}
	return 0, false
}

func fromKeyField(ref Ref, _, _ string) (int, bool) {
	return extractLine(ref.Key, false)
}

// fromMessage takes the last line mention: when several appear, the final
// one is usually the real failure location.
func fromMessage(ref Ref, _, _ string) (int, bool) {
	return extractLine(ref.Message, true)
}

func extractLine(text string, last bool) (int, bool) {
	matches := lineTokenRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}
	m := matches[0]
	if last {
		m = matches[len(matches)-1]
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n := 0
	for _, c := range digits {
		n = n*10 + int(c-'0')
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}

// fromSourceScan looks for an assignment of the key in the raw source with
// a format-appropriate pattern. For dotted paths only the leaf segment is
// matched, since nested formats indent the leaf on its own line.
func fromSourceScan(ref Ref, source, format string) (int, bool) {
	if ref.Key == "" || source == "" {
		return 0, false
	}
	re, err := keyAssignmentPattern(ref.Key, format)
	if err != nil || re == nil {
		return 0, false
	}
	for i, line := range strings.Split(source, "\n") {
		if re.MatchString(line) {
			return i + 1, true
		}
	}
	return 0, false
}

func keyAssignmentPattern(key, format string) (*regexp.Regexp, error) {
	switch format {
	case FormatEnv:
		return regexp.Compile(`^\s*(?:export\s+)?` + regexp.QuoteMeta(key) + `\s*=`)
	case FormatYAML:
		return regexp.Compile(`^\s*(?:-\s+)?` + regexp.QuoteMeta(leafSegment(key)) + `\s*:`)
	case FormatJSON:
		return regexp.Compile(`"` + regexp.QuoteMeta(leafSegment(key)) + `"\s*:`)
	}
	return nil, nil
}

// leafSegment returns the final dot segment of a flattened path with any
// trailing [i] index stripped.
func leafSegment(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 {
		key = key[i+1:]
	}
	if i := strings.Index(key, "["); i > 0 {
		key = key[:i]
	}
	return key
}
