// Package envparse parses dotenv-style KEY=VALUE files into a flat string
// map with parse diagnostics. One malformed line never aborts parsing; the
// rest of the file still produces values.
package envparse

import (
	"strings"

	"github.com/envdelta/envdelta/internal/types"
)

// Profile selects the accepted line grammar.
type Profile string

const (
	// ProfileDotenv accepts an optional "export " prefix before the key.
	ProfileDotenv Profile = "dotenv"
	// ProfileCompose requires bare KEY=VALUE lines, as docker compose does.
	ProfileCompose Profile = "compose"
)

// Options control parsing behavior.
type Options struct {
	Profile        Profile
	Multiline      bool              // allow quoted values to span lines
	InlineComments bool              // strip unquoted trailing # / ; comments
	Expand         bool              // resolve $VAR / ${VAR} references
	ExpandEnv      map[string]string // extra variables for expansion
}

// Issue codes recorded by the env parser.
const (
	CodeMissingEquals     = "MISSING_EQUALS"
	CodeEmptyKey          = "EMPTY_KEY"
	CodeExportNotAllowed  = "EXPORT_NOT_ALLOWED"
	CodeUnterminatedQuote = "UNTERMINATED_QUOTE"
)

// Parse reduces raw dotenv text to a ParsedConfig. Duplicate keys are
// tracked with their line numbers and the last value wins, matching shell
// export semantics.
func Parse(text string, opts Options) types.ParsedConfig {
	if opts.Profile == "" {
		opts.Profile = ProfileDotenv
	}
	lines := strings.Split(text, "\n")

	values := make(map[string]string)
	dupLines := make(map[string][]int)
	var order []string
	var issues []types.Issue

	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if rest, had := strings.CutPrefix(line, "export "); had {
			if opts.Profile == ProfileCompose {
				issues = append(issues, types.Issue{
					Line: lineNo, Kind: types.IssueWarning, Code: CodeExportNotAllowed,
					Message: "export prefix is not allowed under the compose profile",
				})
				continue
			}
			line = strings.TrimSpace(rest)
		}

		eq := strings.Index(line, "=")
		if eq < 0 {
			issues = append(issues, types.Issue{
				Line: lineNo, Kind: types.IssueWarning, Code: CodeMissingEquals,
				Message: "line has no '=' separator",
			})
			continue
		}
		key := strings.TrimSpace(line[:eq])
		if key == "" {
			issues = append(issues, types.Issue{
				Line: lineNo, Kind: types.IssueError, Code: CodeEmptyKey,
				Message: "assignment has an empty key",
			})
			continue
		}

		rawVal := strings.TrimSpace(line[eq+1:])
		clean, open := stripInlineComment(rawVal, opts.InlineComments)

		if open != 0 && opts.Multiline {
			joined, endIdx, ok := continueQuoted(clean, open, lines, i+1)
			if !ok {
				issues = append(issues, types.Issue{
					Line: lineNo, Kind: types.IssueError, Code: CodeUnterminatedQuote,
					Message: "quoted value for " + key + " is never closed",
				})
				i = len(lines) // nothing after an open quote can resync
				continue
			}
			// The closing line may carry its own trailing comment.
			clean, _ = stripInlineComment(joined, opts.InlineComments)
			i = endIdx
		}

		value := unquote(clean)
		if opts.Expand && !isSingleQuoted(clean) {
			value = expand(value, values, opts.ExpandEnv)
		}

		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		dupLines[key] = append(dupLines[key], lineNo)
		values[key] = value
	}

	var dups []types.Duplicate
	for _, key := range order {
		if occ := dupLines[key]; len(occ) > 1 {
			dups = append(dups, types.Duplicate{Key: key, Occurrences: len(occ), Lines: occ})
		}
	}

	return types.ParsedConfig{
		OK:         true,
		Values:     values,
		Duplicates: dups,
		Issues:     issues,
		Meta:       types.Meta{LineCount: len(lines), Profile: string(opts.Profile)},
	}
}

// stripInlineComment removes an unquoted trailing # or ; comment (it must be
// preceded by whitespace or start the value). It returns the remaining text
// and, when a quote opens without closing, the quote rune. The scan is a
// single pass; ' and " are mutually exclusive and backslash escapes the next
// character inside double quotes.
func stripInlineComment(s string, strip bool) (string, rune) {
	var quote rune
	escaped := false
	for i, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch {
		case quote == '"' && r == '\\':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case strip && (r == '#' || r == ';'):
			if i == 0 {
				return "", 0
			}
			prev := s[i-1]
			if prev == ' ' || prev == '\t' {
				return strings.TrimRight(s[:i], " \t"), 0
			}
		}
	}
	return s, quote
}

// continueQuoted accumulates lines[start:] onto a value whose quote opened
// without closing. It returns the joined value, the index of the closing
// line, and whether the quote was ever closed.
func continueQuoted(head string, quote rune, lines []string, start int) (string, int, bool) {
	var b strings.Builder
	b.WriteString(head)
	for j := start; j < len(lines); j++ {
		b.WriteByte('\n')
		b.WriteString(lines[j])
		if closesQuote(lines[j], quote) {
			return b.String(), j, true
		}
	}
	return "", 0, false
}

func closesQuote(line string, quote rune) bool {
	escaped := false
	for _, r := range line {
		if escaped {
			escaped = false
			continue
		}
		if quote == '"' && r == '\\' {
			escaped = true
			continue
		}
		if r == quote {
			return true
		}
	}
	return false
}

func isSingleQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\''
}

// unquote unwraps a surrounding quote pair. Double-quoted values get the
// usual escapes decoded; single-quoted values are taken literally.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first != last || (first != '\'' && first != '"') {
		return s
	}
	inner := s[1 : len(s)-1]
	if first == '\'' {
		return inner
	}
	var b strings.Builder
	b.Grow(len(inner))
	escaped := false
	for _, r := range inner {
		if !escaped {
			if r == '\\' {
				escaped = true
				continue
			}
			b.WriteRune(r)
			continue
		}
		escaped = false
		switch r {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '"', '\\':
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}
