package envparse

import (
	"testing"

	"github.com/envdelta/envdelta/internal/types"
)

func TestParseBasic(t *testing.T) {
	pc := Parse("A=1\n\n# comment\nB=hello world\n", Options{})
	if !pc.OK {
		t.Fatalf("expected ok")
	}
	if pc.Values["A"] != "1" || pc.Values["B"] != "hello world" {
		t.Fatalf("unexpected values: %#v", pc.Values)
	}
	if len(pc.Issues) != 0 {
		t.Fatalf("unexpected issues: %#v", pc.Issues)
	}
	if pc.Meta.LineCount != 5 {
		t.Fatalf("line count = %d", pc.Meta.LineCount)
	}
}

func TestParseDuplicateLastWins(t *testing.T) {
	pc := Parse("A=1\nA=2\n", Options{})
	if pc.Values["A"] != "2" {
		t.Fatalf("expected last write to win, got %q", pc.Values["A"])
	}
	if len(pc.Duplicates) != 1 {
		t.Fatalf("expected one duplicate record, got %#v", pc.Duplicates)
	}
	d := pc.Duplicates[0]
	if d.Key != "A" || d.Occurrences != 2 {
		t.Fatalf("unexpected duplicate: %#v", d)
	}
	if len(d.Lines) != 2 || d.Lines[0] != 1 || d.Lines[1] != 2 {
		t.Fatalf("unexpected duplicate lines: %#v", d.Lines)
	}
}

func TestParseExportProfiles(t *testing.T) {
	pc := Parse("export A=1\n", Options{Profile: ProfileDotenv})
	if pc.Values["A"] != "1" {
		t.Fatalf("dotenv should accept export, got %#v", pc.Values)
	}

	pc = Parse("export A=1\nB=2\n", Options{Profile: ProfileCompose})
	if _, ok := pc.Values["A"]; ok {
		t.Fatalf("compose must reject export lines")
	}
	if pc.Values["B"] != "2" {
		t.Fatalf("one bad line must not abort parsing")
	}
	if len(pc.Issues) != 1 || pc.Issues[0].Code != CodeExportNotAllowed {
		t.Fatalf("expected EXPORT_NOT_ALLOWED warning, got %#v", pc.Issues)
	}
}

func TestParseMalformedLines(t *testing.T) {
	pc := Parse("NOEQUALS\n=value\nGOOD=yes\n", Options{})
	if pc.Values["GOOD"] != "yes" {
		t.Fatalf("good line must still parse")
	}
	if len(pc.Issues) != 2 {
		t.Fatalf("expected two issues, got %#v", pc.Issues)
	}
	if pc.Issues[0].Code != CodeMissingEquals || pc.Issues[0].Kind != types.IssueWarning {
		t.Fatalf("unexpected first issue: %#v", pc.Issues[0])
	}
	if pc.Issues[1].Code != CodeEmptyKey || pc.Issues[1].Kind != types.IssueError {
		t.Fatalf("unexpected second issue: %#v", pc.Issues[1])
	}
}

func TestParseSplitsOnFirstEquals(t *testing.T) {
	pc := Parse("DSN=key=value=more\n", Options{})
	if pc.Values["DSN"] != "key=value=more" {
		t.Fatalf("got %q", pc.Values["DSN"])
	}
}

func TestInlineComments(t *testing.T) {
	opts := Options{InlineComments: true}
	pc := Parse("A=value # trailing\nB=\"quoted # not comment\"\nC=no#comment\nD=v ; semi\n", opts)
	if pc.Values["A"] != "value" {
		t.Fatalf("A = %q", pc.Values["A"])
	}
	if pc.Values["B"] != "quoted # not comment" {
		t.Fatalf("B = %q", pc.Values["B"])
	}
	if pc.Values["C"] != "no#comment" {
		t.Fatalf("hash without preceding whitespace is not a comment, got %q", pc.Values["C"])
	}
	if pc.Values["D"] != "v" {
		t.Fatalf("D = %q", pc.Values["D"])
	}
}

func TestQuoteHandling(t *testing.T) {
	pc := Parse(`A="line1\nline2"`+"\n"+`B='literal\n'`+"\n"+`C="tab\there"`+"\n", Options{})
	if pc.Values["A"] != "line1\nline2" {
		t.Fatalf("double quotes must unescape, got %q", pc.Values["A"])
	}
	if pc.Values["B"] != `literal\n` {
		t.Fatalf("single quotes are literal, got %q", pc.Values["B"])
	}
	if pc.Values["C"] != "tab\there" {
		t.Fatalf("C = %q", pc.Values["C"])
	}
}

func TestMultilineValue(t *testing.T) {
	text := "KEY=\"first\nsecond\nthird\"\nAFTER=1\n"
	pc := Parse(text, Options{Multiline: true})
	if pc.Values["KEY"] != "first\nsecond\nthird" {
		t.Fatalf("KEY = %q", pc.Values["KEY"])
	}
	if pc.Values["AFTER"] != "1" {
		t.Fatalf("parsing must continue after a multiline value")
	}
}

func TestUnterminatedQuote(t *testing.T) {
	pc := Parse("KEY=\"never closed\nmore\n", Options{Multiline: true})
	if _, ok := pc.Values["KEY"]; ok {
		t.Fatalf("unterminated entry must be dropped")
	}
	if len(pc.Issues) != 1 || pc.Issues[0].Code != CodeUnterminatedQuote {
		t.Fatalf("expected UNTERMINATED_QUOTE, got %#v", pc.Issues)
	}
	if pc.Issues[0].Line != 1 {
		t.Fatalf("issue should point at the opening line, got %d", pc.Issues[0].Line)
	}
}

func TestExpansion(t *testing.T) {
	opts := Options{Expand: true, ExpandEnv: map[string]string{"EXT": "ext"}}
	pc := Parse("HOST=db\nURL=http://$HOST:5432\nBR=${HOST}x\nOUT=$EXT\nMISS=$NOPE\n", opts)
	if pc.Values["URL"] != "http://db:5432" {
		t.Fatalf("URL = %q", pc.Values["URL"])
	}
	if pc.Values["BR"] != "dbx" {
		t.Fatalf("BR = %q", pc.Values["BR"])
	}
	if pc.Values["OUT"] != "ext" {
		t.Fatalf("external dictionary not consulted, got %q", pc.Values["OUT"])
	}
	if pc.Values["MISS"] != "$NOPE" {
		t.Fatalf("unresolved reference must stay untouched, got %q", pc.Values["MISS"])
	}
}

func TestExpansionSkipsSingleQuotes(t *testing.T) {
	pc := Parse("HOST=db\nRAW='$HOST'\n", Options{Expand: true})
	if pc.Values["RAW"] != "$HOST" {
		t.Fatalf("single-quoted values are literal, got %q", pc.Values["RAW"])
	}
}
