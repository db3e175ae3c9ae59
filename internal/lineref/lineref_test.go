package lineref

import "testing"

func TestResolveAttachedLineWins(t *testing.T) {
	line, ok := Resolve(Ref{Line: 7, Key: "L3", Message: "line 9"}, "", FormatEnv)
	if !ok || line != 7 {
		t.Fatalf("got %d/%v, want 7", line, ok)
	}
}

func TestResolveFromKeyField(t *testing.T) {
	line, ok := Resolve(Ref{Key: "L12"}, "", FormatEnv)
	if !ok || line != 12 {
		t.Fatalf("got %d/%v, want 12", line, ok)
	}
	line, ok = Resolve(Ref{Key: "R4"}, "", FormatEnv)
	if !ok || line != 4 {
		t.Fatalf("got %d/%v, want 4", line, ok)
	}
}

func TestResolveFromMessage(t *testing.T) {
	cases := []struct {
		msg  string
		want int
	}{
		{"parse error at line 42", 42},
		{"error near line 3 - 7", 3},
		{"see L17 for details", 17},
		{"key declared 2 times on the left side (line 3, line 9)", 9},
	}
	for _, tc := range cases {
		line, ok := Resolve(Ref{Message: tc.msg}, "", FormatEnv)
		if !ok || line != tc.want {
			t.Errorf("Resolve(%q) = %d/%v, want %d", tc.msg, line, ok, tc.want)
		}
	}
}

func TestResolveSourceScanEnv(t *testing.T) {
	src := "# header\nA=1\nexport DB_URL=postgres://x\nB=2\n"
	line, ok := Resolve(Ref{Key: "DB_URL"}, src, FormatEnv)
	if !ok || line != 3 {
		t.Fatalf("got %d/%v, want 3", line, ok)
	}
}

func TestResolveSourceScanYAMLLeaf(t *testing.T) {
	src := "db:\n  host: localhost\n  port: 5432\n"
	line, ok := Resolve(Ref{Key: "db.port"}, src, FormatYAML)
	if !ok || line != 3 {
		t.Fatalf("got %d/%v, want 3", line, ok)
	}
}

func TestResolveSourceScanJSONLeaf(t *testing.T) {
	src := "{\n  \"db\": {\n    \"host\": \"x\"\n  }\n}\n"
	line, ok := Resolve(Ref{Key: "db.host"}, src, FormatJSON)
	if !ok || line != 3 {
		t.Fatalf("got %d/%v, want 3", line, ok)
	}
}

func TestResolveIndexedLeaf(t *testing.T) {
	src := "items:\n  - id: 1\n"
	line, ok := Resolve(Ref{Key: "items[0].id"}, src, FormatYAML)
	if !ok || line != 2 {
		t.Fatalf("got %d/%v, want 2", line, ok)
	}
}

func TestResolveNoAnswer(t *testing.T) {
	if line, ok := Resolve(Ref{Key: "MISSING"}, "A=1\n", FormatEnv); ok {
		t.Fatalf("expected no answer, got %d", line)
	}
	if line, ok := Resolve(Ref{}, "", FormatEnv); ok {
		t.Fatalf("expected no answer for empty ref, got %d", line)
	}
}

func TestResolveNoFalseSubstringMatch(t *testing.T) {
	// "A" must not match the line defining "BA".
	src := "BA=1\nA=2\n"
	line, ok := Resolve(Ref{Key: "A"}, src, FormatEnv)
	if !ok || line != 2 {
		t.Fatalf("got %d/%v, want 2", line, ok)
	}
}

func TestPreferredSide(t *testing.T) {
	cases := []struct {
		msg  string
		want string
	}{
		{"key declared 2 times on the left side", "left"},
		{"only on the RIGHT side", "right"},
		{"no side named here", ""},
	}
	for _, tc := range cases {
		if got := PreferredSide(tc.msg); got != tc.want {
			t.Errorf("PreferredSide(%q) = %q, want %q", tc.msg, got, tc.want)
		}
	}
}

func TestLeafSegment(t *testing.T) {
	cases := map[string]string{
		"a.b.c":        "c",
		"items[0].id":  "id",
		"items[3]":     "items",
		"plain":        "plain",
		"a.b.list[12]": "list",
	}
	for in, want := range cases {
		if got := leafSegment(in); got != want {
			t.Errorf("leafSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
