package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLNested(t *testing.T) {
	pc := YAML("db:\n  host: localhost\n  port: 5432\nname: svc\n", Options{})
	require.True(t, pc.OK)
	assert.Equal(t, map[string]string{
		"db.host": "localhost",
		"db.port": "5432",
		"name":    "svc",
	}, pc.Values)
}

func TestYAMLDuplicateKeys(t *testing.T) {
	doc := "db:\n  host: a\n  host: b\n"
	pc := YAML(doc, Options{})
	require.True(t, pc.OK)
	assert.Equal(t, "b", pc.Values["db.host"], "last value wins")
	require.Len(t, pc.Duplicates, 1)
	d := pc.Duplicates[0]
	assert.Equal(t, "db.host", d.Key)
	assert.Equal(t, 2, d.Occurrences)
	assert.Equal(t, []int{2, 3}, d.Lines)
	require.Len(t, pc.Issues, 1)
	assert.Equal(t, CodeDuplicateKey, pc.Issues[0].Code)
}

func TestYAMLDuplicateKeysStrict(t *testing.T) {
	pc := YAML("a: 1\na: 2\n", Options{Strict: true})
	assert.False(t, pc.OK)
	require.Len(t, pc.Issues, 1)
	assert.Equal(t, CodeDuplicateKey, pc.Issues[0].Code)
	assert.Equal(t, 2, pc.Issues[0].Line)
	assert.Empty(t, pc.Values)
}

func TestYAMLMergeKeys(t *testing.T) {
	doc := `base: &base
  timeout: 30
  retries: 3
svc:
  <<: *base
  timeout: 60
`
	pc := YAML(doc, Options{})
	require.True(t, pc.OK)
	assert.Equal(t, "60", pc.Values["svc.timeout"], "explicit key beats merged")
	assert.Equal(t, "3", pc.Values["svc.retries"])
}

func TestYAMLMergeSequencePrecedence(t *testing.T) {
	doc := `a: &a
  x: from-a
b: &b
  x: from-b
  y: from-b
svc:
  <<: [*a, *b]
`
	pc := YAML(doc, Options{})
	require.True(t, pc.OK)
	assert.Equal(t, "from-a", pc.Values["svc.x"], "earlier merge entry wins")
	assert.Equal(t, "from-b", pc.Values["svc.y"])
}

func TestYAMLAlias(t *testing.T) {
	pc := YAML("host: &h db.internal\nmirror: *h\n", Options{})
	require.True(t, pc.OK)
	assert.Equal(t, "db.internal", pc.Values["mirror"])
}

func TestYAMLArrayModes(t *testing.T) {
	doc := "tags:\n  - a\n  - b\n"

	pc := YAML(doc, Options{ArrayMode: ArrayIndex})
	require.True(t, pc.OK)
	assert.Equal(t, "a", pc.Values["tags[0]"])

	pc = YAML(doc, Options{ArrayMode: ArrayStringify})
	require.True(t, pc.OK)
	assert.Equal(t, `["a","b"]`, pc.Values["tags"])

	pc = YAML(doc, Options{ArrayMode: ArrayIgnore})
	require.True(t, pc.OK)
	assert.Empty(t, pc.Values)
}

func TestYAMLNullAndEmpty(t *testing.T) {
	pc := YAML("a: null\nb:\n", Options{})
	require.True(t, pc.OK)
	assert.Equal(t, "null", pc.Values["a"])
	assert.Equal(t, "null", pc.Values["b"])

	pc = YAML("", Options{})
	assert.True(t, pc.OK)
	assert.Empty(t, pc.Values)
}

func TestYAMLMalformed(t *testing.T) {
	pc := YAML("a: [unclosed\n", Options{})
	assert.False(t, pc.OK)
	require.Len(t, pc.Issues, 1)
	assert.Equal(t, "error", string(pc.Issues[0].Kind))
}

func TestYAMLTooLarge(t *testing.T) {
	pc := YAML("a: 1\nb: 2\nc: 3\n", Options{MaxKeys: 2})
	assert.False(t, pc.OK)
	require.Len(t, pc.Issues, 1)
	assert.Equal(t, CodeTooLarge, pc.Issues[0].Code)
}
