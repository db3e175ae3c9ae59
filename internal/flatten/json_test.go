package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONNested(t *testing.T) {
	pc := JSON(`{"db":{"host":"localhost","port":5432},"name":"svc"}`, Options{})
	require.True(t, pc.OK)
	assert.Equal(t, map[string]string{
		"db.host": "localhost",
		"db.port": "5432",
		"name":    "svc",
	}, pc.Values)
}

func TestJSONScalars(t *testing.T) {
	pc := JSON(`{"b":true,"n":null,"big":12345678901234567890,"f":0.100}`, Options{})
	require.True(t, pc.OK)
	assert.Equal(t, "true", pc.Values["b"])
	assert.Equal(t, "null", pc.Values["n"])
	// json.Number keeps the source form, no float rounding.
	assert.Equal(t, "12345678901234567890", pc.Values["big"])
	assert.Equal(t, "0.100", pc.Values["f"])
}

func TestJSONArrayModes(t *testing.T) {
	doc := `{"items":[{"id":1},{"id":2}],"tags":["a","b"]}`

	pc := JSON(doc, Options{ArrayMode: ArrayIndex})
	require.True(t, pc.OK)
	assert.Equal(t, "1", pc.Values["items[0].id"])
	assert.Equal(t, "2", pc.Values["items[1].id"])
	assert.Equal(t, "b", pc.Values["tags[1]"])

	pc = JSON(doc, Options{ArrayMode: ArrayStringify})
	require.True(t, pc.OK)
	assert.Equal(t, `[{"id":1},{"id":2}]`, pc.Values["items"])
	assert.Equal(t, `["a","b"]`, pc.Values["tags"])

	pc = JSON(doc, Options{ArrayMode: ArrayIgnore})
	require.True(t, pc.OK)
	assert.Empty(t, pc.Values)
}

func TestJSONArrayRoot(t *testing.T) {
	pc := JSON(`[{"a":1},"x"]`, Options{})
	require.True(t, pc.OK)
	assert.Equal(t, "1", pc.Values["[0].a"])
	assert.Equal(t, "x", pc.Values["[1]"])
}

func TestJSONMalformed(t *testing.T) {
	pc := JSON(`{"a":`, Options{})
	assert.False(t, pc.OK)
	require.Len(t, pc.Issues, 1)
	assert.Equal(t, "error", string(pc.Issues[0].Kind))
	assert.Empty(t, pc.Values)
}

func TestJSONScalarRoot(t *testing.T) {
	pc := JSON(`"just a string"`, Options{})
	assert.True(t, pc.OK)
	assert.Empty(t, pc.Values)
	require.Len(t, pc.Issues, 1)
	assert.Equal(t, "warning", string(pc.Issues[0].Kind))
}

func TestJSONTooLarge(t *testing.T) {
	pc := JSON(`{"a":1,"b":2,"c":3}`, Options{MaxKeys: 2})
	assert.False(t, pc.OK)
	require.Len(t, pc.Issues, 1)
	assert.Equal(t, CodeTooLarge, pc.Issues[0].Code)
	assert.Empty(t, pc.Values)
}
