package envdelta

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/envdelta/envdelta/internal/config"
	"github.com/envdelta/envdelta/internal/pipeline"
	"github.com/envdelta/envdelta/internal/rules"
	"github.com/envdelta/envdelta/internal/types"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestPickPrecedence(t *testing.T) {
	assert.Equal(t, "cli", pickString("cli", strp("local"), strp("global")))
	assert.Equal(t, "local", pickString("", strp("local"), strp("global")))
	assert.Equal(t, "global", pickString("", nil, strp("global")))
	assert.Equal(t, "", pickString("", nil, nil))

	one, two := 1, 2
	assert.Equal(t, 9, pickInt(9, &one, &two))
	assert.Equal(t, 1, pickInt(0, &one, &two))
	assert.Equal(t, 2, pickInt(0, nil, &two))

	assert.True(t, pickBool(true, boolp(false), nil))
	assert.True(t, pickBool(false, boolp(true), boolp(false)))
	assert.False(t, pickBool(false, boolp(false), boolp(true)))
	assert.True(t, pickBool(false, nil, boolp(true)))
}

func TestDetectFormat(t *testing.T) {
	cases := map[string]pipeline.Format{
		"app.json":       pipeline.FormatJSON,
		"config.YAML":    pipeline.FormatYAML,
		"config.yml":     pipeline.FormatYAML,
		".env":           pipeline.FormatEnv,
		"staging.env":    pipeline.FormatEnv,
		"noextension":    pipeline.FormatEnv,
		"dir.json/x.env": pipeline.FormatEnv,
	}
	for path, want := range cases {
		assert.Equal(t, want, detectFormat(path), "path=%s", path)
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b ,"))
	assert.Equal(t, []string{"metadata.*"}, splitList("metadata.*"))
}

func TestShouldFail(t *testing.T) {
	findings := []types.Finding{
		{Severity: types.SevLow},
		{Severity: types.SevMed},
	}
	assert.False(t, shouldFail(findings, ""), "default threshold is high")
	assert.False(t, shouldFail(findings, "high"))
	assert.True(t, shouldFail(findings, "medium"))
	assert.True(t, shouldFail(findings, "low"))
	assert.False(t, shouldFail(findings, "none"))
	assert.False(t, shouldFail(findings, "bogus"))
	assert.False(t, shouldFail(nil, "low"))

	high := []types.Finding{{Severity: types.SevHigh}}
	assert.True(t, shouldFail(high, ""))
}

func TestCheckRulesVersion(t *testing.T) {
	rs := rules.DefaultRules()

	assert.NoError(t, checkRulesVersion(rs, config.FileConfig{}, config.FileConfig{}))
	assert.NoError(t, checkRulesVersion(rs, config.FileConfig{MinRulesVersion: strp("1.0.0")}, config.FileConfig{}))
	assert.NoError(t, checkRulesVersion(rs, config.FileConfig{MinRulesVersion: strp(rs.Version.String())}, config.FileConfig{}))
	assert.Error(t, checkRulesVersion(rs, config.FileConfig{MinRulesVersion: strp("99.0.0")}, config.FileConfig{}))
	assert.Error(t, checkRulesVersion(rs, config.FileConfig{MinRulesVersion: strp("not-a-version")}, config.FileConfig{}))
}
