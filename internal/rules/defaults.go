package rules

import (
	"regexp"

	semver "github.com/blang/semver/v4"

	"github.com/envdelta/envdelta/internal/types"
)

// defaultRulesVersion identifies the built-in rule set so callers can pin a
// minimum version in their config.
var defaultRulesVersion = semver.MustParse("1.4.0")

var (
	reSecretKey      = regexp.MustCompile(`(?i)(password|passwd|secret|token|api_?key|private_?key|credential|access_?key|auth)`)
	reAWSAccessKey   = regexp.MustCompile(`\b(AKIA|ASIA)[A-Z0-9]{16}\b`)
	reGitHubToken    = regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36}\b`)
	reSkStyleKey     = regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{20,}\b`)
	reJWT            = regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]*`)
	rePrivateKeyPEM  = regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`)
	reURLCredentials = regexp.MustCompile(`://[^/\s:@]+:[^@\s]+@`)
	reDebugKey       = regexp.MustCompile(`(?i)(^|[_.])(debug|trace|verbose)([_.]|$)`)
	reTruthy         = regexp.MustCompile(`(?i)^(1|true|on|yes)$`)
	reCORSKey        = regexp.MustCompile(`(?i)(cors|allow(ed)?[_.]?origins?)`)
	reWildcard       = regexp.MustCompile(`(^|[,\s])\*([,\s]|$)|^\*$`)
	reLoopback       = regexp.MustCompile(`(?i)\b(localhost|127\.0\.0\.1|0\.0\.0\.0|::1)\b`)
	rePlaceholder    = regexp.MustCompile(`(?i)^(changeme|change[-_]me|todo|fixme|xxx+|dummy|sample|your[-_][a-z0-9_-]+|<[^>]+>|\$\{[^}]+\})$`)
	reEndpointKey    = regexp.MustCompile(`(?i)(url|uri|host|dsn|endpoint|key|secret|token)$`)
	reEmpty          = regexp.MustCompile(`^$`)
	rePlainHTTP      = regexp.MustCompile(`(?i)^http://`)
)

// DefaultRules returns the built-in deployment-risk rule set. The slice is
// freshly allocated on every call so callers cannot mutate shared state.
func DefaultRules() RuleSet {
	return RuleSet{
		Version: defaultRulesVersion,
		Rules: []Rule{
			{
				ID:         "secret-key-name",
				Severity:   types.SevHigh,
				KeyPattern: reSecretKey,
				Message:    Message{Template: "{key} looks like a credential stored in plain text"},
			},
			{
				ID:           "aws-access-key",
				Severity:     types.SevHigh,
				ValuePattern: reAWSAccessKey,
				Verify:       looksLikeAWSAccessKey,
				Message:      Message{Text: "value contains an AWS access key ID"},
			},
			{
				ID:           "github-token",
				Severity:     types.SevHigh,
				ValuePattern: reGitHubToken,
				Verify:       looksLikeGitHubToken,
				Message:      Message{Text: "value contains a GitHub token"},
			},
			{
				ID:           "sk-style-key",
				Severity:     types.SevHigh,
				ValuePattern: reSkStyleKey,
				Message:      Message{Text: "value contains an sk- style API key"},
			},
			{
				ID:           "jwt-value",
				Severity:     types.SevMed,
				ValuePattern: reJWT,
				Verify:       isJWTStructure,
				Message:      Message{Text: "value contains a JWT"},
			},
			{
				ID:           "private-key-block",
				Severity:     types.SevHigh,
				ValuePattern: rePrivateKeyPEM,
				Message:      Message{Text: "value contains a PEM private key block"},
			},
			{
				ID:           "url-credentials",
				Severity:     types.SevHigh,
				ValuePattern: reURLCredentials,
				Message:      Message{Text: "URL embeds a username and password"},
			},
			{
				ID:           "debug-flag",
				Severity:     types.SevMed,
				KeyPattern:   reDebugKey,
				ValuePattern: reTruthy,
				Message:      Message{Template: "debug-style flag {key} is enabled"},
			},
			{
				ID:           "cors-wildcard",
				Severity:     types.SevMed,
				KeyPattern:   reCORSKey,
				ValuePattern: reWildcard,
				Message:      Message{Template: "{key} allows any origin"},
			},
			{
				ID:           "loopback-url",
				Severity:     types.SevMed,
				ValuePattern: reLoopback,
				Message:      Message{Template: "{key} points at a loopback address"},
			},
			{
				ID:           "placeholder-value",
				Severity:     types.SevMed,
				ValuePattern: rePlaceholder,
				Message:      Message{Template: "{key} still holds a placeholder value"},
			},
			{
				ID:           "empty-endpoint",
				Severity:     types.SevLow,
				KeyPattern:   reEndpointKey,
				ValuePattern: reEmpty,
				Message:      Message{Template: "{key} is empty"},
			},
			{
				ID:           "plain-http-url",
				Severity:     types.SevLow,
				ValuePattern: rePlainHTTP,
				Message:      Message{Template: "{key} uses http:// instead of https://"},
			},
		},
	}
}
