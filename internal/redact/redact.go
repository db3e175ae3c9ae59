// Package redact produces display-safe masked representations of raw
// config values. It is a pure projection: it has no side effects and is
// invoked lazily, only for values about to be rendered.
package redact

import (
	"net/url"
	"regexp"
	"strings"
)

// Options tune the generic masking strategy.
type Options struct {
	PrefixLen     int  // revealed leading characters (default 2)
	SuffixLen     int  // revealed trailing characters (default 4)
	MinMaskLength int  // below this the value is fully masked (default 8)
	MaskChar      rune // default '*'
}

func (o Options) normalized() Options {
	if o.PrefixLen <= 0 {
		o.PrefixLen = 2
	}
	if o.SuffixLen <= 0 {
		o.SuffixLen = 4
	}
	if o.MinMaskLength <= 0 {
		o.MinMaskLength = 8
	}
	if o.MaskChar == 0 {
		o.MaskChar = '*'
	}
	return o
}

// Redacted carries a masked value and the original length. It has no
// identity beyond the call that produced it.
type Redacted struct {
	OriginalLength int    `json:"originalLength"`
	Redacted       string `json:"redacted"`
}

// fixedMask hides both content and length of short values.
const fixedMaskWidth = 8

var schemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// Value masks a raw value. URL-looking values keep their scheme and host
// visible (useful for recognizing environments) while credentials, path
// detail and query are hidden; everything else gets a prefix/suffix reveal
// with a fully masked middle.
func Value(raw string, opts Options) Redacted {
	opts = opts.normalized()
	if looksLikeURL(raw) {
		return Redacted{OriginalLength: len(raw), Redacted: maskURL(raw, opts)}
	}
	return Redacted{OriginalLength: len(raw), Redacted: maskGeneric(raw, opts)}
}

func looksLikeURL(s string) bool {
	return schemeRe.MatchString(s) || strings.Contains(s, "://")
}

func maskURL(raw string, opts Options) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		// Unparsable: keep the literal scheme prefix, hide the rest.
		if i := strings.Index(raw, "://"); i >= 0 {
			return raw[:i+3] + strings.Repeat(string(opts.MaskChar), fixedMaskWidth)
		}
		return maskGeneric(raw, opts)
	}
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	if u.User != nil {
		b.WriteString(strings.Repeat(string(opts.MaskChar), 4))
		b.WriteByte('@')
	}
	b.WriteString(u.Host)
	if u.Path != "" && u.Path != "/" {
		b.WriteString("/…")
	}
	if u.RawQuery != "" {
		b.WriteString("?…")
	}
	return b.String()
}

func maskGeneric(raw string, opts Options) string {
	runes := []rune(raw)
	n := len(runes)
	if n < opts.MinMaskLength || n <= opts.PrefixLen+opts.SuffixLen {
		return strings.Repeat(string(opts.MaskChar), fixedMaskWidth)
	}
	var b strings.Builder
	b.WriteString(string(runes[:opts.PrefixLen]))
	b.WriteString(strings.Repeat(string(opts.MaskChar), n-opts.PrefixLen-opts.SuffixLen))
	b.WriteString(string(runes[n-opts.SuffixLen:]))
	return b.String()
}
