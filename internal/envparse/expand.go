package envparse

import "regexp"

var refPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expand resolves $VAR and ${VAR} references against keys parsed so far,
// then against the external dictionary. Unresolved references are left
// untouched so the value round-trips verbatim.
func expand(value string, parsed, extra map[string]string) string {
	return refPattern.ReplaceAllStringFunc(value, func(ref string) string {
		name := refPattern.FindStringSubmatch(ref)
		key := name[1]
		if key == "" {
			key = name[2]
		}
		if v, ok := parsed[key]; ok {
			return v
		}
		if v, ok := extra[key]; ok {
			return v
		}
		return ref
	})
}
