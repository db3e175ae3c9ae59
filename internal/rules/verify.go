package rules

import (
	"encoding/base64"
	"strings"
)

const base62 = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func isAlphabet(s, allowed string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(allowed, rune(s[i])) {
			return false
		}
	}
	return true
}

func isBase64URLNoPad(s string) bool {
	if s == "" {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(s)
	return err == nil
}

// looksLikeGitHubToken accepts gh[pousr]_ followed by 36 base62 chars.
func looksLikeGitHubToken(s string) bool {
	if len(s) != 40 {
		return false
	}
	switch s[:4] {
	case "ghp_", "gho_", "ghu_", "ghs_", "ghr_":
	default:
		return false
	}
	return isAlphabet(s[4:], base62)
}

// looksLikeAWSAccessKey checks AKIA/ASIA plus 16 uppercase alnum.
func looksLikeAWSAccessKey(s string) bool {
	if len(s) != 20 {
		return false
	}
	if !strings.HasPrefix(s, "AKIA") && !strings.HasPrefix(s, "ASIA") {
		return false
	}
	return isAlphabet(s[4:], "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
}

// isJWTStructure requires three dot segments with base64url-decodable
// header and payload. The signature may be empty.
func isJWTStructure(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	return isBase64URLNoPad(parts[0]) && isBase64URLNoPad(parts[1])
}
