package envdelta

import (
	"path/filepath"
	"strings"

	"github.com/envdelta/envdelta/internal/pipeline"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// detectFormat guesses the format from a file extension, falling back to env.
func detectFormat(path string) pipeline.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return pipeline.FormatJSON
	case ".yaml", ".yml":
		return pipeline.FormatYAML
	default:
		return pipeline.FormatEnv
	}
}

// splitList turns a comma-separated flag value into a trimmed slice.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
