package report

import (
	"encoding/json"
	"io"
)

// WriteJSON pretty-prints any result for humans or pipelines.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
