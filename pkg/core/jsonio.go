package core

import (
	"encoding/json"
	"io"
)

// MarshalCompare pretty-prints a comparison result as JSON.
func MarshalCompare(w io.Writer, res *CompareResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// UnmarshalCompare decodes a comparison result, useful for ingestion tests.
func UnmarshalCompare(r io.Reader) (*CompareResult, error) {
	var res CompareResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
