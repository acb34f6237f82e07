package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// NullableInt parses optional numeric fields at the API boundary. It accepts a
// JSON number, a numeric string, an empty string, or null, so operators typing
// into free-form inputs never produce a silent NaN-style failure downstream.
type NullableInt struct {
	Valid bool
	Value *int
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableInt) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if bytes.Equal(trimmed, []byte("null")) {
		n.Valid = true
		n.Value = nil
		return nil
	}

	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			n.Valid = true
			n.Value = nil
			return nil
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		n.Valid = true
		n.Value = &parsed
		return nil
	}

	var parsed int
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}
	n.Valid = true
	n.Value = &parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullableInt) MarshalJSON() ([]byte, error) {
	if !n.Valid || n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Ptr returns the parsed value, or nil when absent or explicitly null.
func (n NullableInt) Ptr() *int {
	if !n.Valid || n.Value == nil {
		return nil
	}
	copy := *n.Value
	return &copy
}
