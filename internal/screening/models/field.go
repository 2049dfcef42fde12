package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// noSentinel is the literal the upstream provider emits for "field not
// present". It must be checked explicitly; it is not a falsy value.
const noSentinel = "No"

// Field is an optional string with an explicit unknown variant. The upstream
// payloads use null and the literal "No" interchangeably for absent fields;
// both normalize to Known=false here so the ambiguity stops at the model
// boundary. A known empty string stays distinct from unknown.
type Field struct {
	Value string
	Known bool
}

// KnownField constructs a present field.
func KnownField(value string) Field {
	return Field{Value: value, Known: true}
}

// Or returns the value when known, otherwise the fallback.
func (f Field) Or(fallback string) string {
	if f.Known {
		return f.Value
	}
	return fallback
}

// UnmarshalJSON normalizes null and the "No" sentinel to unknown.
func (f *Field) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = Field{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == noSentinel {
		*f = Field{}
		return nil
	}
	*f = Field{Value: s, Known: true}
	return nil
}

// MarshalJSON emits null for unknown fields.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Known {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Count is an optional non-negative counter with an explicit unknown variant,
// distinct from known zero. Upstream civil-record counts arrive as numbers,
// numeric strings, null, or the "No" sentinel.
type Count struct {
	Value int
	Known bool
}

// KnownCount constructs a present counter.
func KnownCount(value int) Count {
	return Count{Value: value, Known: true}
}

// UnmarshalJSON accepts numbers, numeric strings, null, and the "No" sentinel.
func (c *Count) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*c = Count{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == noSentinel || s == "" {
			*c = Count{}
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*c = Count{Value: n, Known: true}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Count{Value: n, Known: true}
	return nil
}

// MarshalJSON emits null for unknown counters.
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Known {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}
