// ABOUTME: Tagged union for preference values (bool, number, text)
// ABOUTME: Serialized to JSON text only at the storage boundary
package models

import (
	"encoding/json"
	"strconv"
)

// ValueKind discriminates the preference value union.
type ValueKind string

const (
	KindBool   ValueKind = "bool"
	KindNumber ValueKind = "number"
	KindText   ValueKind = "text"
)

// Value is a typed preference value. Exactly one of the payload fields is
// meaningful, selected by Kind. Representing values this way instead of raw
// strings avoids silent type confusion when preferences are re-read.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Number float64
	Text   string
}

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NumberValue wraps a float.
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// TextValue wraps a string.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// Encode serializes the value to the JSON scalar stored in the database.
func (v Value) Encode() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	default:
		data, err := json.Marshal(v.Text)
		if err != nil {
			return `""`
		}
		return string(data)
	}
}

// DecodeValue parses a stored JSON scalar back into a typed value. Malformed
// input decodes as text rather than failing; a stored row must never make a
// preference unreadable.
func DecodeValue(raw string) Value {
	var any interface{}
	if err := json.Unmarshal([]byte(raw), &any); err != nil {
		return TextValue(raw)
	}
	switch val := any.(type) {
	case bool:
		return BoolValue(val)
	case float64:
		return NumberValue(val)
	case string:
		return TextValue(val)
	default:
		return TextValue(raw)
	}
}

// String renders the value for display and prompt assembly.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	default:
		return v.Text
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindNumber:
		return v.Number == o.Number
	default:
		return v.Text == o.Text
	}
}
