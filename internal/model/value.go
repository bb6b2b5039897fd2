package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind tags the shape of a Value.
type Kind string

const (
	KindNull   Kind = "null"
	KindBool   Kind = "bool"
	KindNumber Kind = "number"
	KindString Kind = "string"
	KindArray  Kind = "array"
	KindObject Kind = "object"
)

// Value holds any JSON-serializable value. The zero Value is null.
type Value struct {
	raw json.RawMessage
}

// String returns a string Value.
func String(s string) Value {
	b, _ := json.Marshal(s)
	return Value{raw: b}
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{raw: json.RawMessage(strconv.FormatFloat(f, 'g', -1, 64))}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	if b {
		return Value{raw: json.RawMessage("true")}
	}
	return Value{raw: json.RawMessage("false")}
}

// ValueOf converts any JSON-marshalable Go value.
func ValueOf(v any) (Value, error) {
	if val, ok := v.(Value); ok {
		return val, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("marshal value: %w", err)
	}
	return Value{raw: b}, nil
}

// ParseValue parses s as JSON, falling back to a plain string when it is not valid JSON.
func ParseValue(s string) Value {
	trimmed := bytes.TrimSpace([]byte(s))
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return Value{raw: append(json.RawMessage(nil), trimmed...)}
	}
	return String(s)
}

// Kind reports the JSON shape of the value.
func (v Value) Kind() Kind {
	b := bytes.TrimSpace(v.raw)
	if len(b) == 0 {
		return KindNull
	}
	switch b[0] {
	case 'n':
		return KindNull
	case 't', 'f':
		return KindBool
	case '"':
		return KindString
	case '[':
		return KindArray
	case '{':
		return KindObject
	default:
		return KindNumber
	}
}

// AsString returns the value as a Go string when it is a JSON string.
func (v Value) AsString() (string, bool) {
	if v.Kind() != KindString {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Decode unmarshals the value into dst.
func (v Value) Decode(dst any) error {
	return json.Unmarshal(v.Raw(), dst)
}

// Raw returns the JSON encoding of the value.
func (v Value) Raw() json.RawMessage {
	if len(v.raw) == 0 {
		return json.RawMessage("null")
	}
	return v.raw
}

// Equal compares two values by their compact JSON encoding.
func (v Value) Equal(o Value) bool {
	var a, b bytes.Buffer
	if err := json.Compact(&a, v.Raw()); err != nil {
		return false
	}
	if err := json.Compact(&b, o.Raw()); err != nil {
		return false
	}
	return bytes.Equal(a.Bytes(), b.Bytes())
}

// String renders strings unquoted and everything else as JSON.
func (v Value) String() string {
	if s, ok := v.AsString(); ok {
		return s
	}
	return string(v.Raw())
}

func (v Value) MarshalJSON() ([]byte, error) {
	return v.Raw(), nil
}

func (v *Value) UnmarshalJSON(b []byte) error {
	if !json.Valid(b) {
		return fmt.Errorf("invalid JSON value")
	}
	v.raw = append(json.RawMessage(nil), b...)
	return nil
}
