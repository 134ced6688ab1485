// Package elm models ELM documents as explicitly tagged value trees.
// Translator outputs are arbitrary JSON whose schema is not known to the
// harness, so every node carries a type tag and the comparison logic
// switches on the tag instead of using reflection.
package elm

import (
	"encoding/json"
	"fmt"
)

// Type identifies the dynamic kind of a Value.
type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	switch t {
	case NullType:
		return "Null"
	case BoolType:
		return "Bool"
	case NumberType:
		return "Number"
	case StringType:
		return "String"
	case ArrayType:
		return "Array"
	case ObjectType:
		return "Object"
	}
	return "<unknown type>"
}

// IsLeaf reports whether values of this type have no children.
func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, ObjectType:
		return false
	default:
		return true
	}
}

// Value is one node of an ELM document tree. Exactly one payload field
// is meaningful, selected by Type. Values are treated as immutable once
// built; operations that need a modified tree build a new one.
type Value struct {
	Type   Type
	Bool   bool
	Number json.Number
	String string
	Array  []Value
	Object map[string]Value
}

// Null returns the null value.
func Null() Value {
	return Value{Type: NullType}
}

// FromBool wraps a bool.
func FromBool(b bool) Value {
	return Value{Type: BoolType, Bool: b}
}

// FromNumber wraps a JSON number, preserving its source text.
func FromNumber(n json.Number) Value {
	return Value{Type: NumberType, Number: n}
}

// FromString wraps a string.
func FromString(s string) Value {
	return Value{Type: StringType, String: s}
}

// FromArray wraps a slice of values.
func FromArray(elems []Value) Value {
	return Value{Type: ArrayType, Array: elems}
}

// FromObject wraps a field map.
func FromObject(fields map[string]Value) Value {
	return Value{Type: ObjectType, Object: fields}
}

// EmptyObject returns an object with no fields.
func EmptyObject() Value {
	return Value{Type: ObjectType, Object: map[string]Value{}}
}

// Field returns the value at key, or false if v is not an object or has
// no such key.
func (v Value) Field(key string) (Value, bool) {
	if v.Type != ObjectType {
		return Value{}, false
	}
	f, ok := v.Object[key]
	return f, ok
}

// ScalarEqual reports whether two leaf values of the same type are equal
// by value. Numbers compare numerically, so "1.0" and "1" are equal even
// though their source texts differ.
func ScalarEqual(a, b Value) bool {
	if a.Type != b.Type || !a.Type.IsLeaf() {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		af, aerr := a.Number.Float64()
		bf, berr := b.Number.Float64()
		if aerr == nil && berr == nil {
			return af == bf
		}
		return a.Number.String() == b.Number.String()
	}
	return false
}

// Interface converts the value back to the plain Go shape produced by
// encoding/json (map[string]interface{}, []interface{}, scalars). Used
// to embed document fragments in comparison records.
func (v Value) Interface() interface{} {
	switch v.Type {
	case NullType:
		return nil
	case BoolType:
		return v.Bool
	case NumberType:
		return v.Number
	case StringType:
		return v.String
	case ArrayType:
		out := make([]interface{}, len(v.Array))
		for i, e := range v.Array {
			out[i] = e.Interface()
		}
		return out
	case ObjectType:
		out := make(map[string]interface{}, len(v.Object))
		for k, f := range v.Object {
			out[k] = f.Interface()
		}
		return out
	}
	return nil
}

// MarshalJSON renders the value as the JSON it was decoded from.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Repr returns a compact one-line JSON rendering for use in reports and
// type-mismatch records.
func (v Value) Repr() string {
	data, err := json.Marshal(v.Interface())
	if err != nil {
		return fmt.Sprintf("<unrenderable: %v>", err)
	}
	return string(data)
}

// TypedRepr returns "<Type>: <json>", the form carried by type-mismatch
// records so both sides' kinds are visible in reports.
func (v Value) TypedRepr() string {
	return v.Type.String() + ": " + v.Repr()
}
