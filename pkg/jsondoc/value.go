package jsondoc

import (
	"math"
)

// Kind is the discriminator of a Value.
type Kind uint8

const (
	// KindEmpty is JSON null. It is the kind of the zero Value.
	KindEmpty Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindObject
	KindArrayString
	KindArray
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArrayString:
		return "array_string"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a view on a single JSON value.
//
// Primitives are stored inline. Strings, objects and arrays are stored as
// pointers to data owned elsewhere: by a Document pool or by the caller.
// A Value never allocates or frees the data it points to.
//
// Accessors do not check the kind. Calling an accessor for a kind other
// than the active one returns an unspecified result or panics; use Kind or
// the Is* predicates first.
type Value struct {
	kind Kind
	// bits holds the bool, int or float32 payload.
	bits uint64
	// ref holds a *string, *Document, *[]string or *[]Value.
	ref any
}

// BoolValue returns a bool Value.
func BoolValue(v bool) Value {
	var x Value
	x.SetBool(v)
	return x
}

// IntValue returns an int Value.
func IntValue(v int) Value {
	var x Value
	x.SetInt(v)
	return x
}

// FloatValue returns a float32 Value.
func FloatValue(v float32) Value {
	var x Value
	x.SetFloat(v)
	return x
}

// StringValue returns a Value pointing at s. The Value does not keep a copy.
func StringValue(s *string) Value {
	var x Value
	x.SetString(s)
	return x
}

// ObjectValue returns a Value pointing at the document d.
func ObjectValue(d *Document) Value {
	var x Value
	x.SetObject(d)
	return x
}

// StringArrayValue returns a Value pointing at the string slice *a.
func StringArrayValue(a *[]string) Value {
	var x Value
	x.SetStringArray(a)
	return x
}

// ArrayValue returns a Value pointing at the value slice *a.
func ArrayValue(a *[]Value) Value {
	var x Value
	x.SetArray(a)
	return x
}

// NullValue returns the null Value, same as the zero Value.
func NullValue() Value {
	return Value{}
}

// SetBool makes v a bool holding b.
func (v *Value) SetBool(b bool) {
	v.bits = 0
	if b {
		v.bits = 1
	}
	v.ref = nil
	v.kind = KindBool
}

// SetInt makes v an int holding i.
func (v *Value) SetInt(i int) {
	v.bits = uint64(i)
	v.ref = nil
	v.kind = KindInt
}

// SetFloat makes v a float32 holding f.
func (v *Value) SetFloat(f float32) {
	v.bits = uint64(math.Float32bits(f))
	v.ref = nil
	v.kind = KindFloat
}

// SetString makes v point at the string *s.
func (v *Value) SetString(s *string) {
	v.bits = 0
	v.ref = s
	v.kind = KindString
}

// SetObject makes v point at the document d.
func (v *Value) SetObject(d *Document) {
	v.bits = 0
	v.ref = d
	v.kind = KindObject
}

// SetStringArray makes v point at the string slice *a.
func (v *Value) SetStringArray(a *[]string) {
	v.bits = 0
	v.ref = a
	v.kind = KindArrayString
}

// SetArray makes v point at the value slice *a.
func (v *Value) SetArray(a *[]Value) {
	v.bits = 0
	v.ref = a
	v.kind = KindArray
}

// SetNull makes v null.
func (v *Value) SetNull() {
	*v = Value{}
}

// Kind returns the active kind.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsObject() bool      { return v.kind == KindObject }
func (v Value) IsArray() bool       { return v.kind == KindArray }
func (v Value) IsArrayString() bool { return v.kind == KindArrayString }
func (v Value) IsString() bool      { return v.kind == KindString }
func (v Value) IsNull() bool        { return v.kind == KindEmpty }

func (v Value) Bool() bool { return v.bits != 0 }

func (v Value) Int() int { return int(v.bits) }

func (v Value) Float() float32 { return math.Float32frombits(uint32(v.bits)) }

// Str returns the string v points at. It panics if v holds a nil handle.
func (v Value) Str() string { return *v.ref.(*string) }

// Object returns the nested document v points at.
func (v Value) Object() *Document { return v.ref.(*Document) }

// StringArray returns the string slice v points at.
func (v Value) StringArray() []string { return *v.ref.(*[]string) }

// Array returns the value slice v points at.
func (v Value) Array() []Value { return *v.ref.(*[]Value) }

// MarshalTo appends the JSON text of v to dst and returns the result.
// Nested documents are rendered with their own key tables.
func (v Value) MarshalTo(dst []byte) []byte {
	return defaultEncoder.AppendValue(dst, v)
}

// String returns the JSON text of v.
func (v Value) String() string {
	return string(v.MarshalTo(nil))
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.MarshalTo(nil), nil
}
