package jsondoc

import (
	"io"
	"math"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

var (
	jsonAPI = jsoniter.Config{
		EscapeHTML: false,
	}.Froze()

	defaultEncoder = NewEncoder(Config{})
)

// Encoder renders documents as compact JSON text.
//
// Member names come from the key table of the document being rendered,
// nested documents included, using the variant set in Config. Floats are
// written in the shortest form that reads back to the same float32, in
// exponent form below 1e-6 and from 1e21 up. NaN and infinities have no
// JSON representation and are written as null. Invalid UTF-8 in strings is
// replaced with U+FFFD. Nil string, array and document handles are written
// as null.
//
// An Encoder holds no state between calls and may be used concurrently.
// Rendering a document that contains itself does not terminate.
type Encoder struct {
	variant     int
	omitUnnamed bool
}

// NewEncoder returns an Encoder configured by cfg.
func NewEncoder(cfg Config) *Encoder {
	return &Encoder{
		variant:     cfg.Variant,
		omitUnnamed: cfg.OmitUnnamed,
	}
}

// Append appends the JSON text of d to dst and returns the result.
func (e *Encoder) Append(dst []byte, d *Document) []byte {
	s := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(s)
	e.writeDocument(s, d)
	return append(dst, s.Buffer()...)
}

// AppendValue appends the JSON text of v to dst and returns the result.
func (e *Encoder) AppendValue(dst []byte, v Value) []byte {
	s := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(s)
	e.writeValue(s, v)
	return append(dst, s.Buffer()...)
}

// Encode writes the JSON text of d to w.
func (e *Encoder) Encode(w io.Writer, d *Document) error {
	s := jsonAPI.BorrowStream(w)
	defer jsonAPI.ReturnStream(s)
	e.writeDocument(s, d)
	return s.Flush()
}

func (e *Encoder) writeDocument(s *jsoniter.Stream, d *Document) {
	if d == nil {
		s.WriteNil()
		return
	}
	s.WriteObjectStart()
	first := true
	for _, p := range d.props {
		name, exact := d.keys.Resolve(p.key, e.variant)
		if !exact && e.omitUnnamed {
			continue
		}
		if !first {
			s.WriteMore()
		}
		first = false
		s.WriteObjectField(name)
		e.writeValue(s, p.value)
	}
	s.WriteObjectEnd()
}

func (e *Encoder) writeValue(s *jsoniter.Stream, v Value) {
	switch v.kind {
	case KindBool:
		s.WriteBool(v.Bool())
	case KindInt:
		s.WriteInt(v.Int())
	case KindFloat:
		f := v.Float()
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			s.WriteNil()
			return
		}
		s.WriteFloat32(f)
	case KindString:
		str, _ := v.ref.(*string)
		if str == nil {
			s.WriteNil()
			return
		}
		writeString(s, *str)
	case KindObject:
		e.writeDocument(s, v.Object())
	case KindArrayString:
		a, _ := v.ref.(*[]string)
		if a == nil {
			s.WriteNil()
			return
		}
		s.WriteArrayStart()
		for i, str := range *a {
			if i > 0 {
				s.WriteMore()
			}
			writeString(s, str)
		}
		s.WriteArrayEnd()
	case KindArray:
		a, _ := v.ref.(*[]Value)
		if a == nil {
			s.WriteNil()
			return
		}
		s.WriteArrayStart()
		for i, elem := range *a {
			if i > 0 {
				s.WriteMore()
			}
			e.writeValue(s, elem)
		}
		s.WriteArrayEnd()
	default:
		s.WriteNil()
	}
}

func writeString(s *jsoniter.Stream, str string) {
	if !utf8.ValidString(str) {
		str = strings.ToValidUTF8(str, "\ufffd")
	}
	s.WriteString(str)
}
