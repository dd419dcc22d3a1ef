// Package jsondoc builds JSON documents in memory and serializes them to
// text.
//
// A Document is an ordered list of properties keyed by integers. Keys are
// turned into member names only when the document is serialized, through a
// keymap.KeyMap shared by all documents of a producer.
//
// Heap data referenced by a document's values lives in one of three places,
// chosen explicitly at the call site:
//
//   - owned copies (AddString, AddBytes, AddArray, AddObject) are kept in
//     pools private to the document and released by Clear;
//   - shared handles (AddShared) are kept alive by the document for as long
//     as it holds them;
//   - borrowed references (AddStringRef, AddStringArrayRef) are not kept
//     alive at all, the caller must keep them valid while the document is
//     in use.
//
// Documents are not safe for concurrent mutation.
package jsondoc

import (
	"github.com/grafana/jsondoc/pkg/jsondoc/keymap"
)

// Document is an ordered, append-only JSON object.
type Document struct {
	props []Property

	// Ownership pools. Values in props point into these without owning them.
	objects  []*Document // shared handles
	children docCache    // sub-documents created by AddObject
	strings  stringCache
	arrays   arrayCache

	keys keymap.KeyMap

	// Binary carries out-of-band data for consumers of the document. It is
	// neither interpreted nor serialized.
	Binary any
}

// New returns an empty document bound to km. km may be nil, in which case
// keys serialize as their decimal form.
func New(km keymap.KeyMap) *Document {
	return &Document{keys: km}
}

// KeyMap returns the key table the document is bound to.
func (d *Document) KeyMap() keymap.KeyMap { return d.keys }

// Clear removes all properties and releases the pools. The key table
// binding is kept. References previously obtained from the document's
// pools are invalid after Clear.
func (d *Document) Clear() {
	clear(d.props)
	d.props = d.props[:0]

	clear(d.objects)
	d.objects = d.objects[:0]
	d.children.reset()
	d.strings.reset()
	d.arrays.reset()
}

// Properties returns the properties in insertion order. The slice must not
// be modified.
func (d *Document) Properties() []Property { return d.props }

// Len returns the number of properties.
func (d *Document) Len() int { return len(d.props) }

// Get returns a copy of the value of the first property with the given key.
// ok is false if no property has that key.
func (d *Document) Get(key int) (v Value, ok bool) {
	for _, p := range d.props {
		if p.key == key {
			return p.value, true
		}
	}
	return Value{}, false
}

// AddBool appends a bool property.
func (d *Document) AddBool(key int, v bool) {
	d.props = append(d.props, BoolProperty(key, v))
}

// AddInt appends an int property.
func (d *Document) AddInt(key int, v int) {
	d.props = append(d.props, IntProperty(key, v))
}

// AddFloat appends a float32 property.
func (d *Document) AddFloat(key int, v float32) {
	d.props = append(d.props, FloatProperty(key, v))
}

// AddNull appends a property holding JSON null.
func (d *Document) AddNull(key int) {
	d.props = append(d.props, NullProperty(key))
}

// AddValue appends v as is. Only the reference is copied, the data v points
// at keeps whatever owner it had.
func (d *Document) AddValue(key int, v Value) {
	d.props = append(d.props, NewProperty(key, v))
}

// AddString appends a copy of s owned by the document.
func (d *Document) AddString(key int, s string) {
	d.props = append(d.props, StringProperty(key, d.strings.copyString(s)))
}

// AddBytes appends a string property holding a copy of b. b may be reused
// by the caller as soon as AddBytes returns.
func (d *Document) AddBytes(key int, b []byte) {
	d.props = append(d.props, StringProperty(key, d.strings.copyBytes(b)))
}

// AddStringRef appends a property pointing at *s. The document reads *s
// when serialized and does not keep it alive. A nil s is written as null.
func (d *Document) AddStringRef(key int, s *string) {
	d.props = append(d.props, StringProperty(key, s))
}

// AddStringArrayRef appends a property pointing at *a. The document reads
// *a when serialized and does not keep it alive. A nil a is written as null.
func (d *Document) AddStringArrayRef(key int, a *[]string) {
	d.props = append(d.props, StringArrayProperty(key, a))
}

// AddArray appends an array property holding a copy of vs owned by the
// document. Composite elements of vs are copied by reference.
func (d *Document) AddArray(key int, vs []Value) {
	d.props = append(d.props, NewProperty(key, ArrayValue(d.arrays.copyArray(vs))))
}

// AddShared appends a property pointing at o and keeps o alive for as long
// as the document holds it. o may be shared with other documents. A nil o
// is written as null.
func (d *Document) AddShared(key int, o *Document) {
	d.objects = append(d.objects, o)
	d.props = append(d.props, ObjectProperty(key, o))
}

// AddObject appends a property holding a new empty sub-document and returns
// it for filling. The sub-document is owned by d, bound to the same key
// table, and is recycled by the next Clear.
func (d *Document) AddObject(key int) *Document {
	o := d.children.getDocument(d.keys)
	d.props = append(d.props, ObjectProperty(key, o))
	return o
}

// MarshalTo appends the JSON text of d to dst and returns the result.
func (d *Document) MarshalTo(dst []byte) []byte {
	return defaultEncoder.Append(dst, d)
}

// String returns the JSON text of d.
func (d *Document) String() string {
	return string(d.MarshalTo(nil))
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.MarshalTo(nil), nil
}
