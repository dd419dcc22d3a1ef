package jsondoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grafana/jsondoc/pkg/jsondoc/keymap"
)

var testKeys = keymap.KeyMap{
	1: {"ok"},
	2: {"n"},
	3: {"s"},
	4: {"obj", "object"},
	5: {"arr"},
	7: {"lat", "latitude"},
}

func TestDocument_GetReturnsAddedValue(t *testing.T) {
	s := "borrowed"
	names := []string{"a", "b"}
	child := New(testKeys)
	child.AddInt(2, 1)

	d := New(testKeys)
	d.AddBool(1, true)
	d.AddInt(2, -42)
	d.AddFloat(3, 1.25)
	d.AddString(4, "owned")
	d.AddStringRef(5, &s)
	d.AddStringArrayRef(6, &names)
	d.AddShared(7, child)
	d.AddArray(8, []Value{IntValue(1), BoolValue(false)})
	d.AddNull(9)
	d.AddValue(10, IntValue(3))

	for _, tc := range []struct {
		key   int
		kind  Kind
		check func(t *testing.T, v Value)
	}{
		{1, KindBool, func(t *testing.T, v Value) { require.True(t, v.Bool()) }},
		{2, KindInt, func(t *testing.T, v Value) { require.Equal(t, -42, v.Int()) }},
		{3, KindFloat, func(t *testing.T, v Value) { require.Equal(t, float32(1.25), v.Float()) }},
		{4, KindString, func(t *testing.T, v Value) { require.Equal(t, "owned", v.Str()) }},
		{5, KindString, func(t *testing.T, v Value) { require.Equal(t, "borrowed", v.Str()) }},
		{6, KindArrayString, func(t *testing.T, v Value) { require.Equal(t, []string{"a", "b"}, v.StringArray()) }},
		{7, KindObject, func(t *testing.T, v Value) { require.Same(t, child, v.Object()) }},
		{8, KindArray, func(t *testing.T, v Value) {
			require.Equal(t, []Value{IntValue(1), BoolValue(false)}, v.Array())
		}},
		{9, KindEmpty, func(t *testing.T, v Value) { require.True(t, v.IsNull()) }},
		{10, KindInt, func(t *testing.T, v Value) { require.Equal(t, 3, v.Int()) }},
	} {
		t.Run(tc.kind.String(), func(t *testing.T) {
			v, ok := d.Get(tc.key)
			require.True(t, ok)
			require.Equal(t, tc.kind, v.Kind())
			tc.check(t, v)
		})
	}
}

func TestDocument_OrderAndFirstMatch(t *testing.T) {
	d := New(nil)
	d.AddInt(3, 1)
	d.AddInt(1, 2)
	d.AddInt(3, 3)
	d.AddInt(2, 4)

	var keys []int
	for _, p := range d.Properties() {
		keys = append(keys, p.Key())
	}
	require.Equal(t, []int{3, 1, 3, 2}, keys)
	require.Equal(t, 4, d.Len())

	v, ok := d.Get(3)
	require.True(t, ok)
	require.Equal(t, 1, v.Int())

	_, ok = d.Get(99)
	require.False(t, ok)
}

func TestDocument_GetReturnsCopy(t *testing.T) {
	d := New(testKeys)
	d.AddInt(2, 1)

	v, ok := d.Get(2)
	require.True(t, ok)
	v.SetString(nil)
	d.AddString(3, "x")

	got, _ := d.Get(2)
	require.Equal(t, KindInt, got.Kind())
	require.Equal(t, `{"n":1,"s":"x"}`, d.String())
}

func TestDocument_OwnedCopySurvivesCallerBuffer(t *testing.T) {
	buf := []byte("hello")
	d := New(testKeys)
	d.AddBytes(3, buf)
	copy(buf, "XXXXX")

	require.Equal(t, `{"s":"hello"}`, d.String())
}

func TestDocument_OwnedStringsDoNotOverlap(t *testing.T) {
	d := New(nil)
	for i := 0; i < 100; i++ {
		d.AddString(i, string(rune('a'+i%26)))
	}
	for i := 0; i < 100; i++ {
		v, ok := d.Get(i)
		require.True(t, ok)
		require.Equal(t, string(rune('a'+i%26)), v.Str())
	}
}

func TestDocument_BorrowedReferencesAreReadAtSerialization(t *testing.T) {
	s := "before"
	names := []string{"a"}
	d := New(testKeys)
	d.AddStringRef(3, &s)
	d.AddStringArrayRef(5, &names)

	s = "after"
	names = append(names, "b")

	require.Equal(t, `{"s":"after","arr":["a","b"]}`, d.String())
}

func TestDocument_SharedHandleOutlivesHolder(t *testing.T) {
	shared := New(testKeys)
	shared.AddInt(2, 7)
	shared.AddString(3, "x")

	a := New(testKeys)
	b := New(testKeys)
	a.AddShared(4, shared)
	b.AddShared(4, shared)

	want := a.String()
	a.Clear()
	a = nil

	require.Equal(t, want, b.String())
	require.Equal(t, `{"obj":{"n":7,"s":"x"}}`, b.String())
}

func TestDocument_NilHandlesAreNull(t *testing.T) {
	d := New(testKeys)
	d.AddShared(4, nil)
	d.AddStringRef(3, nil)
	d.AddStringArrayRef(5, nil)
	d.AddValue(7, ArrayValue(nil))

	require.Equal(t, `{"obj":null,"s":null,"arr":null,"lat":null}`, d.String())
}

func TestDocument_AddObject(t *testing.T) {
	d := New(testKeys)
	o := d.AddObject(4)
	o.AddBool(1, false)
	o.AddObject(4).AddInt(2, 1)

	require.Equal(t, testKeys, o.KeyMap())
	require.Equal(t, `{"obj":{"ok":false,"obj":{"n":1}}}`, d.String())
}

func TestDocument_ClearResetsAndRecycles(t *testing.T) {
	d := New(testKeys)
	d.Binary = []byte{1, 2, 3}
	first := d.AddObject(4)
	first.AddInt(2, 1)
	d.AddString(3, "a string")
	d.AddArray(5, []Value{IntValue(1)})
	d.AddShared(4, New(testKeys))

	d.Clear()
	require.Equal(t, 0, d.Len())
	_, ok := d.Get(4)
	require.False(t, ok)
	require.Equal(t, "{}", d.String())
	require.Empty(t, d.objects)
	require.NotNil(t, d.KeyMap())

	second := d.AddObject(4)
	require.Same(t, first, second)
	require.Equal(t, 0, second.Len())

	d.AddString(3, "b")
	d.AddArray(5, []Value{BoolValue(true), NullValue()})
	require.Equal(t, `{"obj":{},"s":"b","arr":[true,null]}`, d.String())
}

func TestDocument_AddArrayCopiesSlice(t *testing.T) {
	vs := []Value{IntValue(1), IntValue(2)}
	d := New(testKeys)
	d.AddArray(5, vs)
	vs[0] = IntValue(100)

	assert.Equal(t, `{"arr":[1,2]}`, d.String())
}

func TestProperty_Constructors(t *testing.T) {
	s := "x"
	a := []string{"y"}
	d := New(nil)

	for _, tc := range []struct {
		p    Property
		want Value
	}{
		{BoolProperty(1, true), BoolValue(true)},
		{IntProperty(1, 5), IntValue(5)},
		{FloatProperty(1, 0.5), FloatValue(0.5)},
		{StringProperty(1, &s), StringValue(&s)},
		{StringArrayProperty(1, &a), StringArrayValue(&a)},
		{ObjectProperty(1, d), ObjectValue(d)},
		{NullProperty(1), NullValue()},
	} {
		require.Equal(t, 1, tc.p.Key())
		require.Equal(t, tc.want, tc.p.Value())
	}
}
