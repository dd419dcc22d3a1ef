package jsondoc

// Property is an immutable (key, value) pair. The key is resolved to a
// name through the document's key table only when serializing.
type Property struct {
	key   int
	value Value
}

func NewProperty(key int, v Value) Property {
	return Property{key: key, value: v}
}

func BoolProperty(key int, v bool) Property {
	return Property{key: key, value: BoolValue(v)}
}

func IntProperty(key int, v int) Property {
	return Property{key: key, value: IntValue(v)}
}

func FloatProperty(key int, v float32) Property {
	return Property{key: key, value: FloatValue(v)}
}

func StringProperty(key int, s *string) Property {
	return Property{key: key, value: StringValue(s)}
}

func StringArrayProperty(key int, a *[]string) Property {
	return Property{key: key, value: StringArrayValue(a)}
}

func ObjectProperty(key int, d *Document) Property {
	return Property{key: key, value: ObjectValue(d)}
}

// NullProperty returns a property holding JSON null.
func NullProperty(key int) Property {
	return Property{key: key}
}

func (p Property) Key() int { return p.key }

func (p Property) Value() Value { return p.value }
