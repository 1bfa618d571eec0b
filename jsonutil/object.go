package jsonutil

// NewObject returns an empty object.
func NewObject() *Object { return new(Object) }

// With sets key to value, returning the receiver.
func (x *Object) With(key string, value Value) *Object {
	if i, ok := x.index[key]; ok {
		x.members[i].value = value
		return x
	}
	if x.index == nil {
		x.index = make(map[string]int)
	}
	x.index[key] = len(x.members)
	x.members = append(x.members, member{key: key, value: value})
	return x
}

func (x *Object) WithString(key, value string) *Object { return x.With(key, String(value)) }

func (x *Object) WithInt64(key string, value int64) *Object { return x.With(key, Int64(value)) }

func (x *Object) WithDouble(key string, value float64) *Object { return x.With(key, Double(value)) }

func (x *Object) WithBool(key string, value bool) *Object { return x.With(key, Bool(value)) }

func (x *Object) WithNull(key string) *Object { return x.With(key, Null()) }

func (x *Object) WithObject(key string, value *Object) *Object {
	return x.With(key, ObjectValue(value))
}

func (x *Object) WithArray(key string, values ...Value) *Object {
	return x.With(key, Array(values...))
}

// Get returns the value for key, and whether it exists.
func (x *Object) Get(key string) (Value, bool) {
	if x == nil {
		return Value{}, false
	}
	i, ok := x.index[key]
	if !ok {
		return Value{}, false
	}
	return x.members[i].value, true
}

// KeyExists reports whether key is present, even if its value is null.
func (x *Object) KeyExists(key string) bool {
	_, ok := x.Get(key)
	return ok
}

// ValueExists reports whether key is present, with a non-null value.
func (x *Object) ValueExists(key string) bool {
	v, ok := x.Get(key)
	return ok && !v.IsNull()
}

func (x *Object) GetString(key string) string {
	v, _ := x.Get(key)
	return v.AsString()
}

func (x *Object) GetInt64(key string) int64 {
	v, _ := x.Get(key)
	return v.AsInt64()
}

func (x *Object) GetDouble(key string) float64 {
	v, _ := x.Get(key)
	return v.AsDouble()
}

func (x *Object) GetBool(key string) bool {
	v, _ := x.Get(key)
	return v.AsBool()
}

func (x *Object) GetObject(key string) *Object {
	v, _ := x.Get(key)
	return v.AsObject()
}

func (x *Object) GetArray(key string) []Value {
	v, _ := x.Get(key)
	return v.AsArray()
}

// Keys returns the keys, in order.
func (x *Object) Keys() []string {
	if x == nil {
		return nil
	}
	keys := make([]string, len(x.members))
	for i, m := range x.members {
		keys[i] = m.key
	}
	return keys
}

func (x *Object) Len() int {
	if x == nil {
		return 0
	}
	return len(x.members)
}
