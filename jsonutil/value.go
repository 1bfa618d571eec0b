package jsonutil

import (
	"fmt"
)

// Kind identifies the JSON type of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

type (
	// Value is an immutable JSON value. The zero value is null.
	Value struct {
		object  *Object
		str     string
		array   []Value
		number  float64
		integer int64
		kind    Kind
		boolean bool
		isInt   bool
	}

	// Object is a JSON object which preserves the insertion order of its
	// keys. Setting an existing key replaces the value in place. The zero
	// value is an empty object, ready to use.
	Object struct {
		index   map[string]int
		members []member
	}

	member struct {
		key   string
		value Value
	}
)

func Null() Value { return Value{} }

func Bool(v bool) Value { return Value{kind: KindBool, boolean: v} }

func String(v string) Value { return Value{kind: KindString, str: v} }

func Int64(v int64) Value {
	return Value{kind: KindNumber, integer: v, number: float64(v), isInt: true}
}

func Double(v float64) Value { return Value{kind: KindNumber, number: v} }

// Array returns an array Value. The slice is retained.
func Array(values ...Value) Value {
	if values == nil {
		values = []Value{}
	}
	return Value{kind: KindArray, array: values}
}

// ObjectValue wraps an object. A nil object is treated as empty.
func ObjectValue(v *Object) Value {
	if v == nil {
		v = NewObject()
	}
	return Value{kind: KindObject, object: v}
}

func (x Value) Kind() Kind { return x.kind }

func (x Value) IsNull() bool { return x.kind == KindNull }

func (x Value) AsBool() bool { return x.kind == KindBool && x.boolean }

func (x Value) AsString() string {
	if x.kind != KindString {
		return ``
	}
	return x.str
}

// AsInt64 returns the number, truncated if it was not an integer.
func (x Value) AsInt64() int64 {
	switch {
	case x.kind != KindNumber:
		return 0
	case x.isInt:
		return x.integer
	default:
		return int64(x.number)
	}
}

func (x Value) AsDouble() float64 {
	if x.kind != KindNumber {
		return 0
	}
	return x.number
}

// AsArray returns the elements, or nil if the value isn't an array.
func (x Value) AsArray() []Value {
	if x.kind != KindArray {
		return nil
	}
	return x.array
}

// AsObject returns the object, or nil if the value isn't an object.
func (x Value) AsObject() *Object {
	if x.kind != KindObject {
		return nil
	}
	return x.object
}

func (x Kind) String() string {
	switch x {
	case KindNull:
		return `null`
	case KindBool:
		return `bool`
	case KindNumber:
		return `number`
	case KindString:
		return `string`
	case KindArray:
		return `array`
	case KindObject:
		return `object`
	default:
		return fmt.Sprintf(`kind(%d)`, x)
	}
}
