package jsonutil

import (
	"errors"
	"strconv"

	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-utilpkg/jsonenc"
)

const (
	minBufferSize = 64
	// maxNumberSize bounds a number, including the quoted NaN and Inf forms.
	maxNumberSize = 32
)

// buffer grows only via the memory hooks, reserving enough capacity
// before every append.
type buffer struct {
	block []byte
	b     []byte
}

// WriteCompact encodes the object without whitespace.
func (x *Object) WriteCompact() (string, error) {
	var buf buffer
	defer buf.free()
	if err := buf.appendObject(x); err != nil {
		return ``, errors.Join(errcode.Raise(errcode.OOM), err)
	}
	return string(buf.b), nil
}

func (x *buffer) reserve(n int) error {
	if cap(x.b)-len(x.b) >= n {
		return nil
	}
	size := max(2*cap(x.b), len(x.b)+n, minBufferSize)
	block, err := malloc(size)
	if err != nil {
		return err
	}
	b := append(block[:0:size], x.b...)
	x.free()
	x.block, x.b = block, b
	return nil
}

func (x *buffer) free() {
	if x.block != nil {
		free(x.block)
		x.block, x.b = nil, nil
	}
}

func (x *buffer) appendRaw(s string) error {
	if err := x.reserve(len(s)); err != nil {
		return err
	}
	x.b = append(x.b, s...)
	return nil
}

func (x *buffer) appendString(s string) error {
	// worst case every byte is escaped as \u00XX
	if err := x.reserve(6*len(s) + 2); err != nil {
		return err
	}
	x.b = jsonenc.AppendString(x.b, s)
	return nil
}

func (x *buffer) appendObject(o *Object) error {
	if err := x.appendRaw(`{`); err != nil {
		return err
	}
	if o != nil {
		for i, m := range o.members {
			if i != 0 {
				if err := x.appendRaw(`,`); err != nil {
					return err
				}
			}
			if err := x.appendString(m.key); err != nil {
				return err
			}
			if err := x.appendRaw(`:`); err != nil {
				return err
			}
			if err := x.appendValue(m.value); err != nil {
				return err
			}
		}
	}
	return x.appendRaw(`}`)
}

func (x *buffer) appendValue(v Value) error {
	switch v.kind {
	case KindBool:
		return x.appendRaw(strconv.FormatBool(v.boolean))

	case KindNumber:
		if err := x.reserve(maxNumberSize); err != nil {
			return err
		}
		if v.isInt {
			x.b = strconv.AppendInt(x.b, v.integer, 10)
		} else {
			x.b = jsonenc.AppendFloat64(x.b, v.number)
		}
		return nil

	case KindString:
		return x.appendString(v.str)

	case KindArray:
		if err := x.appendRaw(`[`); err != nil {
			return err
		}
		for i, elem := range v.array {
			if i != 0 {
				if err := x.appendRaw(`,`); err != nil {
					return err
				}
			}
			if err := x.appendValue(elem); err != nil {
				return err
			}
		}
		return x.appendRaw(`]`)

	case KindObject:
		return x.appendObject(v.object)

	default:
		return x.appendRaw(`null`)
	}
}
