package jsonutil

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
	"github.com/joeycumines/go-crt/errcode"
	"github.com/joeycumines/go-crt/logging"
)

// Parse decodes a JSON document, which must be an object. Key order is
// preserved, and, for duplicate keys, the last value wins.
func Parse(data []byte) (*Object, error) {
	object, err := parse(data)
	if err != nil {
		logging.Build(logging.Debug, logging.SubjectJSON).Err(err).Log(`failed to parse json`)
		return nil, errors.Join(errcode.Raise(errcode.InvalidArgument), err)
	}
	return object, nil
}

func parse(data []byte) (*Object, error) {
	if !sonic.ConfigStd.Valid(data) {
		return nil, errors.New(`jsonutil: invalid json`)
	}
	root, err := sonic.Get(data)
	if err != nil {
		return nil, err
	}
	if err := root.LoadAll(); err != nil {
		return nil, err
	}
	if root.TypeSafe() != ast.V_OBJECT {
		return nil, errors.New(`jsonutil: document is not an object`)
	}
	value, err := convert(&root)
	if err != nil {
		return nil, err
	}
	return value.object, nil
}

func convert(node *ast.Node) (Value, error) {
	switch typ := node.TypeSafe(); typ {
	case ast.V_NULL:
		return Null(), nil

	case ast.V_TRUE:
		return Bool(true), nil

	case ast.V_FALSE:
		return Bool(false), nil

	case ast.V_STRING:
		s, err := node.String()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil

	case ast.V_NUMBER:
		n, err := node.Number()
		if err != nil {
			return Value{}, err
		}
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return Int64(i), nil
		}
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return Value{}, err
		}
		return Double(f), nil

	case ast.V_ARRAY:
		n, err := node.Len()
		if err != nil {
			return Value{}, err
		}
		values := make([]Value, n)
		for i := range values {
			if values[i], err = convert(node.Index(i)); err != nil {
				return Value{}, err
			}
		}
		return Array(values...), nil

	case ast.V_OBJECT:
		n, err := node.Len()
		if err != nil {
			return Value{}, err
		}
		object := NewObject()
		for i := 0; i < n; i++ {
			pair := node.IndexPair(i)
			value, err := convert(&pair.Value)
			if err != nil {
				return Value{}, err
			}
			object.With(pair.Key, value)
		}
		return ObjectValue(object), nil

	default:
		if err := node.Check(); err != nil {
			return Value{}, err
		}
		return Value{}, fmt.Errorf(`jsonutil: unexpected node type %d`, typ)
	}
}
