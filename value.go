package altcfg

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Convertible lists the element types accepted by ListOf.
type Convertible interface {
	bool | string |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | *Node
}

// ListOf returns a list node built from a homogeneous slice. Booleans and
// numbers are stored in their textual form, as with Bool and Number.
func ListOf[T Convertible](items []T) *Node {
	n := &Node{kind: KindList, list: make([]*Node, 0, len(items))}
	for _, item := range items {
		var v *Node
		switch x := any(item).(type) {
		case bool:
			v = Bool(x)
		case string:
			v = Scalar(x)
		case int:
			v = Number(float64(x))
		case int8:
			v = Number(float64(x))
		case int16:
			v = Number(float64(x))
		case int32:
			v = Number(float64(x))
		case int64:
			v = Number(float64(x))
		case uint:
			v = Number(float64(x))
		case uint8:
			v = Number(float64(x))
		case uint16:
			v = Number(float64(x))
		case uint32:
			v = Number(float64(x))
		case uint64:
			v = Number(float64(x))
		case float32:
			v = Number(float64(x))
		case float64:
			v = Number(x)
		case *Node:
			v = own(x)
		}
		n.list = append(n.list, v)
	}
	return n
}

var nodeType = reflect.TypeFor[Node]()

// ValueOf builds a tree from a Go value. Booleans, numbers and strings become
// scalars, slices and arrays become lists and maps with string keys become
// mappings. Nil values become none nodes. *Node and Node values are copied.
// Any other type is an error.
func ValueOf(v any) (*Node, error) {
	return valueOf(reflect.ValueOf(v))
}

func valueOf(v reflect.Value) (*Node, error) {
	// Follow pointers and interfaces to find the concrete value.
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return None(), nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return None(), nil
	}

	if v.Type() == nodeType {
		n := v.Interface().(Node)
		return own(&n), nil
	}

	switch v.Kind() {
	case reflect.Bool:
		return Bool(v.Bool()), nil
	case reflect.String:
		return Scalar(v.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(v.Float()), nil
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return None(), nil
		}
		list := &Node{kind: KindList, list: make([]*Node, 0, v.Len())}
		for i := 0; i < v.Len(); i++ {
			elem, err := valueOf(v.Index(i))
			if err != nil {
				return nil, err
			}
			list.list = append(list.list, elem)
		}
		return list, nil
	case reflect.Map:
		if v.IsNil() {
			return None(), nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("altcfg: map key type must be a string, got %s", v.Type().Key())
		}
		dict := &Node{kind: KindDict, dict: make(map[string]*Node, v.Len())}
		it := v.MapRange()
		for it.Next() {
			elem, err := valueOf(it.Value())
			if err != nil {
				return nil, err
			}
			dict.dict[it.Key().String()] = elem
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("altcfg: unsupported type %s", v.Type())
	}
}

// ToAny converts n into plain Go values: nil for none, string for scalars,
// []any for lists and map[string]any for mappings. Mapping entries holding
// none are left out, as in the canonical text.
func (n *Node) ToAny() any {
	switch n.Kind() {
	case KindScalar:
		return n.scalar
	case KindList:
		out := make([]any, len(n.list))
		for i, v := range n.list {
			out[i] = v.ToAny()
		}
		return out
	case KindDict:
		out := make(map[string]any, len(n.dict))
		for k, v := range n.dict {
			if !v.IsNone() {
				out[k] = v.ToAny()
			}
		}
		return out
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToAny())
}

// MarshalYAML implements yaml.Marshaler of gopkg.in/yaml.v3.
func (n *Node) MarshalYAML() (any, error) {
	return n.ToAny(), nil
}
