package operation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// fieldTree mirrors the nesting of the request struct for the parameters an
// operation declares. Leaves carry the parameter; inner nodes are nested
// structures that are only attached when something below them was set.
type fieldTree struct {
	name     string
	param    *ParameterSpec
	children []*fieldTree
}

func (n *fieldTree) child(name string) *fieldTree {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	c := &fieldTree{name: name}
	n.children = append(n.children, c)
	return c
}

func compileTree(d *OperationDescriptor) (*fieldTree, error) {
	root := &fieldTree{}
	for i := range d.Params {
		p := d.Params[i]
		node := root
		for _, seg := range p.Path() {
			node = node.child(seg)
		}
		if node.param != nil {
			return nil, configErrorf(d.FullName(), []string{node.param.Name, p.Name},
				"parameters %s and %s map to the same field", node.param.Name, p.Name)
		}
		node.param = &p
	}
	if err := checkLeaves(d, root, nil); err != nil {
		return nil, err
	}
	return root, nil
}

func checkLeaves(d *OperationDescriptor, n *fieldTree, path []string) error {
	if n.param != nil && len(n.children) > 0 {
		return configErrorf(d.FullName(), []string{n.param.Name},
			"parameter %s maps to %s which other parameters nest into", n.param.Name, joinPath(path))
	}
	for _, c := range n.children {
		if err := checkLeaves(d, c, append(path, c.name)); err != nil {
			return err
		}
	}
	return nil
}

// Mapper builds SDK request structs from a RequestContext.
type Mapper struct{}

// Map returns a pointer to a new request struct populated from rc. Null
// values are skipped, so the service sees them as "no change". A nested
// structure is attached only when at least one leaf below it is set.
func (Mapper) Map(d *OperationDescriptor, rc *RequestContext) (any, error) {
	tree := d.tree
	if tree == nil {
		var err error
		if tree, err = compileTree(d); err != nil {
			return nil, err
		}
	}

	st := structType(d.Input)
	if st == nil {
		return nil, configErrorf(d.FullName(), nil, "request type %v is not a struct", d.Input)
	}

	req := reflect.New(st)
	if _, err := fill(req.Elem(), tree, rc.Values); err != nil {
		return nil, &ConfigError{Operation: d.FullName(), Message: "cannot build request", Err: err}
	}
	return req.Interface(), nil
}

func fill(v reflect.Value, node *fieldTree, values map[string]any) (bool, error) {
	set := false
	for _, c := range node.children {
		f := v.FieldByName(c.name)
		if !f.IsValid() {
			return false, fmt.Errorf("%s has no field %s", v.Type().Name(), c.name)
		}

		if c.param != nil {
			val, ok := values[c.param.Name]
			if !ok || isNull(val) {
				continue
			}
			if err := assign(f, val, c.param.Type); err != nil {
				return false, fmt.Errorf("parameter %s: %w", c.param.Name, err)
			}
			set = true
			continue
		}

		switch f.Kind() {
		case reflect.Pointer:
			nested := reflect.New(f.Type().Elem())
			ok, err := fill(nested.Elem(), c, values)
			if err != nil {
				return false, err
			}
			if ok {
				f.Set(nested)
				set = true
			}
		case reflect.Struct:
			scratch := reflect.New(f.Type()).Elem()
			ok, err := fill(scratch, c, values)
			if err != nil {
				return false, err
			}
			if ok {
				f.Set(scratch)
				set = true
			}
		default:
			return false, fmt.Errorf("field %s is not a structure", c.name)
		}
	}
	return set, nil
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func assign(f reflect.Value, val any, typ ParamType) error {
	if typ == Document {
		var raw []byte
		switch s := val.(type) {
		case string:
			raw = []byte(s)
		case []byte:
			raw = s
		case json.RawMessage:
			raw = s
		default:
			return fmt.Errorf("document value must be JSON text, got %T", val)
		}
		target := reflect.New(f.Type())
		if err := json.Unmarshal(raw, target.Interface()); err != nil {
			return fmt.Errorf("invalid JSON for %s: %w", f.Type(), err)
		}
		f.Set(target.Elem())
		return nil
	}

	out, err := convert(reflect.ValueOf(val), f.Type())
	if err != nil {
		return err
	}
	f.Set(out)
	return nil
}

// convert copies src into a new value of type dst, allocating pointers and
// converting element types of slices and maps. Slice order is preserved.
func convert(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if dst.Kind() == reflect.Pointer {
		inner, err := convert(src, dst.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(dst.Elem())
		p.Elem().Set(inner)
		return p, nil
	}

	for src.Kind() == reflect.Pointer || src.Kind() == reflect.Interface {
		if src.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil value for %s", dst)
		}
		src = src.Elem()
	}

	switch dst.Kind() {
	case reflect.Slice:
		if src.Kind() != reflect.Slice {
			return reflect.Value{}, fmt.Errorf("cannot use %s as %s", src.Type(), dst)
		}
		out := reflect.MakeSlice(dst, src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			e, err := convert(src.Index(i), dst.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(e)
		}
		return out, nil

	case reflect.Map:
		if src.Kind() != reflect.Map {
			return reflect.Value{}, fmt.Errorf("cannot use %s as %s", src.Type(), dst)
		}
		out := reflect.MakeMapWithSize(dst, src.Len())
		iter := src.MapRange()
		for iter.Next() {
			k, err := convert(iter.Key(), dst.Key())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
			}
			v, err := convert(iter.Value(), dst.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("value for %v: %w", iter.Key(), err)
			}
			out.SetMapIndex(k, v)
		}
		return out, nil
	}

	return convertScalar(src, dst)
}

func convertScalar(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	sk, dk := src.Kind(), dst.Kind()
	switch {
	case sk == reflect.String && dk == reflect.String:
	case sk == reflect.Bool && dk == reflect.Bool:
	case isInt(sk) && isInt(dk):
		if reflect.Zero(dst).OverflowInt(src.Int()) {
			return reflect.Value{}, fmt.Errorf("value %d overflows %s", src.Int(), dst)
		}
	case (isInt(sk) || isFloat(sk)) && isFloat(dk):
	default:
		return reflect.Value{}, fmt.Errorf("cannot use %s as %s", src.Type(), dst)
	}
	return src.Convert(dst), nil
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func joinPath(path []string) string {
	if len(path) == 0 {
		return "request"
	}
	return strings.Join(path, ".")
}
