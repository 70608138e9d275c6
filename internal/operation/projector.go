package operation

import (
	"reflect"
	"strings"
)

// SelectKind tells the Projector where the emitted value comes from.
type SelectKind int

const (
	// SelectAll emits the whole response.
	SelectAll SelectKind = iota
	// SelectField emits one top-level response field.
	SelectField
	// SelectInput emits one of the caller's own parameter values.
	SelectInput
)

// Selection is a parsed selector.
type Selection struct {
	Kind SelectKind
	Name string
}

func (s Selection) String() string {
	switch s.Kind {
	case SelectField:
		return s.Name
	case SelectInput:
		return "^" + s.Name
	default:
		return "*"
	}
}

// ParseSelector validates a selector against the operation: "*", a response
// field name, or "^" followed by a parameter name. An empty selector yields
// the operation default.
func ParseSelector(d *OperationDescriptor, selector string) (Selection, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		selector = d.Select
	}

	switch {
	case selector == "" || selector == "*":
		return Selection{Kind: SelectAll}, nil

	case strings.HasPrefix(selector, "^"):
		name := strings.TrimPrefix(selector, "^")
		p, ok := d.Param(name)
		if !ok {
			return Selection{}, configErrorf(d.FullName(), []string{"Select"},
				"invalid Select value %q: %s is not a parameter of this operation", selector, name)
		}
		return Selection{Kind: SelectInput, Name: p.Name}, nil

	default:
		st := structType(d.Output)
		if st == nil {
			return Selection{}, configErrorf(d.FullName(), []string{"Select"}, "response type %v is not a struct", d.Output)
		}
		f, ok := st.FieldByName(selector)
		if !ok || !f.IsExported() {
			return Selection{}, configErrorf(d.FullName(), []string{"Select"},
				"invalid Select value %q: %s has no such field", selector, st.Name())
		}
		return Selection{Kind: SelectField, Name: selector}, nil
	}
}

// Project picks the value handed back to the caller. resp may be nil.
func Project(sel Selection, resp any, rc *RequestContext) any {
	switch sel.Kind {
	case SelectInput:
		if rc == nil {
			return nil
		}
		return rc.Values[sel.Name]

	case SelectField:
		rv := reflect.ValueOf(resp)
		for rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil
			}
			rv = rv.Elem()
		}
		if rv.Kind() != reflect.Struct {
			return nil
		}
		return deref(rv.FieldByName(sel.Name))

	default:
		return resp
	}
}

func deref(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		return v.Elem().Interface()
	}
	return v.Interface()
}
