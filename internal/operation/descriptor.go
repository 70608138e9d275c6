// Package operation implements the generic command pipeline shared by every
// service operation: parameter binding, request mapping, invocation with
// pagination, response projection and error translation.
package operation

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Verb is the action prefix of a command name.
type Verb string

const (
	VerbGet    Verb = "Get"
	VerbNew    Verb = "New"
	VerbRemove Verb = "Remove"
	VerbUpdate Verb = "Update"
	VerbWrite  Verb = "Write"
	VerbStart  Verb = "Start"
	VerbAdd    Verb = "Add"
)

// ParamType is the value type of a parameter as seen by the caller.
type ParamType int

const (
	_ ParamType = iota
	String
	Int32
	Int64
	Float
	Bool
	StringList
	StringMap
	// Document values are JSON text decoded into the target field's type.
	Document
)

func (t ParamType) String() string {
	switch t {
	case String:
		return "string"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case StringList:
		return "strings"
	case StringMap:
		return "map"
	case Document:
		return "json"
	default:
		return "unknown"
	}
}

// ParameterSpec describes one input of an operation.
type ParameterSpec struct {
	Name     string    `validate:"required,alphanum"`
	Type     ParamType `validate:"min=1,max=8"`
	Required bool
	// Position is the 1-based positional argument index, 0 when the
	// parameter can only be passed by name.
	Position int    `validate:"min=0"`
	Alias    string `validate:"omitempty,alphanum,nefield=Name"`
	Nullable bool
	// Field is the dotted path of the target field in the request struct.
	// Defaults to Name.
	Field string
	Usage string
}

// Path returns the field path segments of the parameter.
func (p ParameterSpec) Path() []string {
	if p.Field == "" {
		return []string{p.Name}
	}
	return strings.Split(p.Field, ".")
}

// Paging describes how an operation pages its results.
type Paging struct {
	// TokenField names the continuation token in both request and response.
	TokenField string `validate:"required"`
	// LimitField names the per-call page size field of the request, if any.
	LimitField string
	// ItemsField names the response list counted against an item budget.
	ItemsField string
	// MaxPageSize is the largest page size the service accepts.
	MaxPageSize int `validate:"min=1"`
}

// Caller invokes the bound service method with a request built by the Mapper.
type Caller func(ctx context.Context, client any, input any) (any, error)

// OperationDescriptor is the static metadata of one remote API operation.
type OperationDescriptor struct {
	Service string `validate:"required"`
	Name    string `validate:"required,alphanum"`
	Verb    Verb   `validate:"required,oneof=Get New Remove Update Write Start Add"`
	Noun    string `validate:"required,alphanum"`
	Summary string

	Input  reflect.Type `validate:"-"`
	Output reflect.Type `validate:"-"`

	Params []ParameterSpec `validate:"dive"`

	// Select is the default projection target: "*" or a response field.
	Select string
	// Identifier names the parameter returned by PassThru and shown in
	// confirmation prompts.
	Identifier string
	Mutating   bool
	Paging     *Paging

	Call Caller `validate:"-"`

	tree *fieldTree
}

// Command returns the kebab-case command name, e.g. "get-input-list".
func (d *OperationDescriptor) Command() string {
	return Kebab(string(d.Verb) + d.Noun)
}

// FullName returns "service:Name".
func (d *OperationDescriptor) FullName() string {
	return d.Service + ":" + d.Name
}

// Param returns the parameter spec with the given name or alias.
func (d *OperationDescriptor) Param(name string) (ParameterSpec, bool) {
	for _, p := range d.Params {
		if p.Name == name || (p.Alias != "" && p.Alias == name) {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// FieldType returns the request field type a parameter is written to.
func (d *OperationDescriptor) FieldType(p ParameterSpec) (reflect.Type, bool) {
	f, err := fieldByPath(d.Input, p.Path())
	if err != nil {
		return nil, false
	}
	return f.Type, true
}

// Positional returns the positional parameters ordered by position.
func (d *OperationDescriptor) Positional() []ParameterSpec {
	var out []ParameterSpec
	for pos := 1; ; pos++ {
		found := false
		for _, p := range d.Params {
			if p.Position == pos {
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			return out
		}
	}
}

// WithMethod binds an SDK client method expression to d, recording the
// request and response types. The client passed to Call at run time must be
// assignable to C.
func WithMethod[C, I, O, P any](d OperationDescriptor, method func(C, context.Context, *I, ...func(*P)) (*O, error)) OperationDescriptor {
	d.Input = reflect.TypeFor[I]()
	d.Output = reflect.TypeFor[O]()
	d.Call = func(ctx context.Context, client any, input any) (any, error) {
		c, ok := client.(C)
		if !ok {
			return nil, fmt.Errorf("%s: client %T does not implement %s", d.Name, client, reflect.TypeFor[C]())
		}
		in, ok := input.(*I)
		if !ok {
			return nil, fmt.Errorf("%s: request %T is not %s", d.Name, input, d.Input)
		}
		out, err := method(c, ctx, in)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return d
}

// Kebab converts a PascalCase identifier to kebab-case. Runs of capitals are
// kept together, so "MLModelId" becomes "ml-model-id".
func Kebab(s string) string {
	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					sb.WriteByte('-')
				}
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
