package operation

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Registry holds operation descriptors keyed by "service:Name". It is safe
// for concurrent use; descriptors are immutable once registered.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*OperationDescriptor
	commands    map[string]*OperationDescriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]*OperationDescriptor),
		commands:    make(map[string]*OperationDescriptor),
	}
}

// Register validates d and adds it to the registry. Invalid field paths,
// selectors and duplicate names are reported as configuration errors.
func (r *Registry) Register(d OperationDescriptor) error {
	if d.Paging != nil {
		pg := *d.Paging
		if pg.MaxPageSize == 0 {
			pg.MaxPageSize = DefaultPageSize
		}
		d.Paging = &pg
	}
	if err := validate.Struct(d); err != nil {
		return &ConfigError{Operation: d.FullName(), Message: "invalid descriptor", Err: err}
	}
	if d.Call == nil || d.Input == nil || d.Output == nil {
		return configErrorf(d.FullName(), nil, "descriptor has no bound method")
	}
	if d.Select == "" {
		d.Select = "*"
	}

	if err := checkDescriptor(&d); err != nil {
		return err
	}

	tree, err := compileTree(&d)
	if err != nil {
		return err
	}
	d.tree = tree

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[d.FullName()]; exists {
		return configErrorf(d.FullName(), nil, "operation already registered")
	}
	cmdKey := d.Service + ":" + d.Command()
	if other, exists := r.commands[cmdKey]; exists {
		return configErrorf(d.FullName(), nil, "command %q already used by %s", d.Command(), other.Name)
	}

	r.descriptors[d.FullName()] = &d
	r.commands[cmdKey] = &d
	return nil
}

// MustRegister is like Register but panics on error. Use it for static tables
// wired at startup.
func (r *Registry) MustRegister(descriptors ...OperationDescriptor) {
	for _, d := range descriptors {
		if err := r.Register(d); err != nil {
			panic(fmt.Sprintf("operation: %v", err))
		}
	}
}

// Lookup returns the descriptor for a service API operation.
func (r *Registry) Lookup(service, name string) (*OperationDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[service+":"+name]
	return d, ok
}

// Command returns the descriptor registered under a command name.
func (r *Registry) Command(service, command string) (*OperationDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.commands[service+":"+command]
	return d, ok
}

// List returns the descriptors of a service sorted by command name. An empty
// service lists everything.
func (r *Registry) List(service string) []*OperationDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*OperationDescriptor
	for _, d := range r.descriptors {
		if service == "" || d.Service == service {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Service != out[j].Service {
			return out[i].Service < out[j].Service
		}
		return out[i].Command() < out[j].Command()
	})
	return out
}

// Services returns the registered service names, sorted.
func (r *Registry) Services() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	for _, d := range r.descriptors {
		seen[d.Service] = true
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func checkDescriptor(d *OperationDescriptor) error {
	op := d.FullName()
	if structType(d.Input) == nil || structType(d.Output) == nil {
		return configErrorf(op, nil, "request and response must be structs")
	}

	names := make(map[string]bool)
	positions := make(map[int]string)
	for _, p := range d.Params {
		for _, n := range []string{p.Name, p.Alias} {
			if n == "" {
				continue
			}
			if names[n] {
				return configErrorf(op, []string{n}, "duplicate parameter name %q", n)
			}
			names[n] = true
		}
		if p.Position > 0 {
			if other, ok := positions[p.Position]; ok {
				return configErrorf(op, []string{other, p.Name}, "parameters %s and %s share position %d", other, p.Name, p.Position)
			}
			positions[p.Position] = p.Name
		}
		if _, err := fieldByPath(d.Input, p.Path()); err != nil {
			return &ConfigError{Operation: op, Params: []string{p.Name}, Message: "parameter " + p.Name + " does not map to the request", Err: err}
		}
	}
	for pos := 1; pos <= len(positions); pos++ {
		if _, ok := positions[pos]; !ok {
			return configErrorf(op, nil, "positional parameters must be contiguous from 1, missing %d", pos)
		}
	}

	if _, err := ParseSelector(d, d.Select); err != nil {
		return err
	}
	if d.Identifier != "" {
		if _, ok := d.Param(d.Identifier); !ok {
			return configErrorf(op, []string{d.Identifier}, "identifier %q is not a parameter", d.Identifier)
		}
	}

	if pg := d.Paging; pg != nil {
		if _, err := fieldByPath(d.Input, []string{pg.TokenField}); err != nil {
			return &ConfigError{Operation: op, Message: "paging token not in request", Err: err}
		}
		if _, err := fieldByPath(d.Output, []string{pg.TokenField}); err != nil {
			return &ConfigError{Operation: op, Message: "paging token not in response", Err: err}
		}
		if pg.LimitField != "" {
			if _, err := fieldByPath(d.Input, []string{pg.LimitField}); err != nil {
				return &ConfigError{Operation: op, Message: "paging limit not in request", Err: err}
			}
		}
		if pg.ItemsField != "" {
			f, err := fieldByPath(d.Output, []string{pg.ItemsField})
			if err != nil {
				return &ConfigError{Operation: op, Message: "paging items not in response", Err: err}
			}
			if f.Type.Kind() != reflect.Slice {
				return configErrorf(op, nil, "paging items field %s is not a list", pg.ItemsField)
			}
		}
	}
	return nil
}

// structType returns t, or the element type of a struct pointer, when it
// describes a struct.
func structType(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

// fieldByPath walks a dotted field path through nested structs and struct
// pointers.
func fieldByPath(t reflect.Type, path []string) (reflect.StructField, error) {
	var f reflect.StructField
	cur := t
	for i, name := range path {
		st := structType(cur)
		if st == nil {
			return f, fmt.Errorf("%s is not a struct", joinPath(path[:i]))
		}
		var ok bool
		f, ok = st.FieldByName(name)
		if !ok || !f.IsExported() {
			return f, fmt.Errorf("%s has no field %s", st.Name(), name)
		}
		cur = f.Type
	}
	return f, nil
}
