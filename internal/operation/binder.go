package operation

import (
	"fmt"
	"reflect"
	"strings"
)

// Args is the raw caller input for one invocation. A parameter present in
// Values with a nil value was passed explicitly as null.
type Args struct {
	Values   map[string]any
	Select   string
	PassThru bool
	Force    bool

	NextToken       string
	NoAutoIteration bool
	MaxItems        int
	PageSize        int
}

// RequestContext holds the resolved input of one invocation.
type RequestContext struct {
	Values    map[string]any
	Selection Selection
	Page      *PageState
	Force     bool
	Warnings  []string
}

// Binder turns Args into a RequestContext.
type Binder struct {
	// Strict refuses to proceed when a required parameter is missing
	// instead of warning and letting the service reject the call.
	Strict bool
}

// Bind resolves aliases, checks required parameters, resolves the selector
// and sets up the page state. All returned errors are configuration errors.
func (b Binder) Bind(d *OperationDescriptor, args Args) (*RequestContext, error) {
	op := d.FullName()
	rc := &RequestContext{
		Values: make(map[string]any, len(args.Values)),
		Force:  args.Force,
	}

	for name, v := range args.Values {
		p, ok := d.Param(name)
		if !ok {
			return nil, configErrorf(op, []string{name}, "unknown parameter %q", name)
		}
		if _, dup := rc.Values[p.Name]; dup {
			names := []string{p.Name}
			if p.Alias != "" {
				names = append(names, p.Alias)
			}
			return nil, configErrorf(op, names, "parameter %s given twice", strings.Join(names, "/"))
		}
		rc.Values[p.Name] = v
	}

	var missing []string
	for _, p := range d.Params {
		if !p.Required {
			continue
		}
		v, present := rc.Values[p.Name]
		if present && v == nil && p.Nullable {
			continue
		}
		if !present || isEmpty(v) {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		if b.Strict {
			return nil, &MissingParameterError{Operation: op, Params: missing}
		}
		for _, name := range missing {
			rc.Warnings = append(rc.Warnings, fmt.Sprintf("required parameter %s appears to be null or empty; the service may reject the request", name))
		}
	}

	selector := args.Select
	if args.PassThru {
		if args.Select != "" {
			return nil, configErrorf(op, []string{"Select", "PassThru"},
				"parameters Select and PassThru are mutually exclusive")
		}
		if d.Identifier == "" {
			return nil, configErrorf(op, []string{"PassThru"}, "PassThru is not supported by this operation")
		}
		selector = "^" + d.Identifier
	}
	sel, err := ParseSelector(d, selector)
	if err != nil {
		return nil, err
	}
	rc.Selection = sel

	if d.Paging != nil {
		if args.MaxItems < 0 || args.PageSize < 0 {
			return nil, configErrorf(op, []string{"MaxItems", "PageSize"}, "page size and item limit must not be negative")
		}
		if args.PageSize > d.Paging.MaxPageSize {
			return nil, configErrorf(op, []string{"PageSize"}, "page size %d exceeds the service maximum of %d", args.PageSize, d.Paging.MaxPageSize)
		}
		rc.Page = &PageState{
			Token:    args.NextToken,
			Manual:   args.NoAutoIteration || args.NextToken != "",
			Budget:   args.MaxItems,
			PageSize: args.PageSize,
		}
	} else if args.NextToken != "" || args.NoAutoIteration || args.MaxItems != 0 || args.PageSize != 0 {
		return nil, configErrorf(op, nil, "operation does not support paging")
	}

	return rc, nil
}

// isEmpty reports whether a required value carries nothing: null, a
// zero-length string, or an empty list or map.
func isEmpty(v any) bool {
	if isNull(v) {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}
