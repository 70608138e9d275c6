package operation

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// DefaultPageSize is the per-call page size used when the caller sets none.
const DefaultPageSize = 100

// PageStep is the position of a paginated invocation in its fetch loop.
type PageStep int

const (
	PageStart PageStep = iota
	PageFetching
	PageMore
	PageDone
	PageFailed
)

func (s PageStep) String() string {
	switch s {
	case PageStart:
		return "start"
	case PageFetching:
		return "fetching"
	case PageMore:
		return "more"
	case PageDone:
		return "done"
	case PageFailed:
		return "failed"
	default:
		return fmt.Sprintf("PageStep(%d)", int(s))
	}
}

// PageState tracks one paginated invocation.
type PageState struct {
	// Token is the continuation token sent with the next request, or the
	// one returned by the last page once the loop has finished.
	Token string
	// Manual fetches exactly one page regardless of the returned token.
	Manual bool
	// Budget caps the total number of items fetched. Zero means no cap.
	Budget int
	// PageSize is the caller's explicit per-call size. Zero derives it.
	PageSize int

	Pages int
	Items int
	Step  PageStep

	// Interrupted holds the error that ended iteration early when a
	// budgeted invocation degraded to a soft stop.
	Interrupted error
}

// nextSize returns the page size for the next call, or 0 when none applies.
func (p *PageState) nextSize(maxSize int) int {
	size := min(DefaultPageSize, maxSize)
	if p.PageSize > 0 {
		size = p.PageSize
	}
	if p.Budget > 0 {
		size = min(size, p.Budget-p.Items)
	}
	return size
}

func (p *PageState) budgetSpent() bool {
	return p.Budget > 0 && p.Items >= p.Budget
}

// Invoker sends mapped requests to the service. Calls are strictly
// sequential: page N+1 is requested only after page N has been emitted.
type Invoker struct {
	Logger *slog.Logger
}

// Invoke calls the operation once, or repeatedly for paginated operations,
// handing every response to emit as soon as it arrives. Transport errors go
// through TranslateError. Errors returned by emit stop the invocation and are
// returned as-is.
func (inv Invoker) Invoke(ctx context.Context, d *OperationDescriptor, client, req any, rc *RequestContext, emit func(resp any) error) error {
	if d.Paging == nil || rc.Page == nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, err := d.Call(ctx, client, req)
		if err != nil {
			return TranslateError(err)
		}
		return emit(resp)
	}
	return inv.paginate(ctx, d, client, req, rc.Page, emit)
}

func (inv Invoker) paginate(ctx context.Context, d *OperationDescriptor, client, req any, pg *PageState, emit func(resp any) error) error {
	log := inv.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	paging := d.Paging
	pg.Step = PageStart

	for {
		if err := ctx.Err(); err != nil {
			pg.Step = PageFailed
			return err
		}

		size := pg.nextSize(paging.MaxPageSize)
		if err := setToken(req, paging.TokenField, pg.Token); err != nil {
			pg.Step = PageFailed
			return err
		}
		if paging.LimitField != "" && size > 0 {
			if err := setLimit(req, paging.LimitField, size); err != nil {
				pg.Step = PageFailed
				return err
			}
		}

		pg.Step = PageFetching
		log.DebugContext(ctx, "fetching page",
			"operation", d.FullName(), "page", pg.Pages+1, "size", size, "token", pg.Token != "")

		resp, err := d.Call(ctx, client, req)
		if err != nil {
			err = TranslateError(err)
			if pg.Budget > 0 && pg.Pages > 0 {
				pg.Step = PageDone
				pg.Interrupted = err
				log.WarnContext(ctx, "stopping pagination early, keeping fetched items",
					"operation", d.FullName(), "pages", pg.Pages, "items", pg.Items, "error", err)
				return nil
			}
			pg.Step = PageFailed
			return err
		}

		pg.Pages++
		pg.Items += countItems(resp, paging.ItemsField)
		pg.Token = getToken(resp, paging.TokenField)

		if err := emit(resp); err != nil {
			pg.Step = PageFailed
			return err
		}

		if pg.Manual || pg.Token == "" || pg.budgetSpent() {
			pg.Step = PageDone
			return nil
		}
		pg.Step = PageMore
	}
}

func requestField(req any, name string) (reflect.Value, error) {
	rv := reflect.ValueOf(req)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("request %T is not a struct pointer", req)
	}
	f := rv.Elem().FieldByName(name)
	if !f.IsValid() || !f.CanSet() {
		return reflect.Value{}, fmt.Errorf("request %T has no settable field %s", req, name)
	}
	return f, nil
}

func setToken(req any, field, token string) error {
	f, err := requestField(req, field)
	if err != nil {
		return err
	}
	switch {
	case token == "":
		f.SetZero()
	case f.Kind() == reflect.Pointer && f.Type().Elem().Kind() == reflect.String:
		p := reflect.New(f.Type().Elem())
		p.Elem().SetString(token)
		f.Set(p)
	case f.Kind() == reflect.String:
		f.SetString(token)
	default:
		return fmt.Errorf("token field %s has unsupported type %s", field, f.Type())
	}
	return nil
}

func setLimit(req any, field string, size int) error {
	f, err := requestField(req, field)
	if err != nil {
		return err
	}
	v, err := convert(reflect.ValueOf(size), f.Type())
	if err != nil {
		return fmt.Errorf("limit field %s: %w", field, err)
	}
	f.Set(v)
	return nil
}

func responseField(resp any, name string) reflect.Value {
	rv := reflect.ValueOf(resp)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return rv.FieldByName(name)
}

func getToken(resp any, field string) string {
	f := responseField(resp, field)
	if f.Kind() == reflect.Pointer {
		if f.IsNil() {
			return ""
		}
		f = f.Elem()
	}
	if f.Kind() != reflect.String {
		return ""
	}
	return f.String()
}

func countItems(resp any, field string) int {
	if field == "" {
		return 0
	}
	f := responseField(resp, field)
	if f.Kind() != reflect.Slice {
		return 0
	}
	return f.Len()
}
