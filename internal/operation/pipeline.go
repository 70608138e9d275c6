package operation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrDeclined is returned by a Confirmer that refuses to ask, e.g. because
// there is no terminal to ask on.
var ErrDeclined = errors.New("operation not confirmed")

// InvocationResult is one emitted outcome: a projected value with its raw
// response, or a captured error.
type InvocationResult struct {
	Operation *OperationDescriptor
	Value     any
	Response  any
	Err       error
	// Page is the 1-based page number, 0 for non-paginated operations.
	Page int
}

// Sink receives results as they are produced.
type Sink interface {
	Emit(ctx context.Context, res InvocationResult) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, res InvocationResult) error

func (f SinkFunc) Emit(ctx context.Context, res InvocationResult) error { return f(ctx, res) }

// Confirmer asks the user whether a mutating operation may proceed.
type Confirmer interface {
	Confirm(ctx context.Context, d *OperationDescriptor, target string) (bool, error)
}

// Summary describes how an invocation ended.
type Summary struct {
	Pages   int
	Items   int
	Failed  bool
	Skipped bool
	// Interrupted is the error that ended a budgeted pagination early.
	Interrupted error
	// NextToken is the continuation token left after the last page.
	NextToken string
}

// Pipeline runs one operation end to end.
type Pipeline struct {
	Binder  Binder
	Mapper  Mapper
	Invoker Invoker
	Confirm Confirmer
	Logger  *slog.Logger
}

// Execute binds args, builds the request, asks for confirmation when the
// operation mutates state, invokes it and emits every result to sink.
//
// Configuration errors and sink failures are returned and no result is
// emitted for them. Service errors are emitted as error results and reported
// through Summary.Failed.
func (p *Pipeline) Execute(ctx context.Context, d *OperationDescriptor, client any, args Args, sink Sink) (Summary, error) {
	log := p.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	var sum Summary

	rc, err := p.Binder.Bind(d, args)
	if err != nil {
		return sum, err
	}
	for _, w := range rc.Warnings {
		log.WarnContext(ctx, w, "operation", d.FullName())
	}

	req, err := p.Mapper.Map(d, rc)
	if err != nil {
		return sum, err
	}

	if d.Mutating && !rc.Force && p.Confirm != nil {
		target := ""
		if d.Identifier != "" {
			if v, ok := rc.Values[d.Identifier]; ok && v != nil {
				target = fmt.Sprint(v)
			}
		}
		ok, err := p.Confirm.Confirm(ctx, d, target)
		if err != nil {
			return sum, fmt.Errorf("failed to confirm %s: %w", d.Command(), err)
		}
		if !ok {
			log.InfoContext(ctx, "operation skipped", "operation", d.FullName())
			sum.Skipped = true
			return sum, nil
		}
	}

	inv := p.Invoker
	if inv.Logger == nil {
		inv.Logger = log
	}

	var sinkErr error
	emit := func(resp any) error {
		page := 0
		if rc.Page != nil {
			page = rc.Page.Pages
		}
		res := InvocationResult{
			Operation: d,
			Value:     Project(rc.Selection, resp, rc),
			Response:  resp,
			Page:      page,
		}
		if err := sink.Emit(ctx, res); err != nil {
			sinkErr = fmt.Errorf("failed to write result: %w", err)
			return sinkErr
		}
		return nil
	}

	log.DebugContext(ctx, "invoking operation", "operation", d.FullName(), "select", rc.Selection.String())
	callErr := inv.Invoke(ctx, d, client, req, rc, emit)

	if rc.Page != nil {
		sum.Pages = rc.Page.Pages
		sum.Items = rc.Page.Items
		sum.Interrupted = rc.Page.Interrupted
		sum.NextToken = rc.Page.Token
	} else if callErr == nil {
		sum.Pages = 1
	}

	if sinkErr != nil {
		return sum, sinkErr
	}
	if callErr != nil {
		sum.Failed = true
		res := InvocationResult{Operation: d, Err: callErr}
		if rc.Page != nil {
			res.Page = rc.Page.Pages + 1
		}
		if err := sink.Emit(ctx, res); err != nil {
			return sum, fmt.Errorf("failed to write error result: %w", err)
		}
	}
	return sum, nil
}
