package operation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type widgetOptions struct{}

type widgetKind string

type widgetCredentials struct {
	Username *string
	Password *string
}

type widgetDatabase struct {
	ClusterIdentifier *string
	DatabaseName      *string
	Credentials       *widgetCredentials
}

type widgetSpec struct {
	DatabaseInformation *widgetDatabase
	SelectSqlQuery      *string
}

type widgetTag struct {
	Key   *string
	Value *string
}

type widgetInput struct {
	Name      *string
	Count     *int32
	Size      int64
	Ratio     *float64
	Enabled   *bool
	Kind      widgetKind
	Labels    []string
	Kinds     []widgetKind
	Tags      map[string]string
	Spec      *widgetSpec
	TagList   []widgetTag
	NextToken *string
	Limit     *int32
}

type widgetOutput struct {
	Name      *string
	Arn       *string
	Items     []string
	NextToken *string
}

// fakeWidgets records every request and answers with respond.
type fakeWidgets struct {
	calls   []widgetInput
	respond func(call int, in *widgetInput) (*widgetOutput, error)
}

func (f *fakeWidgets) ListWidgets(ctx context.Context, in *widgetInput, _ ...func(*widgetOptions)) (*widgetOutput, error) {
	f.calls = append(f.calls, *in)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.respond == nil {
		return &widgetOutput{}, nil
	}
	return f.respond(len(f.calls)-1, in)
}

func (f *fakeWidgets) DeleteWidget(ctx context.Context, in *widgetInput, _ ...func(*widgetOptions)) (*widgetOutput, error) {
	return f.ListWidgets(ctx, in)
}

// pagedWidgets serves pages of the requested size until total items have
// been handed out.
func pagedWidgets(total int) func(int, *widgetInput) (*widgetOutput, error) {
	served := 0
	return func(call int, in *widgetInput) (*widgetOutput, error) {
		n := DefaultPageSize
		if in.Limit != nil {
			n = int(*in.Limit)
		}
		n = min(n, total-served)
		out := &widgetOutput{Items: make([]string, n)}
		for i := range out.Items {
			out.Items[i] = fmt.Sprintf("w-%d", served+i)
		}
		served += n
		if served < total {
			out.NextToken = ptr(fmt.Sprintf("t%d", call+1))
		}
		return out, nil
	}
}

func ptr[T any](v T) *T { return &v }

func widgetDescriptor() OperationDescriptor {
	return WithMethod(OperationDescriptor{
		Service:    "widgets",
		Name:       "ListWidgets",
		Verb:       VerbGet,
		Noun:       "WidgetList",
		Select:     "Items",
		Identifier: "Name",
		Params: []ParameterSpec{
			{Name: "Name", Type: String, Position: 1, Alias: "WidgetName"},
			{Name: "Count", Type: Int32},
			{Name: "Size", Type: Int64},
			{Name: "Ratio", Type: Float},
			{Name: "Enabled", Type: Bool},
			{Name: "Kind", Type: String},
			{Name: "Labels", Type: StringList},
			{Name: "Kinds", Type: StringList},
			{Name: "Tags", Type: StringMap},
			{Name: "TagList", Type: Document},
			{Name: "ClusterIdentifier", Type: String, Field: "Spec.DatabaseInformation.ClusterIdentifier"},
			{Name: "DatabaseName", Type: String, Field: "Spec.DatabaseInformation.DatabaseName"},
			{Name: "Username", Type: String, Field: "Spec.DatabaseInformation.Credentials.Username"},
			{Name: "Password", Type: String, Field: "Spec.DatabaseInformation.Credentials.Password"},
			{Name: "SelectSqlQuery", Type: String, Field: "Spec.SelectSqlQuery"},
		},
		Paging: &Paging{TokenField: "NextToken", LimitField: "Limit", ItemsField: "Items"},
	}, (*fakeWidgets).ListWidgets)
}

func deleteWidgetDescriptor() OperationDescriptor {
	return WithMethod(OperationDescriptor{
		Service:    "widgets",
		Name:       "DeleteWidget",
		Verb:       VerbRemove,
		Noun:       "Widget",
		Select:     "*",
		Identifier: "Name",
		Mutating:   true,
		Params: []ParameterSpec{
			{Name: "Name", Type: String, Required: true, Position: 1},
			{Name: "Count", Type: Int32, Required: true, Nullable: true},
		},
	}, (*fakeWidgets).DeleteWidget)
}

// registered runs d through a fresh registry and returns the stored copy.
func registered(t *testing.T, d OperationDescriptor) *OperationDescriptor {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register(d))
	got, ok := r.Lookup(d.Service, d.Name)
	require.True(t, ok)
	return got
}
