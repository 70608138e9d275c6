package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaults(t *testing.T) {
	d := registered(t, widgetDescriptor())

	assert.Equal(t, DefaultPageSize, d.Paging.MaxPageSize)
	assert.Equal(t, "get-widget-list", d.Command())
	assert.Equal(t, "widgets:ListWidgets", d.FullName())
	assert.NotNil(t, d.tree)

	del := registered(t, deleteWidgetDescriptor())
	assert.Equal(t, "*", del.Select)
}

func TestRegisterDoesNotShareTablePaging(t *testing.T) {
	src := widgetDescriptor()
	registered(t, src)
	assert.Zero(t, src.Paging.MaxPageSize)
}

func TestRegisterRejectsBadDescriptors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*OperationDescriptor)
	}{
		{"unknown verb", func(d *OperationDescriptor) { d.Verb = "Fetch" }},
		{"missing service", func(d *OperationDescriptor) { d.Service = "" }},
		{"bad field path", func(d *OperationDescriptor) {
			d.Params = append(d.Params, ParameterSpec{Name: "Bogus", Type: String, Field: "Spec.Nope"})
		}},
		{"path through scalar", func(d *OperationDescriptor) {
			d.Params = append(d.Params, ParameterSpec{Name: "Deep", Type: String, Field: "Name.Inner"})
		}},
		{"duplicate alias", func(d *OperationDescriptor) {
			d.Params = append(d.Params, ParameterSpec{Name: "Other", Type: String, Alias: "WidgetName", Field: "Spec.SelectSqlQuery"})
		}},
		{"same target field", func(d *OperationDescriptor) {
			d.Params = append(d.Params, ParameterSpec{Name: "Other", Type: String, Field: "Name"})
		}},
		{"leaf with children", func(d *OperationDescriptor) {
			d.Params = append(d.Params, ParameterSpec{Name: "Whole", Type: Document, Field: "Spec.DatabaseInformation"})
		}},
		{"gap in positions", func(d *OperationDescriptor) { d.Params[1].Position = 3 }},
		{"shared position", func(d *OperationDescriptor) { d.Params[1].Position = 1 }},
		{"default selector", func(d *OperationDescriptor) { d.Select = "Missing" }},
		{"default input selector", func(d *OperationDescriptor) { d.Select = "^Missing" }},
		{"identifier", func(d *OperationDescriptor) { d.Identifier = "Missing" }},
		{"token field", func(d *OperationDescriptor) { d.Paging = &Paging{TokenField: "Marker"} }},
		{"items not a list", func(d *OperationDescriptor) {
			d.Paging = &Paging{TokenField: "NextToken", ItemsField: "Name"}
		}},
		{"no method", func(d *OperationDescriptor) { d.Call = nil }},
		{"param type", func(d *OperationDescriptor) { d.Params[0].Type = 0 }},
		{"alias equals name", func(d *OperationDescriptor) { d.Params[0].Alias = "Name" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := widgetDescriptor()
			tt.mutate(&d)
			err := NewRegistry().Register(d)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(widgetDescriptor()))

	err := r.Register(widgetDescriptor())
	assert.ErrorIs(t, err, ErrConfiguration)

	clash := deleteWidgetDescriptor()
	clash.Verb = VerbGet
	clash.Noun = "WidgetList"
	err = r.Register(clash)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get-widget-list")

	other := widgetDescriptor()
	other.Service = "gadgets"
	assert.NoError(t, r.Register(other))
}

func TestMustRegisterPanics(t *testing.T) {
	r := NewRegistry()
	d := widgetDescriptor()
	d.Select = "Nope"
	assert.Panics(t, func() { r.MustRegister(d) })
}

func TestRegistryLookupAndList(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(widgetDescriptor(), deleteWidgetDescriptor())
	other := widgetDescriptor()
	other.Service = "gadgets"
	r.MustRegister(other)

	d, ok := r.Command("widgets", "remove-widget")
	require.True(t, ok)
	assert.Equal(t, "DeleteWidget", d.Name)

	_, ok = r.Lookup("widgets", "Nope")
	assert.False(t, ok)

	var names []string
	for _, d := range r.List("widgets") {
		names = append(names, d.Command())
	}
	assert.Equal(t, []string{"get-widget-list", "remove-widget"}, names)
	assert.Len(t, r.List(""), 3)
	assert.Equal(t, []string{"gadgets", "widgets"}, r.Services())
}

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"GetInputList":        "get-input-list",
		"NewMLModel":          "new-ml-model",
		"MLModelId":           "ml-model-id",
		"RDSData":             "rds-data",
		"S3StagingLocation":   "s3-staging-location",
		"Name":                "name",
		"NewDataSourceFromS3": "new-data-source-from-s3",
	}
	for in, want := range tests {
		assert.Equal(t, want, Kebab(in), in)
	}
}

func TestPositional(t *testing.T) {
	d := deleteWidgetDescriptor()
	d.Params[1].Position = 2
	pos := d.Positional()
	require.Len(t, pos, 2)
	assert.Equal(t, "Name", pos[0].Name)
	assert.Equal(t, "Count", pos[1].Name)
}
