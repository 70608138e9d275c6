package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	d := registered(t, widgetDescriptor())
	resp := &widgetOutput{Name: ptr("w1"), Arn: ptr("arn:w1"), Items: []string{"a", "b"}}
	rc := &RequestContext{Values: map[string]any{"Name": "given"}}

	tests := []struct {
		selector string
		resp     any
		want     any
	}{
		{"", resp, []string{"a", "b"}},
		{"*", resp, resp},
		{"Arn", resp, "arn:w1"},
		{"NextToken", resp, nil},
		{"^Name", resp, "given"},
		{"^Name", nil, "given"},
		{"^Count", resp, nil},
		{"Arn", nil, nil},
		{"*", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			sel, err := ParseSelector(d, tt.selector)
			require.NoError(t, err)
			got := Project(sel, tt.resp, rc)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectFullResponseOverridesDefault(t *testing.T) {
	d := registered(t, widgetDescriptor())
	require.Equal(t, "Items", d.Select)

	sel, err := ParseSelector(d, " * ")
	require.NoError(t, err)
	resp := &widgetOutput{Items: []string{"x"}}
	assert.Same(t, resp, Project(sel, resp, nil))
}

func TestParseSelectorErrors(t *testing.T) {
	d := registered(t, widgetDescriptor())
	for _, s := range []string{"Missing", "^Missing", "items", "^"} {
		_, err := ParseSelector(d, s)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr, s)
		assert.Equal(t, []string{"Select"}, cfgErr.Params)
	}
}

func TestSelectionString(t *testing.T) {
	assert.Equal(t, "*", Selection{}.String())
	assert.Equal(t, "Arn", Selection{Kind: SelectField, Name: "Arn"}.String())
	assert.Equal(t, "^Name", Selection{Kind: SelectInput, Name: "Name"}.String())
}
