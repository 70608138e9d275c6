package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapWidget(t *testing.T, values map[string]any) (*widgetInput, error) {
	t.Helper()
	d := registered(t, widgetDescriptor())
	req, err := Mapper{}.Map(d, &RequestContext{Values: values})
	if err != nil {
		return nil, err
	}
	in, ok := req.(*widgetInput)
	require.True(t, ok, "got %T", req)
	return in, nil
}

func TestMapFlatFields(t *testing.T) {
	in, err := mapWidget(t, map[string]any{
		"Name":    "w1",
		"Count":   7,
		"Size":    int64(1 << 40),
		"Ratio":   2,
		"Enabled": true,
		"Kind":    "big",
	})
	require.NoError(t, err)

	assert.Equal(t, "w1", *in.Name)
	assert.Equal(t, int32(7), *in.Count)
	assert.Equal(t, int64(1<<40), in.Size)
	assert.Equal(t, 2.0, *in.Ratio)
	assert.True(t, *in.Enabled)
	assert.Equal(t, widgetKind("big"), in.Kind)
	assert.Nil(t, in.Spec)
	assert.Nil(t, in.NextToken)
}

func TestMapSkipsNulls(t *testing.T) {
	in, err := mapWidget(t, map[string]any{
		"Name":    nil,
		"Count":   (*int32)(nil),
		"Labels":  []string(nil),
		"Enabled": false,
	})
	require.NoError(t, err)

	assert.Nil(t, in.Name)
	assert.Nil(t, in.Count)
	assert.Nil(t, in.Labels)
	require.NotNil(t, in.Enabled)
	assert.False(t, *in.Enabled)
}

func TestMapNestedInclusion(t *testing.T) {
	t.Run("all leaves null leaves the structure unset", func(t *testing.T) {
		in, err := mapWidget(t, map[string]any{
			"ClusterIdentifier": nil,
			"Username":          nil,
			"SelectSqlQuery":    nil,
		})
		require.NoError(t, err)
		assert.Nil(t, in.Spec)
	})

	t.Run("innermost leaf attaches every level", func(t *testing.T) {
		in, err := mapWidget(t, map[string]any{"Password": "secret"})
		require.NoError(t, err)
		require.NotNil(t, in.Spec)
		require.NotNil(t, in.Spec.DatabaseInformation)
		require.NotNil(t, in.Spec.DatabaseInformation.Credentials)
		assert.Equal(t, "secret", *in.Spec.DatabaseInformation.Credentials.Password)
		assert.Nil(t, in.Spec.DatabaseInformation.Credentials.Username)
		assert.Nil(t, in.Spec.DatabaseInformation.ClusterIdentifier)
		assert.Nil(t, in.Spec.SelectSqlQuery)
	})

	t.Run("sibling branch stays unset", func(t *testing.T) {
		in, err := mapWidget(t, map[string]any{"SelectSqlQuery": "select 1", "Username": nil})
		require.NoError(t, err)
		require.NotNil(t, in.Spec)
		assert.Equal(t, "select 1", *in.Spec.SelectSqlQuery)
		assert.Nil(t, in.Spec.DatabaseInformation)
	})

	t.Run("middle level without credentials", func(t *testing.T) {
		in, err := mapWidget(t, map[string]any{"ClusterIdentifier": "c1", "DatabaseName": "db"})
		require.NoError(t, err)
		require.NotNil(t, in.Spec.DatabaseInformation)
		assert.Equal(t, "c1", *in.Spec.DatabaseInformation.ClusterIdentifier)
		assert.Equal(t, "db", *in.Spec.DatabaseInformation.DatabaseName)
		assert.Nil(t, in.Spec.DatabaseInformation.Credentials)
	})
}

func TestMapCollections(t *testing.T) {
	in, err := mapWidget(t, map[string]any{
		"Labels": []string{"b", "a", "b"},
		"Kinds":  []string{"small", "big"},
		"Tags":   map[string]string{"env": "prod", "team": "iot"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a", "b"}, in.Labels)
	assert.Equal(t, []widgetKind{"small", "big"}, in.Kinds)
	assert.Equal(t, map[string]string{"env": "prod", "team": "iot"}, in.Tags)
}

func TestMapDocument(t *testing.T) {
	in, err := mapWidget(t, map[string]any{
		"TagList": `[{"key":"env","value":"prod"},{"Key":"team"}]`,
	})
	require.NoError(t, err)
	require.Len(t, in.TagList, 2)
	assert.Equal(t, "env", *in.TagList[0].Key)
	assert.Equal(t, "prod", *in.TagList[0].Value)
	assert.Equal(t, "team", *in.TagList[1].Key)
	assert.Nil(t, in.TagList[1].Value)

	_, err = mapWidget(t, map[string]any{"TagList": `{not json`})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestMapConversionErrors(t *testing.T) {
	tests := map[string]any{
		"Count":   int64(1 << 40),
		"Name":    42,
		"Enabled": "yes",
		"Labels":  "single",
	}
	for name, v := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := mapWidget(t, map[string]any{name: v})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestMapWithoutRegistration(t *testing.T) {
	d := widgetDescriptor()
	req, err := Mapper{}.Map(&d, &RequestContext{Values: map[string]any{"Name": "w"}})
	require.NoError(t, err)
	assert.Equal(t, "w", *req.(*widgetInput).Name)
}
