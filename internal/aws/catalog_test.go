package aws

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iotevents"
	ietypes "github.com/aws/aws-sdk-go-v2/service/iotevents/types"
	"github.com/aws/aws-sdk-go-v2/service/machinelearning"
	mltypes "github.com/aws/aws-sdk-go-v2/service/machinelearning/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/stratus/internal/operation"
	"github.com/vietdv277/stratus/pkg/provider"
)

// fakeML implements the operations under test and panics on the rest.
type fakeML struct {
	provider.MachineLearningAPI

	describe []*machinelearning.DescribeMLModelsInput
	redshift []*machinelearning.CreateDataSourceFromRedshiftInput
	pages    int
}

func (f *fakeML) DescribeMLModels(_ context.Context, in *machinelearning.DescribeMLModelsInput, _ ...func(*machinelearning.Options)) (*machinelearning.DescribeMLModelsOutput, error) {
	f.describe = append(f.describe, in)
	n := int(aws.ToInt32(in.Limit))
	out := &machinelearning.DescribeMLModelsOutput{Results: make([]mltypes.MLModel, n)}
	for i := range out.Results {
		out.Results[i].MLModelId = aws.String(fmt.Sprintf("ml-%d-%d", len(f.describe), i))
	}
	if len(f.describe) < f.pages {
		out.NextToken = aws.String(fmt.Sprintf("page-%d", len(f.describe)+1))
	}
	return out, nil
}

func (f *fakeML) CreateDataSourceFromRedshift(_ context.Context, in *machinelearning.CreateDataSourceFromRedshiftInput, _ ...func(*machinelearning.Options)) (*machinelearning.CreateDataSourceFromRedshiftOutput, error) {
	f.redshift = append(f.redshift, in)
	return &machinelearning.CreateDataSourceFromRedshiftOutput{DataSourceId: in.DataSourceId}, nil
}

type fakeIoTEvents struct {
	provider.IoTEventsAPI

	logging []*iotevents.PutLoggingOptionsInput
}

func (f *fakeIoTEvents) PutLoggingOptions(_ context.Context, in *iotevents.PutLoggingOptionsInput, _ ...func(*iotevents.Options)) (*iotevents.PutLoggingOptionsOutput, error) {
	f.logging = append(f.logging, in)
	return &iotevents.PutLoggingOptionsOutput{}, nil
}

type collect []operation.InvocationResult

func (c *collect) Emit(_ context.Context, res operation.InvocationResult) error {
	*c = append(*c, res)
	return nil
}

func TestCatalogRegisters(t *testing.T) {
	var catalog *operation.Registry
	require.NotPanics(t, func() { catalog = NewCatalog() })

	assert.Equal(t, []string{ServiceIoTEvents, ServiceML}, catalog.Services())
	assert.Len(t, catalog.List(ServiceIoTEvents), 22)
	assert.Len(t, catalog.List(ServiceML), 28)

	for _, svc := range catalog.Services() {
		assert.Contains(t, ServiceTitles, svc)
	}

	d, ok := catalog.Command(ServiceML, "new-data-source-from-redshift")
	require.True(t, ok)
	assert.Equal(t, "CreateDataSourceFromRedshift", d.Name)
	assert.True(t, d.Mutating)

	d, ok = catalog.Command(ServiceIoTEvents, "get-input-list")
	require.True(t, ok)
	require.NotNil(t, d.Paging)
	assert.Equal(t, 250, d.Paging.MaxPageSize)
}

func TestCatalogMutatingOperationsHaveIdentifiers(t *testing.T) {
	for _, d := range NewCatalog().List("") {
		if d.Mutating && d.Name != "PutLoggingOptions" {
			assert.NotEmpty(t, d.Identifier, d.FullName())
		}
	}
}

func TestDescribeMLModelsBudget(t *testing.T) {
	catalog := NewCatalog()
	d, ok := catalog.Lookup(ServiceML, "DescribeMLModels")
	require.True(t, ok)

	fake := &fakeML{pages: 10}
	var out collect
	sum, err := (&operation.Pipeline{}).Execute(context.Background(), d, provider.MachineLearningAPI(fake), operation.Args{
		Values:   map[string]any{"FilterVariable": "Status", "EQ": "COMPLETED"},
		MaxItems: 250,
	}, &out)
	require.NoError(t, err)

	require.Len(t, fake.describe, 3)
	assert.Equal(t, []int32{100, 100, 50}, []int32{
		aws.ToInt32(fake.describe[0].Limit),
		aws.ToInt32(fake.describe[1].Limit),
		aws.ToInt32(fake.describe[2].Limit),
	})
	assert.Nil(t, fake.describe[0].NextToken)
	assert.Equal(t, "page-2", aws.ToString(fake.describe[1].NextToken))
	assert.Equal(t, mltypes.MLModelFilterVariable("Status"), fake.describe[0].FilterVariable)
	assert.Equal(t, "COMPLETED", aws.ToString(fake.describe[0].EQ))

	assert.Equal(t, 250, sum.Items)
	require.Len(t, out, 3)
	assert.IsType(t, []mltypes.MLModel{}, out[0].Value)
}

func TestCreateDataSourceFromRedshiftNesting(t *testing.T) {
	d, ok := NewCatalog().Lookup(ServiceML, "CreateDataSourceFromRedshift")
	require.True(t, ok)

	fake := &fakeML{}
	var out collect
	_, err := (&operation.Pipeline{}).Execute(context.Background(), d, provider.MachineLearningAPI(fake), operation.Args{
		Values: map[string]any{
			"DataSourceId":      "ds-1",
			"RoleARN":           "arn:aws:iam::123456789012:role/ml",
			"ClusterIdentifier": "analytics",
			"SelectSqlQuery":    "select * from events",
			"Username":          nil,
			"Password":          nil,
		},
		PassThru: true,
		Force:    true,
	}, &out)
	require.NoError(t, err)

	require.Len(t, fake.redshift, 1)
	in := fake.redshift[0]
	require.NotNil(t, in.DataSpec)
	require.NotNil(t, in.DataSpec.DatabaseInformation)
	assert.Equal(t, "analytics", aws.ToString(in.DataSpec.DatabaseInformation.ClusterIdentifier))
	assert.Nil(t, in.DataSpec.DatabaseInformation.DatabaseName)
	assert.Nil(t, in.DataSpec.DatabaseCredentials)
	assert.Equal(t, "select * from events", aws.ToString(in.DataSpec.SelectSqlQuery))

	require.Len(t, out, 1)
	assert.Equal(t, "ds-1", out[0].Value)
}

func TestPutLoggingOptionsBuildsNestedStruct(t *testing.T) {
	d, ok := NewCatalog().Lookup(ServiceIoTEvents, "PutLoggingOptions")
	require.True(t, ok)

	fake := &fakeIoTEvents{}
	var out collect
	_, err := (&operation.Pipeline{}).Execute(context.Background(), d, provider.IoTEventsAPI(fake), operation.Args{
		Values: map[string]any{
			"Enabled":             true,
			"Level":               "DEBUG",
			"RoleArn":             "arn:aws:iam::123456789012:role/logs",
			"DetectorDebugOption": `[{"detectorModelName":"motor","keyValue":"m-1"}]`,
		},
		Force: true,
	}, &out)
	require.NoError(t, err)

	require.Len(t, fake.logging, 1)
	opts := fake.logging[0].LoggingOptions
	require.NotNil(t, opts)
	assert.Equal(t, ietypes.LoggingLevel("DEBUG"), opts.Level)
	assert.Equal(t, "arn:aws:iam::123456789012:role/logs", aws.ToString(opts.RoleArn))
	require.Len(t, opts.DetectorDebugOptions, 1)
	assert.Equal(t, "motor", aws.ToString(opts.DetectorDebugOptions[0].DetectorModelName))
	assert.Equal(t, "m-1", aws.ToString(opts.DetectorDebugOptions[0].KeyValue))
}

func TestServiceLookup(t *testing.T) {
	c := &Client{IoTEvents: &fakeIoTEvents{}, ML: &fakeML{}}

	svc, err := c.Service(ServiceML)
	require.NoError(t, err)
	assert.Implements(t, (*provider.MachineLearningAPI)(nil), svc)

	_, err = c.Service("ec2")
	assert.ErrorIs(t, err, provider.ErrNotSupported)
}
