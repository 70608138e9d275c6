package provider

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/iotevents"
	"github.com/aws/aws-sdk-go-v2/service/machinelearning"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Common errors
var (
	ErrNotSupported  = errors.New("service not supported by this provider")
	ErrNotConfigured = errors.New("provider not configured")
)

// IoTEventsAPI is the subset of the IoT Events client used by the command
// catalog.
type IoTEventsAPI interface {
	CreateInput(ctx context.Context, params *iotevents.CreateInputInput, optFns ...func(*iotevents.Options)) (*iotevents.CreateInputOutput, error)
	DescribeInput(ctx context.Context, params *iotevents.DescribeInputInput, optFns ...func(*iotevents.Options)) (*iotevents.DescribeInputOutput, error)
	ListInputs(ctx context.Context, params *iotevents.ListInputsInput, optFns ...func(*iotevents.Options)) (*iotevents.ListInputsOutput, error)
	UpdateInput(ctx context.Context, params *iotevents.UpdateInputInput, optFns ...func(*iotevents.Options)) (*iotevents.UpdateInputOutput, error)
	DeleteInput(ctx context.Context, params *iotevents.DeleteInputInput, optFns ...func(*iotevents.Options)) (*iotevents.DeleteInputOutput, error)

	CreateDetectorModel(ctx context.Context, params *iotevents.CreateDetectorModelInput, optFns ...func(*iotevents.Options)) (*iotevents.CreateDetectorModelOutput, error)
	DescribeDetectorModel(ctx context.Context, params *iotevents.DescribeDetectorModelInput, optFns ...func(*iotevents.Options)) (*iotevents.DescribeDetectorModelOutput, error)
	ListDetectorModels(ctx context.Context, params *iotevents.ListDetectorModelsInput, optFns ...func(*iotevents.Options)) (*iotevents.ListDetectorModelsOutput, error)
	ListDetectorModelVersions(ctx context.Context, params *iotevents.ListDetectorModelVersionsInput, optFns ...func(*iotevents.Options)) (*iotevents.ListDetectorModelVersionsOutput, error)
	UpdateDetectorModel(ctx context.Context, params *iotevents.UpdateDetectorModelInput, optFns ...func(*iotevents.Options)) (*iotevents.UpdateDetectorModelOutput, error)
	DeleteDetectorModel(ctx context.Context, params *iotevents.DeleteDetectorModelInput, optFns ...func(*iotevents.Options)) (*iotevents.DeleteDetectorModelOutput, error)

	StartDetectorModelAnalysis(ctx context.Context, params *iotevents.StartDetectorModelAnalysisInput, optFns ...func(*iotevents.Options)) (*iotevents.StartDetectorModelAnalysisOutput, error)
	DescribeDetectorModelAnalysis(ctx context.Context, params *iotevents.DescribeDetectorModelAnalysisInput, optFns ...func(*iotevents.Options)) (*iotevents.DescribeDetectorModelAnalysisOutput, error)
	GetDetectorModelAnalysisResults(ctx context.Context, params *iotevents.GetDetectorModelAnalysisResultsInput, optFns ...func(*iotevents.Options)) (*iotevents.GetDetectorModelAnalysisResultsOutput, error)

	ListAlarmModels(ctx context.Context, params *iotevents.ListAlarmModelsInput, optFns ...func(*iotevents.Options)) (*iotevents.ListAlarmModelsOutput, error)
	DescribeAlarmModel(ctx context.Context, params *iotevents.DescribeAlarmModelInput, optFns ...func(*iotevents.Options)) (*iotevents.DescribeAlarmModelOutput, error)
	DeleteAlarmModel(ctx context.Context, params *iotevents.DeleteAlarmModelInput, optFns ...func(*iotevents.Options)) (*iotevents.DeleteAlarmModelOutput, error)

	DescribeLoggingOptions(ctx context.Context, params *iotevents.DescribeLoggingOptionsInput, optFns ...func(*iotevents.Options)) (*iotevents.DescribeLoggingOptionsOutput, error)
	PutLoggingOptions(ctx context.Context, params *iotevents.PutLoggingOptionsInput, optFns ...func(*iotevents.Options)) (*iotevents.PutLoggingOptionsOutput, error)

	ListTagsForResource(ctx context.Context, params *iotevents.ListTagsForResourceInput, optFns ...func(*iotevents.Options)) (*iotevents.ListTagsForResourceOutput, error)
	TagResource(ctx context.Context, params *iotevents.TagResourceInput, optFns ...func(*iotevents.Options)) (*iotevents.TagResourceOutput, error)
	UntagResource(ctx context.Context, params *iotevents.UntagResourceInput, optFns ...func(*iotevents.Options)) (*iotevents.UntagResourceOutput, error)
}

// MachineLearningAPI is the subset of the Amazon Machine Learning client used
// by the command catalog.
type MachineLearningAPI interface {
	DescribeMLModels(ctx context.Context, params *machinelearning.DescribeMLModelsInput, optFns ...func(*machinelearning.Options)) (*machinelearning.DescribeMLModelsOutput, error)
	DescribeDataSources(ctx context.Context, params *machinelearning.DescribeDataSourcesInput, optFns ...func(*machinelearning.Options)) (*machinelearning.DescribeDataSourcesOutput, error)
	DescribeEvaluations(ctx context.Context, params *machinelearning.DescribeEvaluationsInput, optFns ...func(*machinelearning.Options)) (*machinelearning.DescribeEvaluationsOutput, error)
	DescribeBatchPredictions(ctx context.Context, params *machinelearning.DescribeBatchPredictionsInput, optFns ...func(*machinelearning.Options)) (*machinelearning.DescribeBatchPredictionsOutput, error)

	GetMLModel(ctx context.Context, params *machinelearning.GetMLModelInput, optFns ...func(*machinelearning.Options)) (*machinelearning.GetMLModelOutput, error)
	GetDataSource(ctx context.Context, params *machinelearning.GetDataSourceInput, optFns ...func(*machinelearning.Options)) (*machinelearning.GetDataSourceOutput, error)
	GetEvaluation(ctx context.Context, params *machinelearning.GetEvaluationInput, optFns ...func(*machinelearning.Options)) (*machinelearning.GetEvaluationOutput, error)
	GetBatchPrediction(ctx context.Context, params *machinelearning.GetBatchPredictionInput, optFns ...func(*machinelearning.Options)) (*machinelearning.GetBatchPredictionOutput, error)

	CreateMLModel(ctx context.Context, params *machinelearning.CreateMLModelInput, optFns ...func(*machinelearning.Options)) (*machinelearning.CreateMLModelOutput, error)
	CreateDataSourceFromS3(ctx context.Context, params *machinelearning.CreateDataSourceFromS3Input, optFns ...func(*machinelearning.Options)) (*machinelearning.CreateDataSourceFromS3Output, error)
	CreateDataSourceFromRedshift(ctx context.Context, params *machinelearning.CreateDataSourceFromRedshiftInput, optFns ...func(*machinelearning.Options)) (*machinelearning.CreateDataSourceFromRedshiftOutput, error)
	CreateDataSourceFromRDS(ctx context.Context, params *machinelearning.CreateDataSourceFromRDSInput, optFns ...func(*machinelearning.Options)) (*machinelearning.CreateDataSourceFromRDSOutput, error)
	CreateEvaluation(ctx context.Context, params *machinelearning.CreateEvaluationInput, optFns ...func(*machinelearning.Options)) (*machinelearning.CreateEvaluationOutput, error)
	CreateBatchPrediction(ctx context.Context, params *machinelearning.CreateBatchPredictionInput, optFns ...func(*machinelearning.Options)) (*machinelearning.CreateBatchPredictionOutput, error)
	CreateRealtimeEndpoint(ctx context.Context, params *machinelearning.CreateRealtimeEndpointInput, optFns ...func(*machinelearning.Options)) (*machinelearning.CreateRealtimeEndpointOutput, error)

	UpdateMLModel(ctx context.Context, params *machinelearning.UpdateMLModelInput, optFns ...func(*machinelearning.Options)) (*machinelearning.UpdateMLModelOutput, error)
	UpdateDataSource(ctx context.Context, params *machinelearning.UpdateDataSourceInput, optFns ...func(*machinelearning.Options)) (*machinelearning.UpdateDataSourceOutput, error)
	UpdateEvaluation(ctx context.Context, params *machinelearning.UpdateEvaluationInput, optFns ...func(*machinelearning.Options)) (*machinelearning.UpdateEvaluationOutput, error)
	UpdateBatchPrediction(ctx context.Context, params *machinelearning.UpdateBatchPredictionInput, optFns ...func(*machinelearning.Options)) (*machinelearning.UpdateBatchPredictionOutput, error)

	DeleteMLModel(ctx context.Context, params *machinelearning.DeleteMLModelInput, optFns ...func(*machinelearning.Options)) (*machinelearning.DeleteMLModelOutput, error)
	DeleteDataSource(ctx context.Context, params *machinelearning.DeleteDataSourceInput, optFns ...func(*machinelearning.Options)) (*machinelearning.DeleteDataSourceOutput, error)
	DeleteEvaluation(ctx context.Context, params *machinelearning.DeleteEvaluationInput, optFns ...func(*machinelearning.Options)) (*machinelearning.DeleteEvaluationOutput, error)
	DeleteBatchPrediction(ctx context.Context, params *machinelearning.DeleteBatchPredictionInput, optFns ...func(*machinelearning.Options)) (*machinelearning.DeleteBatchPredictionOutput, error)
	DeleteRealtimeEndpoint(ctx context.Context, params *machinelearning.DeleteRealtimeEndpointInput, optFns ...func(*machinelearning.Options)) (*machinelearning.DeleteRealtimeEndpointOutput, error)

	Predict(ctx context.Context, params *machinelearning.PredictInput, optFns ...func(*machinelearning.Options)) (*machinelearning.PredictOutput, error)

	AddTags(ctx context.Context, params *machinelearning.AddTagsInput, optFns ...func(*machinelearning.Options)) (*machinelearning.AddTagsOutput, error)
	DeleteTags(ctx context.Context, params *machinelearning.DeleteTagsInput, optFns ...func(*machinelearning.Options)) (*machinelearning.DeleteTagsOutput, error)
	DescribeTags(ctx context.Context, params *machinelearning.DescribeTagsInput, optFns ...func(*machinelearning.Options)) (*machinelearning.DescribeTagsOutput, error)
}

// IdentityAPI resolves the caller behind the current credentials.
type IdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

var (
	_ IoTEventsAPI       = (*iotevents.Client)(nil)
	_ MachineLearningAPI = (*machinelearning.Client)(nil)
	_ IdentityAPI        = (*sts.Client)(nil)
)
