package aws

import (
	"github.com/vietdv277/stratus/internal/operation"
	"github.com/vietdv277/stratus/pkg/provider"
)

const mlMaxLimit = 100

func mlPaging() *operation.Paging {
	return &operation.Paging{
		TokenField:  "NextToken",
		LimitField:  "Limit",
		ItemsField:  "Results",
		MaxPageSize: mlMaxLimit,
	}
}

// mlFilterParams are the filter and sort parameters shared by the Describe*
// list operations.
func mlFilterParams() []operation.ParameterSpec {
	ps := []operation.ParameterSpec{
		{Name: "FilterVariable", Type: operation.String, Usage: "attribute the comparison filters apply to"},
	}
	for _, op := range []string{"EQ", "GT", "LT", "GE", "LE", "NE"} {
		ps = append(ps, operation.ParameterSpec{Name: op, Type: operation.String, Usage: op + " comparison value for FilterVariable"})
	}
	return append(ps,
		operation.ParameterSpec{Name: "Prefix", Type: operation.String, Usage: "prefix filter for FilterVariable"},
		operation.ParameterSpec{Name: "SortOrder", Type: operation.String, Usage: "asc or dsc"},
	)
}

func mlIDParam(name, usage string) operation.ParameterSpec {
	return operation.ParameterSpec{Name: name, Type: operation.String, Required: true, Position: 1, Usage: usage}
}

func mlNameParam(name, usage string) operation.ParameterSpec {
	return operation.ParameterSpec{Name: name, Type: operation.String, Usage: usage}
}

var (
	mlModelIDParam = operation.ParameterSpec{
		Name: "MLModelId", Type: operation.String, Required: true, Position: 1, Alias: "ModelId",
		Usage: "ID of the ML model",
	}
	mlVerboseParam = operation.ParameterSpec{
		Name: "Verbose", Type: operation.Bool, Usage: "include the recipe or data source schema",
	}
	mlTaggableParams = []operation.ParameterSpec{
		{Name: "ResourceId", Type: operation.String, Required: true, Position: 1, Usage: "ID of the tagged object"},
		{Name: "ResourceType", Type: operation.String, Required: true, Usage: "BatchPrediction, DataSource, Evaluation or MLModel"},
	}
)

// mlOperations is the Amazon Machine Learning command table.
func mlOperations() []operation.OperationDescriptor {
	return []operation.OperationDescriptor{
		// Lists
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DescribeMLModels", Verb: operation.VerbGet, Noun: "MLModelList",
			Summary: "List ML models",
			Params:  mlFilterParams(),
			Select:  "Results",
			Paging:  mlPaging(),
		}, provider.MachineLearningAPI.DescribeMLModels),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DescribeDataSources", Verb: operation.VerbGet, Noun: "DataSourceList",
			Summary: "List data sources",
			Params:  mlFilterParams(),
			Select:  "Results",
			Paging:  mlPaging(),
		}, provider.MachineLearningAPI.DescribeDataSources),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DescribeEvaluations", Verb: operation.VerbGet, Noun: "EvaluationList",
			Summary: "List evaluations",
			Params:  mlFilterParams(),
			Select:  "Results",
			Paging:  mlPaging(),
		}, provider.MachineLearningAPI.DescribeEvaluations),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DescribeBatchPredictions", Verb: operation.VerbGet, Noun: "BatchPredictionList",
			Summary: "List batch predictions",
			Params:  mlFilterParams(),
			Select:  "Results",
			Paging:  mlPaging(),
		}, provider.MachineLearningAPI.DescribeBatchPredictions),

		// Single objects
		operation.WithMethod(operation.OperationDescriptor{
			Name: "GetMLModel", Verb: operation.VerbGet, Noun: "MLModel",
			Summary: "Describe an ML model",
			Params:  []operation.ParameterSpec{mlModelIDParam, mlVerboseParam},
			Select:  "*", Identifier: "MLModelId",
		}, provider.MachineLearningAPI.GetMLModel),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "GetDataSource", Verb: operation.VerbGet, Noun: "DataSource",
			Summary: "Describe a data source",
			Params:  []operation.ParameterSpec{mlIDParam("DataSourceId", "ID of the data source"), mlVerboseParam},
			Select:  "*", Identifier: "DataSourceId",
		}, provider.MachineLearningAPI.GetDataSource),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "GetEvaluation", Verb: operation.VerbGet, Noun: "Evaluation",
			Summary: "Describe an evaluation",
			Params:  []operation.ParameterSpec{mlIDParam("EvaluationId", "ID of the evaluation")},
			Select:  "*", Identifier: "EvaluationId",
		}, provider.MachineLearningAPI.GetEvaluation),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "GetBatchPrediction", Verb: operation.VerbGet, Noun: "BatchPrediction",
			Summary: "Describe a batch prediction",
			Params:  []operation.ParameterSpec{mlIDParam("BatchPredictionId", "ID of the batch prediction")},
			Select:  "*", Identifier: "BatchPredictionId",
		}, provider.MachineLearningAPI.GetBatchPrediction),

		// Create
		operation.WithMethod(operation.OperationDescriptor{
			Name: "CreateMLModel", Verb: operation.VerbNew, Noun: "MLModel",
			Summary: "Create an ML model from a training data source",
			Params: []operation.ParameterSpec{
				mlModelIDParam,
				{Name: "MLModelType", Type: operation.String, Required: true, Alias: "ModelType", Usage: "REGRESSION, BINARY or MULTICLASS"},
				{Name: "TrainingDataSourceId", Type: operation.String, Required: true, Usage: "data source used to train the model"},
				mlNameParam("MLModelName", "user-supplied name of the model"),
				{Name: "Parameter", Type: operation.StringMap, Field: "Parameters", Usage: "training parameters, e.g. sgd.maxPasses=10"},
				{Name: "Recipe", Type: operation.String, Usage: "data recipe as JSON text"},
				{Name: "RecipeUri", Type: operation.String, Usage: "S3 location of the data recipe"},
			},
			Select: "MLModelId", Identifier: "MLModelId", Mutating: true,
		}, provider.MachineLearningAPI.CreateMLModel),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "CreateDataSourceFromS3", Verb: operation.VerbNew, Noun: "DataSourceFromS3",
			Summary: "Create a data source from data stored in S3",
			Params: []operation.ParameterSpec{
				mlIDParam("DataSourceId", "ID to assign to the data source"),
				mlNameParam("DataSourceName", "user-supplied name of the data source"),
				{Name: "ComputeStatistic", Type: operation.Bool, Field: "ComputeStatistics", Usage: "compute statistics for the data source"},
				{Name: "DataLocationS3", Type: operation.String, Required: true, Field: "DataSpec.DataLocationS3", Usage: "S3 location of the observation data"},
				{Name: "DataRearrangement", Type: operation.String, Field: "DataSpec.DataRearrangement", Usage: "data splitting JSON"},
				{Name: "DataSchema", Type: operation.String, Field: "DataSpec.DataSchema", Usage: "schema of the observation data"},
				{Name: "DataSchemaLocationS3", Type: operation.String, Field: "DataSpec.DataSchemaLocationS3", Usage: "S3 location of the schema"},
			},
			Select: "DataSourceId", Identifier: "DataSourceId", Mutating: true,
		}, provider.MachineLearningAPI.CreateDataSourceFromS3),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "CreateDataSourceFromRedshift", Verb: operation.VerbNew, Noun: "DataSourceFromRedshift",
			Summary: "Create a data source from a Redshift query",
			Params: []operation.ParameterSpec{
				mlIDParam("DataSourceId", "ID to assign to the data source"),
				mlNameParam("DataSourceName", "user-supplied name of the data source"),
				{Name: "ComputeStatistic", Type: operation.Bool, Field: "ComputeStatistics", Usage: "compute statistics for the data source"},
				{Name: "RoleARN", Type: operation.String, Required: true, Usage: "role used to access Redshift and S3"},
				{Name: "ClusterIdentifier", Type: operation.String, Required: true, Field: "DataSpec.DatabaseInformation.ClusterIdentifier", Usage: "Redshift cluster ID"},
				{Name: "DatabaseName", Type: operation.String, Required: true, Field: "DataSpec.DatabaseInformation.DatabaseName", Usage: "Redshift database name"},
				{Name: "Username", Type: operation.String, Required: true, Field: "DataSpec.DatabaseCredentials.Username", Usage: "database user name"},
				{Name: "Password", Type: operation.String, Required: true, Field: "DataSpec.DatabaseCredentials.Password", Usage: "database password"},
				{Name: "SelectSqlQuery", Type: operation.String, Required: true, Field: "DataSpec.SelectSqlQuery", Usage: "query that selects the observations"},
				{Name: "S3StagingLocation", Type: operation.String, Required: true, Field: "DataSpec.S3StagingLocation", Usage: "S3 location for query results"},
				{Name: "DataRearrangement", Type: operation.String, Field: "DataSpec.DataRearrangement", Usage: "data splitting JSON"},
				{Name: "DataSchema", Type: operation.String, Field: "DataSpec.DataSchema", Usage: "schema of the observation data"},
				{Name: "DataSchemaUri", Type: operation.String, Field: "DataSpec.DataSchemaUri", Usage: "S3 location of the schema"},
			},
			Select: "DataSourceId", Identifier: "DataSourceId", Mutating: true,
		}, provider.MachineLearningAPI.CreateDataSourceFromRedshift),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "CreateDataSourceFromRDS", Verb: operation.VerbNew, Noun: "DataSourceFromRDS",
			Summary: "Create a data source from an RDS MySQL query",
			Params: []operation.ParameterSpec{
				mlIDParam("DataSourceId", "ID to assign to the data source"),
				mlNameParam("DataSourceName", "user-supplied name of the data source"),
				{Name: "ComputeStatistic", Type: operation.Bool, Field: "ComputeStatistics", Usage: "compute statistics for the data source"},
				{Name: "RoleARN", Type: operation.String, Required: true, Usage: "role used to create the data pipeline"},
				{Name: "InstanceIdentifier", Type: operation.String, Required: true, Field: "RDSData.DatabaseInformation.InstanceIdentifier", Usage: "RDS instance ID"},
				{Name: "DatabaseName", Type: operation.String, Required: true, Field: "RDSData.DatabaseInformation.DatabaseName", Usage: "RDS database name"},
				{Name: "Username", Type: operation.String, Required: true, Field: "RDSData.DatabaseCredentials.Username", Usage: "database user name"},
				{Name: "Password", Type: operation.String, Required: true, Field: "RDSData.DatabaseCredentials.Password", Usage: "database password"},
				{Name: "SelectSqlQuery", Type: operation.String, Required: true, Field: "RDSData.SelectSqlQuery", Usage: "query that selects the observations"},
				{Name: "S3StagingLocation", Type: operation.String, Required: true, Field: "RDSData.S3StagingLocation", Usage: "S3 location for query results"},
				{Name: "ResourceRole", Type: operation.String, Required: true, Field: "RDSData.ResourceRole", Usage: "EC2 instance role of the data pipeline"},
				{Name: "ServiceRole", Type: operation.String, Required: true, Field: "RDSData.ServiceRole", Usage: "service role of the data pipeline"},
				{Name: "SubnetId", Type: operation.String, Required: true, Field: "RDSData.SubnetId", Usage: "subnet used by the data pipeline"},
				{Name: "SecurityGroupId", Type: operation.StringList, Required: true, Field: "RDSData.SecurityGroupIds", Usage: "security groups used by the data pipeline"},
				{Name: "DataRearrangement", Type: operation.String, Field: "RDSData.DataRearrangement", Usage: "data splitting JSON"},
				{Name: "DataSchema", Type: operation.String, Field: "RDSData.DataSchema", Usage: "schema of the observation data"},
				{Name: "DataSchemaUri", Type: operation.String, Field: "RDSData.DataSchemaUri", Usage: "S3 location of the schema"},
			},
			Select: "DataSourceId", Identifier: "DataSourceId", Mutating: true,
		}, provider.MachineLearningAPI.CreateDataSourceFromRDS),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "CreateEvaluation", Verb: operation.VerbNew, Noun: "Evaluation",
			Summary: "Evaluate an ML model against a data source",
			Params: []operation.ParameterSpec{
				mlIDParam("EvaluationId", "ID to assign to the evaluation"),
				{Name: "MLModelId", Type: operation.String, Required: true, Alias: "ModelId", Usage: "ID of the model to evaluate"},
				{Name: "EvaluationDataSourceId", Type: operation.String, Required: true, Usage: "data source to evaluate against"},
				mlNameParam("EvaluationName", "user-supplied name of the evaluation"),
			},
			Select: "EvaluationId", Identifier: "EvaluationId", Mutating: true,
		}, provider.MachineLearningAPI.CreateEvaluation),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "CreateBatchPrediction", Verb: operation.VerbNew, Noun: "BatchPrediction",
			Summary: "Generate predictions for a group of observations",
			Params: []operation.ParameterSpec{
				mlIDParam("BatchPredictionId", "ID to assign to the batch prediction"),
				{Name: "MLModelId", Type: operation.String, Required: true, Alias: "ModelId", Usage: "ID of the model to use"},
				{Name: "BatchPredictionDataSourceId", Type: operation.String, Required: true, Usage: "data source with the observations"},
				{Name: "OutputUri", Type: operation.String, Required: true, Usage: "S3 location for the results"},
				mlNameParam("BatchPredictionName", "user-supplied name of the batch prediction"),
			},
			Select: "BatchPredictionId", Identifier: "BatchPredictionId", Mutating: true,
		}, provider.MachineLearningAPI.CreateBatchPrediction),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "CreateRealtimeEndpoint", Verb: operation.VerbNew, Noun: "RealtimeEndpoint",
			Summary: "Create a real-time endpoint for an ML model",
			Params:  []operation.ParameterSpec{mlModelIDParam},
			Select:  "RealtimeEndpointInfo", Identifier: "MLModelId", Mutating: true,
		}, provider.MachineLearningAPI.CreateRealtimeEndpoint),

		// Update
		operation.WithMethod(operation.OperationDescriptor{
			Name: "UpdateMLModel", Verb: operation.VerbUpdate, Noun: "MLModel",
			Summary: "Rename an ML model or change its score threshold",
			Params: []operation.ParameterSpec{
				mlModelIDParam,
				mlNameParam("MLModelName", "new name of the model"),
				{Name: "ScoreThreshold", Type: operation.Float, Usage: "threshold for positive predictions"},
			},
			Select: "MLModelId", Identifier: "MLModelId", Mutating: true,
		}, provider.MachineLearningAPI.UpdateMLModel),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "UpdateDataSource", Verb: operation.VerbUpdate, Noun: "DataSource",
			Summary: "Rename a data source",
			Params: []operation.ParameterSpec{
				mlIDParam("DataSourceId", "ID of the data source"),
				{Name: "DataSourceName", Type: operation.String, Required: true, Usage: "new name of the data source"},
			},
			Select: "DataSourceId", Identifier: "DataSourceId", Mutating: true,
		}, provider.MachineLearningAPI.UpdateDataSource),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "UpdateEvaluation", Verb: operation.VerbUpdate, Noun: "Evaluation",
			Summary: "Rename an evaluation",
			Params: []operation.ParameterSpec{
				mlIDParam("EvaluationId", "ID of the evaluation"),
				{Name: "EvaluationName", Type: operation.String, Required: true, Usage: "new name of the evaluation"},
			},
			Select: "EvaluationId", Identifier: "EvaluationId", Mutating: true,
		}, provider.MachineLearningAPI.UpdateEvaluation),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "UpdateBatchPrediction", Verb: operation.VerbUpdate, Noun: "BatchPrediction",
			Summary: "Rename a batch prediction",
			Params: []operation.ParameterSpec{
				mlIDParam("BatchPredictionId", "ID of the batch prediction"),
				{Name: "BatchPredictionName", Type: operation.String, Required: true, Usage: "new name of the batch prediction"},
			},
			Select: "BatchPredictionId", Identifier: "BatchPredictionId", Mutating: true,
		}, provider.MachineLearningAPI.UpdateBatchPrediction),

		// Delete
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DeleteMLModel", Verb: operation.VerbRemove, Noun: "MLModel",
			Summary: "Mark an ML model as deleted",
			Params:  []operation.ParameterSpec{mlModelIDParam},
			Select:  "MLModelId", Identifier: "MLModelId", Mutating: true,
		}, provider.MachineLearningAPI.DeleteMLModel),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DeleteDataSource", Verb: operation.VerbRemove, Noun: "DataSource",
			Summary: "Mark a data source as deleted",
			Params:  []operation.ParameterSpec{mlIDParam("DataSourceId", "ID of the data source")},
			Select:  "DataSourceId", Identifier: "DataSourceId", Mutating: true,
		}, provider.MachineLearningAPI.DeleteDataSource),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DeleteEvaluation", Verb: operation.VerbRemove, Noun: "Evaluation",
			Summary: "Mark an evaluation as deleted",
			Params:  []operation.ParameterSpec{mlIDParam("EvaluationId", "ID of the evaluation")},
			Select:  "EvaluationId", Identifier: "EvaluationId", Mutating: true,
		}, provider.MachineLearningAPI.DeleteEvaluation),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DeleteBatchPrediction", Verb: operation.VerbRemove, Noun: "BatchPrediction",
			Summary: "Mark a batch prediction as deleted",
			Params:  []operation.ParameterSpec{mlIDParam("BatchPredictionId", "ID of the batch prediction")},
			Select:  "BatchPredictionId", Identifier: "BatchPredictionId", Mutating: true,
		}, provider.MachineLearningAPI.DeleteBatchPrediction),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DeleteRealtimeEndpoint", Verb: operation.VerbRemove, Noun: "RealtimeEndpoint",
			Summary: "Delete the real-time endpoint of an ML model",
			Params:  []operation.ParameterSpec{mlModelIDParam},
			Select:  "RealtimeEndpointInfo", Identifier: "MLModelId", Mutating: true,
		}, provider.MachineLearningAPI.DeleteRealtimeEndpoint),

		// Predictions
		operation.WithMethod(operation.OperationDescriptor{
			Name: "Predict", Verb: operation.VerbGet, Noun: "Prediction",
			Summary: "Generate a prediction for one observation",
			Params: []operation.ParameterSpec{
				mlModelIDParam,
				{Name: "PredictEndpoint", Type: operation.String, Required: true, Usage: "real-time endpoint URL of the model"},
				{Name: "Record", Type: operation.StringMap, Required: true, Usage: "observation attributes, e.g. age=42"},
			},
			Select: "Prediction", Identifier: "MLModelId",
		}, provider.MachineLearningAPI.Predict),

		// Tags
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DescribeTags", Verb: operation.VerbGet, Noun: "Tag",
			Summary: "List the tags of an object",
			Params:  mlTaggableParams,
			Select:  "Tags", Identifier: "ResourceId",
		}, provider.MachineLearningAPI.DescribeTags),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "AddTags", Verb: operation.VerbAdd, Noun: "Tag",
			Summary: "Add or update tags on an object",
			Params: append(append([]operation.ParameterSpec{}, mlTaggableParams...),
				operation.ParameterSpec{Name: "Tag", Type: operation.Document, Required: true, Field: "Tags", Usage: `tags as JSON, e.g. [{"Key":"env","Value":"prod"}]`},
			),
			Select: "ResourceId", Identifier: "ResourceId", Mutating: true,
		}, provider.MachineLearningAPI.AddTags),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DeleteTags", Verb: operation.VerbRemove, Noun: "Tag",
			Summary: "Remove tags from an object",
			Params: append(append([]operation.ParameterSpec{}, mlTaggableParams...),
				operation.ParameterSpec{Name: "TagKey", Type: operation.StringList, Required: true, Field: "TagKeys", Usage: "keys of the tags to remove"},
			),
			Select: "ResourceId", Identifier: "ResourceId", Mutating: true,
		}, provider.MachineLearningAPI.DeleteTags),
	}
}
