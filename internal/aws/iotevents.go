package aws

import (
	"github.com/vietdv277/stratus/internal/operation"
	"github.com/vietdv277/stratus/pkg/provider"
)

const ioteventsMaxResults = 250

func ioteventsPaging(items string) *operation.Paging {
	return &operation.Paging{
		TokenField:  "NextToken",
		LimitField:  "MaxResults",
		ItemsField:  items,
		MaxPageSize: ioteventsMaxResults,
	}
}

var (
	inputNameParam = operation.ParameterSpec{
		Name: "InputName", Type: operation.String, Required: true, Position: 1, Alias: "Name",
		Usage: "name of the input",
	}
	detectorModelNameParam = operation.ParameterSpec{
		Name: "DetectorModelName", Type: operation.String, Required: true, Position: 1, Alias: "Name",
		Usage: "name of the detector model",
	}
	alarmModelNameParam = operation.ParameterSpec{
		Name: "AlarmModelName", Type: operation.String, Required: true, Position: 1, Alias: "Name",
		Usage: "name of the alarm model",
	}
	analysisIDParam = operation.ParameterSpec{
		Name: "AnalysisId", Type: operation.String, Required: true, Position: 1,
		Usage: "ID of the detector model analysis",
	}
	resourceArnParam = operation.ParameterSpec{
		Name: "ResourceArn", Type: operation.String, Required: true, Position: 1,
		Usage: "ARN of the resource",
	}
	inputAttributesParam = operation.ParameterSpec{
		Name: "InputDefinitionAttribute", Type: operation.Document, Field: "InputDefinition.Attributes",
		Usage: `attributes as JSON, e.g. [{"jsonPath":"temperature"}]`,
	}
	detectorDefinitionParam = operation.ParameterSpec{
		Name: "DetectorModelDefinition", Type: operation.Document, Required: true,
		Usage: "detector model definition as JSON (states and initial state)",
	}
	ioteventsTagsParam = operation.ParameterSpec{
		Name: "Tag", Type: operation.Document, Field: "Tags",
		Usage: `tags as JSON, e.g. [{"key":"env","value":"prod"}]`,
	}
)

// ioteventsOperations is the IoT Events command table.
func ioteventsOperations() []operation.OperationDescriptor {
	return []operation.OperationDescriptor{
		// Inputs
		operation.WithMethod(operation.OperationDescriptor{
			Name: "CreateInput", Verb: operation.VerbNew, Noun: "Input",
			Summary: "Create an input",
			Params: []operation.ParameterSpec{
				inputNameParam,
				{Name: "InputDescription", Type: operation.String, Usage: "description of the input"},
				required(inputAttributesParam),
				ioteventsTagsParam,
			},
			Select: "InputConfiguration", Identifier: "InputName", Mutating: true,
		}, provider.IoTEventsAPI.CreateInput),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DescribeInput", Verb: operation.VerbGet, Noun: "Input",
			Summary: "Describe an input",
			Params:  []operation.ParameterSpec{inputNameParam},
			Select:  "Input", Identifier: "InputName",
		}, provider.IoTEventsAPI.DescribeInput),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "ListInputs", Verb: operation.VerbGet, Noun: "InputList",
			Summary: "List inputs",
			Select:  "InputSummaries",
			Paging:  ioteventsPaging("InputSummaries"),
		}, provider.IoTEventsAPI.ListInputs),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "UpdateInput", Verb: operation.VerbUpdate, Noun: "Input",
			Summary: "Update an input",
			Params: []operation.ParameterSpec{
				inputNameParam,
				{Name: "InputDescription", Type: operation.String, Usage: "description of the input"},
				inputAttributesParam,
			},
			Select: "InputConfiguration", Identifier: "InputName", Mutating: true,
		}, provider.IoTEventsAPI.UpdateInput),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DeleteInput", Verb: operation.VerbRemove, Noun: "Input",
			Summary: "Delete an input",
			Params:  []operation.ParameterSpec{inputNameParam},
			Select:  "*", Identifier: "InputName", Mutating: true,
		}, provider.IoTEventsAPI.DeleteInput),

		// Detector models
		operation.WithMethod(operation.OperationDescriptor{
			Name: "CreateDetectorModel", Verb: operation.VerbNew, Noun: "DetectorModel",
			Summary: "Create a detector model",
			Params: []operation.ParameterSpec{
				detectorModelNameParam,
				detectorDefinitionParam,
				{Name: "RoleArn", Type: operation.String, Required: true, Usage: "ARN of the role that grants permission to perform actions"},
				{Name: "DetectorModelDescription", Type: operation.String, Alias: "Description", Usage: "description of the detector model"},
				{Name: "Key", Type: operation.String, Usage: "input attribute used to identify device instances"},
				{Name: "EvaluationMethod", Type: operation.String, Usage: "BATCH or SERIAL"},
				ioteventsTagsParam,
			},
			Select: "DetectorModelConfiguration", Identifier: "DetectorModelName", Mutating: true,
		}, provider.IoTEventsAPI.CreateDetectorModel),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DescribeDetectorModel", Verb: operation.VerbGet, Noun: "DetectorModel",
			Summary: "Describe a detector model",
			Params: []operation.ParameterSpec{
				detectorModelNameParam,
				{Name: "DetectorModelVersion", Type: operation.String, Alias: "Version", Usage: "version of the detector model"},
			},
			Select: "DetectorModel", Identifier: "DetectorModelName",
		}, provider.IoTEventsAPI.DescribeDetectorModel),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "ListDetectorModels", Verb: operation.VerbGet, Noun: "DetectorModelList",
			Summary: "List detector models",
			Select:  "DetectorModelSummaries",
			Paging:  ioteventsPaging("DetectorModelSummaries"),
		}, provider.IoTEventsAPI.ListDetectorModels),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "ListDetectorModelVersions", Verb: operation.VerbGet, Noun: "DetectorModelVersionList",
			Summary: "List the versions of a detector model",
			Params:  []operation.ParameterSpec{detectorModelNameParam},
			Select:  "DetectorModelVersionSummaries", Identifier: "DetectorModelName",
			Paging: ioteventsPaging("DetectorModelVersionSummaries"),
		}, provider.IoTEventsAPI.ListDetectorModelVersions),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "UpdateDetectorModel", Verb: operation.VerbUpdate, Noun: "DetectorModel",
			Summary: "Update a detector model",
			Params: []operation.ParameterSpec{
				detectorModelNameParam,
				detectorDefinitionParam,
				{Name: "RoleArn", Type: operation.String, Required: true, Usage: "ARN of the role that grants permission to perform actions"},
				{Name: "DetectorModelDescription", Type: operation.String, Alias: "Description", Usage: "description of the detector model"},
				{Name: "EvaluationMethod", Type: operation.String, Usage: "BATCH or SERIAL"},
			},
			Select: "DetectorModelConfiguration", Identifier: "DetectorModelName", Mutating: true,
		}, provider.IoTEventsAPI.UpdateDetectorModel),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DeleteDetectorModel", Verb: operation.VerbRemove, Noun: "DetectorModel",
			Summary: "Delete a detector model and its instances",
			Params:  []operation.ParameterSpec{detectorModelNameParam},
			Select:  "*", Identifier: "DetectorModelName", Mutating: true,
		}, provider.IoTEventsAPI.DeleteDetectorModel),

		// Detector model analysis
		operation.WithMethod(operation.OperationDescriptor{
			Name: "StartDetectorModelAnalysis", Verb: operation.VerbStart, Noun: "DetectorModelAnalysis",
			Summary: "Analyze a detector model definition for errors",
			Params:  []operation.ParameterSpec{detectorDefinitionParam},
			Select:  "AnalysisId",
		}, provider.IoTEventsAPI.StartDetectorModelAnalysis),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DescribeDetectorModelAnalysis", Verb: operation.VerbGet, Noun: "DetectorModelAnalysis",
			Summary: "Show the status of a detector model analysis",
			Params:  []operation.ParameterSpec{analysisIDParam},
			Select:  "Status", Identifier: "AnalysisId",
		}, provider.IoTEventsAPI.DescribeDetectorModelAnalysis),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "GetDetectorModelAnalysisResults", Verb: operation.VerbGet, Noun: "DetectorModelAnalysisResultList",
			Summary: "List the results of a detector model analysis",
			Params:  []operation.ParameterSpec{analysisIDParam},
			Select:  "AnalysisResults", Identifier: "AnalysisId",
			Paging: ioteventsPaging("AnalysisResults"),
		}, provider.IoTEventsAPI.GetDetectorModelAnalysisResults),

		// Alarm models
		operation.WithMethod(operation.OperationDescriptor{
			Name: "ListAlarmModels", Verb: operation.VerbGet, Noun: "AlarmModelList",
			Summary: "List alarm models",
			Select:  "AlarmModelSummaries",
			Paging:  ioteventsPaging("AlarmModelSummaries"),
		}, provider.IoTEventsAPI.ListAlarmModels),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DescribeAlarmModel", Verb: operation.VerbGet, Noun: "AlarmModel",
			Summary: "Describe an alarm model",
			Params: []operation.ParameterSpec{
				alarmModelNameParam,
				{Name: "AlarmModelVersion", Type: operation.String, Alias: "Version", Usage: "version of the alarm model"},
			},
			Select: "*", Identifier: "AlarmModelName",
		}, provider.IoTEventsAPI.DescribeAlarmModel),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DeleteAlarmModel", Verb: operation.VerbRemove, Noun: "AlarmModel",
			Summary: "Delete an alarm model and its alarms",
			Params:  []operation.ParameterSpec{alarmModelNameParam},
			Select:  "*", Identifier: "AlarmModelName", Mutating: true,
		}, provider.IoTEventsAPI.DeleteAlarmModel),

		// Logging
		operation.WithMethod(operation.OperationDescriptor{
			Name: "DescribeLoggingOptions", Verb: operation.VerbGet, Noun: "LoggingOption",
			Summary: "Show the current logging options",
			Select:  "LoggingOptions",
		}, provider.IoTEventsAPI.DescribeLoggingOptions),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "PutLoggingOptions", Verb: operation.VerbWrite, Noun: "LoggingOption",
			Summary: "Set or update the logging options",
			Params: []operation.ParameterSpec{
				{Name: "Enabled", Type: operation.Bool, Required: true, Field: "LoggingOptions.Enabled", Usage: "enable logging"},
				{Name: "Level", Type: operation.String, Required: true, Field: "LoggingOptions.Level", Usage: "ERROR, INFO or DEBUG"},
				{Name: "RoleArn", Type: operation.String, Required: true, Field: "LoggingOptions.RoleArn", Usage: "ARN of the role that grants permission to write logs"},
				{Name: "DetectorDebugOption", Type: operation.Document, Field: "LoggingOptions.DetectorDebugOptions", Usage: "detector debug options as JSON"},
			},
			Select: "*", Mutating: true,
		}, provider.IoTEventsAPI.PutLoggingOptions),

		// Tags
		operation.WithMethod(operation.OperationDescriptor{
			Name: "ListTagsForResource", Verb: operation.VerbGet, Noun: "ResourceTag",
			Summary: "List the tags of a resource",
			Params:  []operation.ParameterSpec{resourceArnParam},
			Select:  "Tags", Identifier: "ResourceArn",
		}, provider.IoTEventsAPI.ListTagsForResource),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "TagResource", Verb: operation.VerbAdd, Noun: "ResourceTag",
			Summary: "Add tags to a resource",
			Params: []operation.ParameterSpec{
				resourceArnParam,
				required(ioteventsTagsParam),
			},
			Select: "*", Identifier: "ResourceArn", Mutating: true,
		}, provider.IoTEventsAPI.TagResource),
		operation.WithMethod(operation.OperationDescriptor{
			Name: "UntagResource", Verb: operation.VerbRemove, Noun: "ResourceTag",
			Summary: "Remove tags from a resource",
			Params: []operation.ParameterSpec{
				resourceArnParam,
				{Name: "TagKey", Type: operation.StringList, Required: true, Field: "TagKeys", Usage: "keys of the tags to remove"},
			},
			Select: "*", Identifier: "ResourceArn", Mutating: true,
		}, provider.IoTEventsAPI.UntagResource),
	}
}
