package aws

import (
	"github.com/vietdv277/stratus/internal/operation"
)

// NewCatalog returns a registry holding every supported operation. It panics
// if a table entry does not match its SDK request or response type.
func NewCatalog() *operation.Registry {
	r := operation.NewRegistry()
	r.MustRegister(withService(ServiceIoTEvents, ioteventsOperations())...)
	r.MustRegister(withService(ServiceML, mlOperations())...)
	return r
}

// ServiceTitles maps catalog service names to display names.
var ServiceTitles = map[string]string{
	ServiceIoTEvents: "AWS IoT Events",
	ServiceML:        "Amazon Machine Learning",
}

func withService(service string, ops []operation.OperationDescriptor) []operation.OperationDescriptor {
	for i := range ops {
		ops[i].Service = service
	}
	return ops
}

func required(p operation.ParameterSpec) operation.ParameterSpec {
	p.Required = true
	return p
}
