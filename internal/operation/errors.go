package operation

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrConfiguration is matched by every error raised before a network call
// because of bad input or a bad descriptor.
var ErrConfiguration = errors.New("configuration error")

// ConfigError reports an invalid selector, conflicting parameters, an unknown
// parameter or a value that cannot be converted to the request shape.
type ConfigError struct {
	Operation string
	Params    []string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	var sb strings.Builder
	if e.Operation != "" {
		sb.WriteString(e.Operation)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is reports ErrConfiguration.
func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

func configErrorf(op string, params []string, format string, args ...any) *ConfigError {
	return &ConfigError{Operation: op, Params: params, Message: fmt.Sprintf(format, args...)}
}

// MissingParameterError is returned in strict mode when a required
// parameter has no value.
type MissingParameterError struct {
	Operation string
	Params    []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: missing required parameter(s): %s", e.Operation, strings.Join(e.Params, ", "))
}

// Is reports ErrConfiguration.
func (e *MissingParameterError) Is(target error) bool { return target == ErrConfiguration }

// NameResolutionError replaces a DNS lookup failure with a diagnostic that
// points at the usual causes. The original error is kept as the cause.
type NameResolutionError struct {
	Service   string
	Operation string
	Host      string
	Err       error
}

func (e *NameResolutionError) Error() string {
	target := "the service endpoint"
	if e.Service != "" {
		target = e.Service + " endpoint"
	}
	msg := fmt.Sprintf("name resolution failure attempting to reach %s", target)
	if e.Host != "" {
		msg += fmt.Sprintf(" (%s)", e.Host)
	}
	if e.Operation != "" {
		msg += " for " + e.Operation
	}
	return msg + "; check that the region is valid for this service and that the network is reachable"
}

func (e *NameResolutionError) Unwrap() error { return e.Err }

// TranslateError rewrites name resolution failures into a NameResolutionError
// and returns every other error unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var dnsErr *net.DNSError
	if !errors.As(err, &dnsErr) {
		return err
	}

	nre := &NameResolutionError{Host: dnsErr.Name, Err: err}

	var opErr *smithy.OperationError
	if errors.As(err, &opErr) {
		nre.Service = opErr.Service()
		nre.Operation = opErr.Operation()
	}

	return nre
}
