package operation

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateNameResolution(t *testing.T) {
	dnsErr := &net.DNSError{Err: "no such host", Name: "iotevents.xx-nowhere-1.amazonaws.com", IsNotFound: true}
	opErr := &smithy.OperationError{
		ServiceID:     "IoT Events",
		OperationName: "ListInputs",
		Err:           fmt.Errorf("send request: %w", &net.OpError{Op: "dial", Err: dnsErr}),
	}

	err := TranslateError(opErr)

	var nre *NameResolutionError
	require.ErrorAs(t, err, &nre)
	assert.Equal(t, "IoT Events", nre.Service)
	assert.Equal(t, "ListInputs", nre.Operation)
	assert.Equal(t, dnsErr.Name, nre.Host)
	assert.Contains(t, err.Error(), "name resolution failure")
	assert.Contains(t, err.Error(), "region")
	assert.ErrorIs(t, err, dnsErr)
	assert.Same(t, opErr, errors.Unwrap(err))
}

func TestTranslateBareDNSError(t *testing.T) {
	err := TranslateError(&net.DNSError{Err: "no such host", Name: "example.invalid"})

	var nre *NameResolutionError
	require.ErrorAs(t, err, &nre)
	assert.Empty(t, nre.Service)
	assert.Contains(t, err.Error(), "the service endpoint (example.invalid)")
}

func TestTranslatePassesOtherErrors(t *testing.T) {
	assert.NoError(t, TranslateError(nil))

	svcErr := &smithy.GenericAPIError{Code: "ResourceNotFoundException", Message: "no such input"}
	wrapped := &smithy.OperationError{ServiceID: "IoT Events", OperationName: "DescribeInput", Err: svcErr}
	assert.Same(t, wrapped, TranslateError(wrapped))

	plain := errors.New("boom")
	assert.Same(t, plain, TranslateError(plain))
}

func TestConfigErrors(t *testing.T) {
	err := configErrorf("ml:GetMLModel", []string{"Select"}, "bad selector %q", "x")
	assert.Equal(t, `ml:GetMLModel: bad selector "x"`, err.Error())
	assert.ErrorIs(t, err, ErrConfiguration)

	cause := errors.New("inner")
	wrapped := &ConfigError{Message: "cannot build request", Err: cause}
	assert.Equal(t, "cannot build request: inner", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)

	missing := &MissingParameterError{Operation: "ml:GetMLModel", Params: []string{"MLModelId", "Verbose"}}
	assert.Equal(t, "ml:GetMLModel: missing required parameter(s): MLModelId, Verbose", missing.Error())
	assert.ErrorIs(t, missing, ErrConfiguration)
}
