package framework

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarnessProbeSucceedsAgainstRunningServer(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	defer server.Close()

	var output bytes.Buffer
	h, err := NewHarness(server.URL, "/__admin/mappings", time.Second, nil, &output)

	require.NoError(t, err)
	assert.Equal(t, server.URL, h.BaseURL())
	assert.Contains(t, output.String(), "Connecting to mock server")
}

func TestHarnessProbeFailsWhenNothingIsListening(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	server.Close()

	var output bytes.Buffer
	_, err := NewHarness(server.URL, "/__admin/mappings", 200*time.Millisecond, nil, &output)

	require.Error(t, err)
	var unavailable *ServiceUnavailableError
	assert.True(t, errors.As(err, &unavailable), "expected ServiceUnavailableError, got %T", err)
}

func TestHarnessProbeFailsOnNonOKStatus(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(503))
	defer server.Close()

	var output bytes.Buffer
	_, err := NewHarness(server.URL, "/__admin/mappings", 200*time.Millisecond, nil, &output)

	require.Error(t, err)
	var unavailable *ServiceUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Contains(t, unavailable.Error(), "not reachable")
}
