package banktests

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/mockbank/bank-contract-tests/client"
	"github.com/mockbank/bank-contract-tests/config"
	"github.com/mockbank/bank-contract-tests/dates"
	"github.com/mockbank/bank-contract-tests/framework"
	"github.com/mockbank/bank-contract-tests/ids"
)

// ProbePath is the mock server's admin resource used for the session
// reachability probe; it is always available when the server is up.
const ProbePath = "/__admin/mappings"

// Identifiers of the fixtures the mock server is seeded with. These are the
// only identifiers a test may compare literally; everything else is generated
// per response.
const (
	SeededCustomerID = "CUST001"
	SeededAccountID  = "ACC001"
	SeededLoanID     = "LOAN001"
	SeededDepositID  = "TD001"
	SeededBookingID  = "BOOK001"
)

// createdAtTolerance is the allowed skew between the harness clock and the
// server clock for "now"-based timestamp fields.
const createdAtTolerance = 5 * time.Minute

// T represents a test or subtest in the banking API suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner, with extra features such
// as per-test debug logging. Those features are provided by the lower-level
// framework package.
//
// Every T owns its own API client, so tests stay independent and
// order-independent: each logical request gets a fresh correlation identifier
// and nothing is shared across tests.
//
// To make test assertions, you can use the assert and require packages,
// passing the *T as if it were a *testing.T. There are also assertions built
// into many of the helper methods, causing the test to immediately fail if
// something unexpected happens, to reduce boilerplate in tests.
type T struct {
	context *framework.Context
	cfg     *config.Config
	client  *client.Client
}

func newTestScope(c *framework.Context, cfg *config.Config) *T {
	return &T{
		context: c,
		cfg:     cfg,
		client:  client.New(cfg, c.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest with its own T and its own API client.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.cfg))
	})
}

// Debug logs some debug output for the test. The output will be passed to the
// test logger at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// RequireAuthenticatedMode skips this test unless the session is configured
// with an API key. The server's open-access mode is a valid alternate mode,
// not an error, so tests about auth rejection simply do not apply there.
func (t *T) RequireAuthenticatedMode() {
	if !t.cfg.Authenticated() {
		t.context.SkipWithReason("session is running in unauthenticated mode")
	}
}

// Get issues a GET request. Transport-level failures (after retries) fail the
// test immediately; any well-formed HTTP response is returned for assertion.
func (t *T) Get(path string) *client.Exchange {
	ex, err := t.client.Get(context.Background(), path)
	require.NoError(t, err)
	return ex
}

// Post issues a POST request with a JSON body.
func (t *T) Post(path string, body ldvalue.Value) *client.Exchange {
	ex, err := t.client.Post(context.Background(), path, body)
	require.NoError(t, err)
	return ex
}

// Request issues a request with full control over headers, for tests that
// need to tamper with the Authorization header.
func (t *T) Request(method, path string, opts client.RequestOpts) *client.Exchange {
	ex, err := t.client.Request(context.Background(), method, path, opts)
	require.NoError(t, err)
	return ex
}

// RequireJSONResponse asserts the response status and returns the parsed body.
func (t *T) RequireJSONResponse(ex *client.Exchange, status int) ldvalue.Value {
	if ex.Status != status {
		require.Failf(t, "unexpected response status",
			"%s %s returned %d, want %d (body: %s)", ex.Method, ex.Path, ex.Status, status, string(ex.Body))
	}
	body, err := ex.JSON()
	require.NoError(t, err)
	return body
}

// RequireErrorEnvelope asserts that the response is the standard error shape:
// the given status, an error message, the given code, and a well-formed
// timestamp.
func (t *T) RequireErrorEnvelope(ex *client.Exchange, status int, code string) ldvalue.Value {
	body := t.RequireJSONResponse(ex, status)
	t.RequireFields(body, "error", "code", "timestamp")
	t.RequireFieldType(body, "error", ldvalue.StringType)
	require.Equal(t, code, body.GetByKey("code").StringValue())
	t.RequireTimestampField(body, "timestamp")
	return body
}

// RequireValidationError asserts a 400 VALIDATION_ERROR response whose
// requiredFields array names each of the given fields.
func (t *T) RequireValidationError(ex *client.Exchange, fields ...string) {
	body := t.RequireErrorEnvelope(ex, 400, "VALIDATION_ERROR")
	t.RequireFieldType(body, "requiredFields", ldvalue.ArrayType)
	listed := make(map[string]bool)
	reqFields := body.GetByKey("requiredFields")
	for i := 0; i < reqFields.Count(); i++ {
		listed[reqFields.GetByIndex(i).StringValue()] = true
	}
	for _, f := range fields {
		if !listed[f] {
			t.Errorf("requiredFields %s does not name %q", reqFields.JSONString(), f)
		}
	}
}

// RequireIdentifier asserts that the named field is a string satisfying the
// identifier shape policy for the entity kind, and returns its value.
func (t *T) RequireIdentifier(body ldvalue.Value, field string, kind ids.EntityKind) string {
	t.RequireFieldType(body, field, ldvalue.StringType)
	value := body.GetByKey(field).StringValue()
	if ok, reason := ids.CheckShape(value, kind); !ok {
		require.Failf(t, "identifier shape violation", "field %q: %s", field, reason)
	}
	return value
}

// RequireDateField asserts that the named field is a well-formed yyyy-MM-dd
// date and returns its parsed value.
func (t *T) RequireDateField(body ldvalue.Value, field string) time.Time {
	t.RequireFieldType(body, field, ldvalue.StringType)
	s := body.GetByKey(field).StringValue()
	d, err := dates.ParseDate(s)
	if err != nil {
		require.Failf(t, "malformed date", "field %q: %s", field, err)
	}
	return d
}

// RequireTimestampField asserts that the named field is a well-formed
// "yyyy-MM-dd HH:mm:ss" timestamp and returns its parsed value.
func (t *T) RequireTimestampField(body ldvalue.Value, field string) time.Time {
	t.RequireFieldType(body, field, ldvalue.StringType)
	s := body.GetByKey(field).StringValue()
	ts, err := dates.ParseTimestamp(s)
	if err != nil {
		require.Failf(t, "malformed timestamp", "field %q: %s", field, err)
	}
	return ts
}

// RequireRecentCreatedAt asserts that createdAt is well-formed and close to
// the harness's own clock. The window absorbs clock skew and second-boundary
// flakiness; it does not validate any calendar arithmetic.
func (t *T) RequireRecentCreatedAt(body ldvalue.Value) {
	ts := t.RequireTimestampField(body, "createdAt")
	if !dates.WithinTolerance(ts, time.Now(), createdAtTolerance) {
		t.Errorf("createdAt %q is not within %s of the current time", ts.Format(dates.TimestampLayout), createdAtTolerance)
	}
}

// fieldPath is just for failure messages.
func fieldPath(field string) string {
	return fmt.Sprintf("$.%s", field)
}
