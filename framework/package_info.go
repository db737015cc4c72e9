// Package framework contains the low-level test harness infrastructure that is
// not specific to the banking API domain.
//
// The general model is:
//
// 1. The harness communicates with a mock API server that is already running
// as an external process. Before any test executes, the harness verifies that
// the server is reachable; if it is not, the whole run is aborted rather than
// letting every individual test fail with confusing timeouts.
//
// 2. There is a general notion of a test context which is similar to Go's
// *testing.T, allowing pieces of test logic to be associated with a test
// identifier and to accumulate success/failure results.
//
// The domain-specific code that knows what is being tested is responsible for
// providing the request payloads, the expected response shapes, and a
// domain-specific test API on top of the test context.
package framework
