// Package banktests contains the banking API contract tests themselves and
// their supporting API.
//
// The mock server generates most response content dynamically (random
// identifiers, computed dates, request-value echoes), so the tests here assert
// on shape and constraints, never on literal equality to hard-coded generated
// values. Harness infrastructure that is not specific to the banking domain,
// such as the test runner and the session reachability probe, is in the
// lower-level framework package.
package banktests
