package framework

import (
	"fmt"
	"io"
	"strings"
)

// TestID identifies a test or subtest as a path of names, e.g.
// "customers/POST new customer/missing required fields".
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Plus returns a child TestID with one more path component.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

// Results accumulates the outcome of a whole test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skips    []TestResult
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// PrintSummary writes the overall pass/fail summary, including a recap of
// every failed test, to the given writer.
func (r Results) PrintSummary(w io.Writer) {
	executed := len(r.Tests) - len(r.Skips)
	if r.OK() {
		fmt.Fprintf(w, "All %d tests passed", executed)
	} else {
		fmt.Fprintf(w, "%d tests failed out of %d", len(r.Failures), executed)
	}
	if len(r.Skips) > 0 {
		fmt.Fprintf(w, " (%d skipped)", len(r.Skips))
	}
	fmt.Fprintln(w)
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  FAILED: %s\n", f.TestID)
		for _, e := range f.Errors {
			for _, line := range strings.Split(e.Error(), "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
}
