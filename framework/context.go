package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context represents one running test or subtest. It accumulates failures and
// captured debug output, and supports the FailNow/Skip control flow that the
// assertion helpers rely on (implemented with panic/recover, the same way Go's
// own testing package stops a test goroutine).
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes a top-level test function and returns the accumulated results.
// The action normally just calls Context.Run for each test in the suite.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*Context); ok {
				// normal FailNow/Skip exit
				if c.skipped {
					result := TestResult{TestID: c.id, Skipped: true}
					c.env.results.Tests = append(c.env.results.Tests, result)
					c.env.results.Skips = append(c.env.results.Skips, result)
					return
				}
				c.failed = true
				if len(c.errors) == 0 {
					err := errors.New("test failed with no failure message")
					c.errors = append(c.errors, err)
					c.env.testLogger.TestError(c.id, err)
				}
			} else {
				c.failed = true
				err := fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
				c.errors = append(c.errors, err)
				c.env.testLogger.TestError(c.id, err)
			}
		}
		// the root context is not itself a test; record it only if suite
		// setup code outside any subtest failed
		if len(c.id.Path) == 0 && !c.failed {
			return
		}
		result := TestResult{TestID: c.id, Errors: c.errors}
		c.env.results.Tests = append(c.env.results.Tests, result)
		if c.failed {
			c.env.results.Failures = append(c.env.results.Failures, result)
		}
	}()

	action(c)
}

func (c *Context) ID() TestID {
	return c.id
}

// Run executes a subtest with its own Context, unless the run filter excludes it.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Plus(name)

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		c.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Errorf records a test failure without stopping the test. It has the same
// signature as testing.T.Errorf so testify's assert package can call it.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// FailNow stops the test immediately. Called by testify's require package.
func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Debug records debug output that will be passed to the test logger when the
// test finishes.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
