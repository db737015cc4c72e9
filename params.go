package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/mockbank/bank-contract-tests/framework"
)

type commandParams struct {
	serviceURL     string
	apiKey         string
	timeoutSeconds float64
	maxRetries     int
	filters        framework.RegexFilters
	debug          bool
	debugAll       bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "mock server base URL (overrides BASE_URL)")
	fs.StringVar(&c.apiKey, "api-key", "", "bearer token for authenticated mode (overrides API_KEY)")
	fs.Float64Var(&c.timeoutSeconds, "timeout", 0, "per-attempt request timeout in seconds (overrides TIMEOUT_SECONDS)")
	fs.IntVar(&c.maxRetries, "retries", 0, "attempt cap for transient failures (overrides MAX_RETRIES)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

// configOverrides maps the explicit command line flags onto the resolver's
// override layer, which wins over environment variables and defaults.
func (c *commandParams) configOverrides() map[string]interface{} {
	overrides := make(map[string]interface{})
	if c.serviceURL != "" {
		overrides["base_url"] = c.serviceURL
	}
	if c.apiKey != "" {
		overrides["api_key"] = c.apiKey
	}
	if c.timeoutSeconds > 0 {
		overrides["timeout_seconds"] = c.timeoutSeconds
	}
	if c.maxRetries > 0 {
		overrides["max_retries"] = c.maxRetries
	}
	return overrides
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a command line that would re-execute only the failed
// tests from this run.
func rerunCommand(programName string, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(programName)
	for _, f := range failures {
		b.add("-run", "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	return b.String()
}
