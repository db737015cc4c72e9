package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mockbank/bank-contract-tests/banktests"
	"github.com/mockbank/bank-contract-tests/config"
	"github.com/mockbank/bank-contract-tests/framework"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	cfg, err := config.Load(params.configOverrides())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	_, err = framework.NewHarness(
		cfg.BaseURL,
		banktests.ProbePath,
		cfg.ProbeTimeout(),
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	if params.filters.IsDefined() {
		fmt.Println("Some tests will be skipped based on the filter criteria for this test run:")
		if params.filters.MustMatch.IsDefined() {
			fmt.Printf("  skip any not matching %s\n", params.filters.MustMatch)
		}
		if params.filters.MustNotMatch.IsDefined() {
			fmt.Printf("  skip any matching %s\n", params.filters.MustNotMatch)
		}
		fmt.Println()
	}
	if !cfg.Authenticated() {
		fmt.Println("No API key configured; running in unauthenticated mode")
	}

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := banktests.RunTestSuite(cfg, params.filters.AsFilter, testLogger)

	fmt.Println()
	results.PrintSummary(os.Stdout)
	if !results.OK() {
		fmt.Printf("\nTo rerun only the failed tests: %s\n", rerunCommand(os.Args[0], results.Failures))
		os.Exit(1)
	}
}
