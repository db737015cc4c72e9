package framework

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// ServiceUnavailableError means the reachability probe failed: the mock server
// never answered within the probe window. It is fatal for the whole session.
type ServiceUnavailableError struct {
	URL string
	Err error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("mock server at %s is not reachable: %s", e.URL, e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Err }

// Harness represents one test session against a running mock server. Creating
// it performs the reachability probe, so no test ever executes against a
// server that is down.
type Harness struct {
	baseURL string
	logger  Logger
}

// NewHarness verifies that the mock server is responding by polling the given
// probe path until it returns 200 or the timeout elapses. Progress dots are
// written to startupOutput so a hung startup is visible.
func NewHarness(
	baseURL string,
	probePath string,
	probeTimeout time.Duration,
	debugLogger Logger,
	startupOutput io.Writer,
) (*Harness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}

	h := &Harness{
		baseURL: baseURL,
		logger:  debugLogger,
	}

	probeURL := baseURL + probePath
	fmt.Fprintf(startupOutput, "Connecting to mock server at %s", probeURL)

	deadline := time.Now().Add(probeTimeout)
	var lastErr error
	for {
		fmt.Fprintf(startupOutput, ".")
		resp, err := http.DefaultClient.Get(probeURL)
		if err == nil {
			if resp.Body != nil {
				_ = resp.Body.Close()
			}
			if resp.StatusCode == 200 {
				fmt.Fprintln(startupOutput)
				fmt.Fprintf(startupOutput, "Mock server is ready\n")
				return h, nil
			}
			lastErr = fmt.Errorf("probe returned status code %d", resp.StatusCode)
		} else {
			lastErr = err
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(startupOutput)
			return nil, &ServiceUnavailableError{URL: probeURL, Err: lastErr}
		}
		time.Sleep(time.Millisecond * 100)
	}
}

func (h *Harness) BaseURL() string {
	return h.baseURL
}

func (h *Harness) Logger() Logger {
	return h.logger
}
