package client

import "time"

// retryPhase is the state of the retry machine for one logical request:
//
//	attempting -> (succeeded | backoffWait -> attempting) -> (succeeded | exhausted)
type retryPhase int

const (
	phaseAttempting retryPhase = iota
	phaseBackoffWait
	phaseSucceeded
	phaseExhausted
)

// retryTracker owns the per-exchange retry state: the attempt counter, the
// last failure, and the next backoff delay. It exists only for the duration of
// one logical request.
type retryTracker struct {
	maxAttempts int
	baseDelay   time.Duration
	attempted   int
	lastErr     error
	phase       retryPhase
}

func newRetryTracker(maxAttempts int, baseDelay time.Duration) *retryTracker {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &retryTracker{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		phase:       phaseAttempting,
	}
}

func (r *retryTracker) attempts() int {
	return r.attempted
}

func (r *retryTracker) lastError() error {
	return r.lastErr
}

// succeed records a successful attempt and terminates the machine.
func (r *retryTracker) succeed() {
	r.attempted++
	r.phase = phaseSucceeded
}

// fail records a transient failure. The machine moves to the backoff-wait
// state if attempts remain, or terminates as exhausted.
func (r *retryTracker) fail(err error) {
	r.attempted++
	r.lastErr = err
	if r.attempted >= r.maxAttempts {
		r.phase = phaseExhausted
	} else {
		r.phase = phaseBackoffWait
	}
}

func (r *retryTracker) exhausted() bool {
	return r.phase == phaseExhausted
}

// backoffDelay returns the delay to wait before the next attempt: the base
// delay doubled for each failure already recorded.
func (r *retryTracker) backoffDelay() time.Duration {
	return r.baseDelay * time.Duration(1<<(r.attempted-1))
}

// resume moves from the backoff-wait state back to attempting.
func (r *retryTracker) resume() {
	r.phase = phaseAttempting
}
