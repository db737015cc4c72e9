package client

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryTrackerSuccessOnFirstAttempt(t *testing.T) {
	tr := newRetryTracker(3, time.Millisecond*100)
	tr.succeed()
	assert.Equal(t, 1, tr.attempts())
	assert.False(t, tr.exhausted())
}

func TestRetryTrackerExhaustsAfterExactlyMaxAttempts(t *testing.T) {
	tr := newRetryTracker(3, time.Millisecond*100)

	tr.fail(errors.New("first"))
	assert.False(t, tr.exhausted())
	tr.resume()

	tr.fail(errors.New("second"))
	assert.False(t, tr.exhausted())
	tr.resume()

	tr.fail(errors.New("third"))
	assert.True(t, tr.exhausted())
	assert.Equal(t, 3, tr.attempts())
	assert.EqualError(t, tr.lastError(), "third", "the last failure, not the first, is surfaced")
}

func TestRetryTrackerBackoffDoublesPerFailure(t *testing.T) {
	tr := newRetryTracker(4, time.Millisecond*100)

	tr.fail(errors.New("x"))
	assert.Equal(t, time.Millisecond*100, tr.backoffDelay())
	tr.resume()

	tr.fail(errors.New("x"))
	assert.Equal(t, time.Millisecond*200, tr.backoffDelay())
	tr.resume()

	tr.fail(errors.New("x"))
	assert.Equal(t, time.Millisecond*400, tr.backoffDelay())
}

func TestRetryTrackerRecoversAfterFailures(t *testing.T) {
	tr := newRetryTracker(3, time.Millisecond*100)
	tr.fail(errors.New("x"))
	tr.resume()
	tr.succeed()
	assert.Equal(t, 2, tr.attempts())
	assert.False(t, tr.exhausted())
}

func TestRetryTrackerTreatsNonPositiveCapAsOneAttempt(t *testing.T) {
	tr := newRetryTracker(0, time.Millisecond)
	tr.fail(errors.New("x"))
	assert.True(t, tr.exhausted())
	assert.Equal(t, 1, tr.attempts())
}
