package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	l := New()

	assert.Equal(t, DefaultInterval, l.interval)
	assert.Equal(t, DefaultBackoffBase, l.base)
	assert.Equal(t, DefaultBackoffMax, l.max)
	assert.Equal(t, DefaultMaxRetries, l.MaxRetries())
}

func TestWait_FirstCallDoesNotSleep(t *testing.T) {
	l := NewWithPolicy(time.Hour, time.Second, time.Minute, 3)

	var slept []time.Duration
	l.sleep = func(d time.Duration) { slept = append(slept, d) }

	l.Wait()
	assert.Empty(t, slept, "first request should not be delayed")
}

func TestWait_PacesConsecutiveCalls(t *testing.T) {
	l := NewWithPolicy(time.Hour, time.Second, time.Minute, 3)

	var slept []time.Duration
	l.sleep = func(d time.Duration) { slept = append(slept, d) }

	l.Wait()
	l.Wait()

	assert.Len(t, slept, 1)
	assert.Greater(t, slept[0], time.Duration(0))
	assert.LessOrEqual(t, slept[0], time.Hour)
}

func TestWait_NoSleepAfterIntervalElapsed(t *testing.T) {
	l := NewWithPolicy(time.Nanosecond, time.Second, time.Minute, 3)

	var slept []time.Duration
	l.sleep = func(d time.Duration) { slept = append(slept, d) }

	l.Wait()
	time.Sleep(time.Millisecond)
	l.Wait()

	assert.Empty(t, slept)
}

func TestBackoff_ExponentialSchedule(t *testing.T) {
	l := NewWithPolicy(0, time.Second, time.Minute, 5)

	var slept []time.Duration
	l.sleep = func(d time.Duration) { slept = append(slept, d) }

	l.Backoff(0, 0)
	l.Backoff(1, 0)
	l.Backoff(2, 0)

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, slept)
}

func TestBackoff_CappedAtMax(t *testing.T) {
	l := NewWithPolicy(0, time.Second, 3*time.Second, 5)

	var slept []time.Duration
	l.sleep = func(d time.Duration) { slept = append(slept, d) }

	l.Backoff(4, 0)

	assert.Equal(t, []time.Duration{3 * time.Second}, slept)
}

func TestBackoff_RetryAfterTakesPrecedence(t *testing.T) {
	l := NewWithPolicy(0, time.Second, time.Minute, 5)

	var slept []time.Duration
	l.sleep = func(d time.Duration) { slept = append(slept, d) }

	l.Backoff(3, 7*time.Second)

	assert.Equal(t, []time.Duration{7 * time.Second}, slept)
}

func TestBackoff_SingleSleepPerCall(t *testing.T) {
	l := NewWithPolicy(0, time.Millisecond, time.Second, 5)

	calls := 0
	l.sleep = func(time.Duration) { calls++ }

	l.Backoff(0, 0)

	assert.Equal(t, 1, calls)
}
