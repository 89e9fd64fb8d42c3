// ABOUTME: Tests for the backoff helper
// ABOUTME: Validates growth, cap, jitter bounds and degenerate attempts
package util

import (
	"testing"
	"time"
)

func TestBackoffZeroAndNegativeAttempts(t *testing.T) {
	if d := Backoff(time.Second, 0); d != 0 {
		t.Errorf("Backoff(1s, 0) = %v, want 0", d)
	}
	if d := Backoff(time.Second, -5); d != 0 {
		t.Errorf("Backoff(1s, -5) = %v, want 0", d)
	}
}

func TestBackoffGrowsWithinJitterBounds(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 1; attempt <= 5; attempt++ {
		expected := base * time.Duration(1<<uint(attempt))
		lo, hi := expected*3/4, expected*5/4

		d := Backoff(base, attempt)
		if d < lo || d > hi {
			t.Errorf("Backoff(attempt %d) = %v, want between %v and %v", attempt, d, lo, hi)
		}
	}
}

func TestBackoffCap(t *testing.T) {
	// 2^10 * 1s = 1024s raw, must cap at 30s (+25% jitter)
	maxAllowed := 37500 * time.Millisecond
	if d := Backoff(time.Second, 10); d > maxAllowed {
		t.Errorf("Backoff(1s, 10) = %v, want <= %v", d, maxAllowed)
	}
	// huge attempts must not overflow
	if d := Backoff(time.Millisecond, 100); d > maxAllowed || d < 0 {
		t.Errorf("Backoff(1ms, 100) = %v, want within (0, %v]", d, maxAllowed)
	}
}

func TestBackoffJitterVaries(t *testing.T) {
	base := time.Second
	first := Backoff(base, 2)
	varied := false
	for i := 0; i < 100; i++ {
		if Backoff(base, 2) != first {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("jitter should vary across calls, got 100 identical samples")
	}
}
