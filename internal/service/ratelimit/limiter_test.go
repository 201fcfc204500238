package ratelimit

import (
	"testing"
	"time"
)

func TestBurstThenDeny(t *testing.T) {
	l := New()
	base := time.Now()
	l.now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		if !l.Allow("a", 3, 1) {
			t.Fatalf("request %d should pass", i)
		}
	}
	if l.Allow("a", 3, 1) {
		t.Fatal("bucket should be empty")
	}
}

func TestRefill(t *testing.T) {
	l := New()
	base := time.Now()
	l.now = func() time.Time { return base }

	if !l.Allow("a", 1, 2) {
		t.Fatal("first request should pass")
	}
	if l.Allow("a", 1, 2) {
		t.Fatal("bucket should be empty")
	}
	base = base.Add(500 * time.Millisecond)
	if !l.Allow("a", 1, 2) {
		t.Fatal("half a second at 2/s should refill a token")
	}
}

func TestKeysIsolated(t *testing.T) {
	l := New()
	base := time.Now()
	l.now = func() time.Time { return base }

	if !l.Allow("a", 1, 1) {
		t.Fatal("a should pass")
	}
	if !l.Allow("b", 1, 1) {
		t.Fatal("b has its own bucket")
	}
}
