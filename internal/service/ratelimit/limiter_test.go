package ratelimit

import "testing"

func TestAllowExhaustsBucket(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1", 3, 0.0001) {
			t.Fatalf("request %d should pass", i)
		}
	}
	if l.Allow("10.0.0.1", 3, 0.0001) {
		t.Error("bucket should be empty")
	}
}

func TestAllowIsPerKey(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0.0001) {
		t.Fatal("first key should pass")
	}
	if l.Allow("a", 1, 0.0001) {
		t.Error("first key should be exhausted")
	}
	if !l.Allow("b", 1, 0.0001) {
		t.Error("second key has its own bucket")
	}
}
