package session

import (
	"sync"
	"testing"
)

func TestGetOrCreate(t *testing.T) {
	r := NewRegistry()

	s1 := r.GetOrCreate("conv_1")
	if s1 == nil {
		t.Fatalf("expected session")
	}
	if !s1.IsActive {
		t.Fatalf("new session should be active")
	}
	if s1.Agent.HasInitiated || s1.Agent.CurrentGoal != "" {
		t.Fatalf("new session should have blank agent state: %+v", s1.Agent)
	}

	s2 := r.GetOrCreate("conv_1")
	if s1 != s2 {
		t.Fatalf("same conversation must map to the same session")
	}

	s3 := r.GetOrCreate("conv_2")
	if s1 == s3 {
		t.Fatalf("different conversations must map to different sessions")
	}
	if r.Count() != 2 {
		t.Fatalf("expected 2 sessions, got %d", r.Count())
	}
}

func TestGetDoesNotCreate(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("missing"); ok {
		t.Fatalf("Get must not create sessions")
	}
	r.GetOrCreate("conv_1")
	if _, ok := r.Get("conv_1"); !ok {
		t.Fatalf("expected session present")
	}
}

func TestGetOrCreateConcurrent(t *testing.T) {
	r := NewRegistry()

	const n = 32
	results := make([]*Session, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.GetOrCreate("conv_shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatalf("concurrent callers got different sessions")
		}
	}
	if r.Count() != 1 {
		t.Fatalf("expected exactly one session, got %d", r.Count())
	}
}
