package verification

import "testing"

func TestStore_SinglePendingSlot(t *testing.T) {
	s := NewStore()

	if _, ok := s.Peek(1); ok {
		t.Fatal("fresh store should hold nothing")
	}

	a := PendingRegistration{EventID: "e-a", EventTitle: "A", Code: "111111"}
	b := PendingRegistration{EventID: "e-b", EventTitle: "B", Code: "222222"}

	s.Begin(1, a)
	// a second begin overwrites unconditionally
	s.Begin(1, b)

	got, ok := s.Peek(1)
	if !ok {
		t.Fatal("expected a pending registration")
	}
	if got != b {
		t.Fatalf("want %+v, got %+v", b, got)
	}
}

func TestStore_PerUserIsolation(t *testing.T) {
	s := NewStore()
	s.Begin(1, PendingRegistration{EventID: "e1", Code: "111111"})

	if _, ok := s.Peek(2); ok {
		t.Fatal("user 2 should not see user 1's pending registration")
	}

	s.Clear(2) // clearing an empty slot is a no-op
	if _, ok := s.Peek(1); !ok {
		t.Fatal("user 1's pending registration should survive")
	}

	s.Clear(1)
	if _, ok := s.Peek(1); ok {
		t.Fatal("expected cleared slot")
	}
}
