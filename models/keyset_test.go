package models

import "testing"

func TestKeySetNoDuplicates(t *testing.T) {
	s := NewKeySet()

	added := s.Add("B00000001")
	if !added {
		t.Error("first Add should return true")
	}

	added = s.Add("B00000001")
	if added {
		t.Error("second Add of same key should return false")
	}

	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestKeySetPreservesInsertionOrder(t *testing.T) {
	s := NewKeySet()
	in := []string{"B03", "B01", "B02", "B01", "B03"}
	for _, k := range in {
		s.Add(k)
	}

	want := []string{"B03", "B01", "B02"}
	got := s.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keys[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKeySetContains(t *testing.T) {
	s := NewKeySet()
	s.Add("B42")

	if !s.Contains("B42") {
		t.Error("expected Contains(B42) to be true")
	}
	if s.Contains("B43") {
		t.Error("expected Contains(B43) to be false")
	}
}
