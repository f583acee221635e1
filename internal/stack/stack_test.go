package stack

import (
	"testing"

	"github.com/Gealber/evm-simulator/internal/word"
)

func TestPushPopRoundTrip(t *testing.T) {
	s := New()
	v := word.FromUint64(42)
	if err := s.Push(v); err != nil {
		t.Fatal(err)
	}
	before := s.Len()
	got, err := s.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if got != v {
		t.Fatalf("pop = %s, want %s", got, v)
	}
	if s.Len() != before-1 {
		t.Fatalf("len after pop = %d, want %d", s.Len(), before-1)
	}
}

func TestPopEmptyUnderflows(t *testing.T) {
	s := New()
	if _, err := s.Pop(); err == nil {
		t.Fatal("expected stack underflow popping an empty stack")
	}
}

func TestPushOverflow(t *testing.T) {
	s := New()
	for i := 0; i < MaxDepth; i++ {
		if err := s.Push(word.FromUint64(uint64(i))); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if err := s.Push(word.Zero); err == nil {
		t.Fatal("expected stack overflow past MaxDepth")
	}
}

func TestDupCopiesNthFromTop(t *testing.T) {
	s := New()
	s.Push(word.FromUint64(1))
	s.Push(word.FromUint64(2))
	s.Push(word.FromUint64(3))

	if err := s.Dup(2); err != nil {
		t.Fatal(err)
	}
	top, _ := s.Peek()
	if top != word.FromUint64(2) {
		t.Fatalf("dup(2) top = %s, want 2", top)
	}
}

func TestSwapTwiceIsIdentity(t *testing.T) {
	s := New()
	s.Push(word.FromUint64(1))
	s.Push(word.FromUint64(2))
	s.Push(word.FromUint64(3))

	before := append([]word.Word(nil), s.Data()...)

	if err := s.Swap(2); err != nil {
		t.Fatal(err)
	}
	if err := s.Swap(2); err != nil {
		t.Fatal(err)
	}

	after := s.Data()
	if len(before) != len(after) {
		t.Fatalf("length changed: before %d after %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("swap(k); swap(k) not identity at index %d: before %s after %s", i, before[i], after[i])
		}
	}
}
