// Package stack implements the EVM evaluation stack: a bounded LIFO of
// 32-byte words with push/pop/dup/swap and depth checks.
package stack

import (
	"github.com/Gealber/evm-simulator/internal/evmerr"
	"github.com/Gealber/evm-simulator/internal/word"
)

// MaxDepth is the maximum number of words the stack may hold.
const MaxDepth = 1024

// Stack is a bounded LIFO of words. The zero value is an empty, usable stack.
type Stack struct {
	data []word.Word
}

// New returns an empty stack pre-sized for typical frame depths.
func New() *Stack {
	return &Stack{data: make([]word.Word, 0, 16)}
}

// Len returns the current number of items.
func (s *Stack) Len() int {
	return len(s.data)
}

// Push appends w to the top of the stack.
func (s *Stack) Push(w word.Word) error {
	if len(s.data) >= MaxDepth {
		return evmerr.ErrStackOverflow
	}
	s.data = append(s.data, w)
	return nil
}

// Pop removes and returns the top item.
func (s *Stack) Pop() (word.Word, error) {
	if len(s.data) == 0 {
		return word.Zero, evmerr.ErrStackUnderflow
	}
	n := len(s.data) - 1
	w := s.data[n]
	s.data = s.data[:n]
	return w, nil
}

// Peek returns the top item without removing it.
func (s *Stack) Peek() (word.Word, error) {
	if len(s.data) == 0 {
		return word.Zero, evmerr.ErrStackUnderflow
	}
	return s.data[len(s.data)-1], nil
}

// Dup duplicates the n-th item from the top (1-indexed) onto the top.
func (s *Stack) Dup(n int) error {
	if n < 1 || len(s.data) < n {
		return evmerr.ErrStackUnderflow
	}
	return s.Push(s.data[len(s.data)-n])
}

// Swap exchanges the top item with the item n positions below it.
func (s *Stack) Swap(n int) error {
	if n < 1 || len(s.data) < n+1 {
		return evmerr.ErrStackUnderflow
	}
	top := len(s.data) - 1
	s.data[top], s.data[top-n] = s.data[top-n], s.data[top]
	return nil
}

// Data returns the underlying slice, top-last. Callers must not retain or
// mutate it beyond the current opcode.
func (s *Stack) Data() []word.Word {
	return s.data
}
