package interpreter

import (
	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/word"
)

func pop1(f *frame.Frame) (word.Word, error) {
	return f.Stack.Pop()
}

func pop2(f *frame.Frame) (word.Word, word.Word, error) {
	a, err := f.Stack.Pop()
	if err != nil {
		return word.Zero, word.Zero, err
	}
	b, err := f.Stack.Pop()
	if err != nil {
		return word.Zero, word.Zero, err
	}
	return a, b, nil
}

func pop3(f *frame.Frame) (word.Word, word.Word, word.Word, error) {
	a, b, err := pop2(f)
	if err != nil {
		return word.Zero, word.Zero, word.Zero, err
	}
	c, err := f.Stack.Pop()
	if err != nil {
		return word.Zero, word.Zero, word.Zero, err
	}
	return a, b, c, nil
}

// advance moves the frame's PC to pc+1, the common case for a non-jumping,
// non-immediate-consuming opcode.
func advance(f *frame.Frame, pc uint64) {
	f.PC = pc + 1
}

// unary registers a one-operand, one-result arithmetic/bitwise opcode.
func unary(op OpCode, fn func(a word.Word) word.Word) {
	register(op, func(m *Machine, f *frame.Frame, pc uint64) error {
		a, err := pop1(f)
		if err != nil {
			return err
		}
		if err := f.Stack.Push(fn(a)); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})
}

// binary registers a two-operand, one-result opcode where a is the top of
// stack and b is the second item (spec.md's "top-first operand named a").
func binary(op OpCode, fn func(a, b word.Word) word.Word) {
	register(op, func(m *Machine, f *frame.Frame, pc uint64) error {
		a, b, err := pop2(f)
		if err != nil {
			return err
		}
		if err := f.Stack.Push(fn(a, b)); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})
}

// ternary registers a three-operand, one-result opcode (ADDMOD/MULMOD).
func ternary(op OpCode, fn func(a, b, c word.Word) word.Word) {
	register(op, func(m *Machine, f *frame.Frame, pc uint64) error {
		a, b, c, err := pop3(f)
		if err != nil {
			return err
		}
		if err := f.Stack.Push(fn(a, b, c)); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})
}

// pushConst registers an opcode that always pushes a fixed word, advancing
// pc by one (used for the fixed environmental placeholders of spec.md §6).
func pushConst(op OpCode, w word.Word) {
	register(op, func(m *Machine, f *frame.Frame, pc uint64) error {
		if err := f.Stack.Push(w); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})
}

// pushFn registers an opcode whose pushed value is computed fresh each time
// (TIMESTAMP's wall-clock value, or a value derived from the frame).
func pushFn(op OpCode, fn func(m *Machine, f *frame.Frame) word.Word) {
	register(op, func(m *Machine, f *frame.Frame, pc uint64) error {
		if err := f.Stack.Push(fn(m, f)); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})
}
