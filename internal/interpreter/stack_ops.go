package interpreter

import (
	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/word"
)

func init() {
	register(POP, func(m *Machine, f *frame.Frame, pc uint64) error {
		if _, err := f.Stack.Pop(); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})

	register(PUSH0, func(m *Machine, f *frame.Frame, pc uint64) error {
		if err := f.Stack.Push(word.Zero); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})

	for n := 1; n <= 32; n++ {
		registerPush(n)
	}
	for n := 1; n <= 16; n++ {
		registerDup(n)
	}
	for n := 1; n <= 16; n++ {
		registerSwap(n)
	}
}

// registerPush wires PUSHn: read n bytes of immediate data following the
// opcode, left-pad to 32 bytes, push, and advance the program counter past
// the immediate (reads past the end of code are zero-padded, matching
// CODECOPY's end-of-code behaviour).
func registerPush(n int) {
	op := OpCode(byte(PUSH1) + byte(n-1))
	register(op, func(m *Machine, f *frame.Frame, pc uint64) error {
		start := pc + 1
		end := start + uint64(n)
		buf := make([]byte, n)
		for i := 0; i < n; i++ {
			idx := start + uint64(i)
			if idx < uint64(len(f.Code)) {
				buf[i] = f.Code[idx]
			}
		}
		if err := f.Stack.Push(word.FromBigEndian(buf)); err != nil {
			return err
		}
		f.PC = end
		return nil
	})
}

func registerDup(n int) {
	op := OpCode(byte(DUP1) + byte(n-1))
	register(op, func(m *Machine, f *frame.Frame, pc uint64) error {
		if err := f.Stack.Dup(n); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})
}

func registerSwap(n int) {
	op := OpCode(byte(SWAP1) + byte(n-1))
	register(op, func(m *Machine, f *frame.Frame, pc uint64) error {
		if err := f.Stack.Swap(n); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})
}
