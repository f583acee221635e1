package interpreter

import (
	"github.com/Gealber/evm-simulator/internal/evmerr"
	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/word"
)

func init() {
	register(STOP, func(m *Machine, f *frame.Frame, pc uint64) error {
		f.Halt(frame.HaltedOk, nil)
		return nil
	})

	register(JUMP, func(m *Machine, f *frame.Frame, pc uint64) error {
		dest, err := pop1(f)
		if err != nil {
			return err
		}
		target, ok := validJumpDest(f, dest)
		if !ok {
			return evmerr.ErrInvalidJump
		}
		f.PC = target
		return nil
	})

	register(JUMPI, func(m *Machine, f *frame.Frame, pc uint64) error {
		dest, cond, err := pop2(f)
		if err != nil {
			return err
		}
		if cond.IsZero() {
			advance(f, pc)
			return nil
		}
		target, ok := validJumpDest(f, dest)
		if !ok {
			return evmerr.ErrInvalidJump
		}
		f.PC = target
		return nil
	})

	register(PC_OP, func(m *Machine, f *frame.Frame, pc uint64) error {
		if err := f.Stack.Push(word.FromUint64(pc)); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})

	register(GAS, func(m *Machine, f *frame.Frame, pc uint64) error {
		if err := f.Stack.Push(word.FromUint64(f.GasRemaining)); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})

	register(JUMPDEST, func(m *Machine, f *frame.Frame, pc uint64) error {
		advance(f, pc)
		return nil
	})
}

// validJumpDest checks that dest fits in the code and lands on a JUMPDEST
// opcode byte, per spec.md §4.5 ("the destination byte must be a JUMPDEST
// opcode and within bytecode bounds, else {invalid-jump}").
func validJumpDest(f *frame.Frame, dest word.Word) (uint64, bool) {
	big := dest.Big()
	if !big.IsUint64() {
		return 0, false
	}
	target := big.Uint64()
	if target >= uint64(len(f.Code)) {
		return 0, false
	}
	if OpCode(f.Code[target]) != JUMPDEST {
		return 0, false
	}
	return target, true
}
