package interpreter

import (
	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/word"
)

func init() {
	register(MLOAD, func(m *Machine, f *frame.Frame, pc uint64) error {
		offset, err := pop1(f)
		if err != nil {
			return err
		}
		if err := f.Stack.Push(f.Memory.LoadWord(offset.Uint64())); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})

	register(MSTORE, func(m *Machine, f *frame.Frame, pc uint64) error {
		offset, value, err := pop2(f)
		if err != nil {
			return err
		}
		f.Memory.StoreWord(offset.Uint64(), value)
		advance(f, pc)
		return nil
	})

	register(MSIZE, func(m *Machine, f *frame.Frame, pc uint64) error {
		if err := f.Stack.Push(word.FromUint64(f.Memory.Size())); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})
}
