package interpreter

import "github.com/Gealber/evm-simulator/internal/frame"

func init() {
	register(SLOAD, func(m *Machine, f *frame.Frame, pc uint64) error {
		slot, err := pop1(f)
		if err != nil {
			return err
		}
		v := m.World.SLoad(f.Callee, slot)
		if err := f.Stack.Push(v); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})

	register(SSTORE, func(m *Machine, f *frame.Frame, pc uint64) error {
		slot, value, err := pop2(f)
		if err != nil {
			return err
		}
		if err := m.World.SStore(f.Callee, slot, value); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})
}
