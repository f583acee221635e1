package interpreter

import (
	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/state"
	"github.com/Gealber/evm-simulator/internal/word"
)

func init() {
	for n := 0; n <= 4; n++ {
		registerLog(n)
	}
}

// registerLog wires LOGn: pop (offset, size) then n topic words, read the
// memory window, and append a log record carrying the current callee's
// address, the topics in pop order, and the data bytes.
func registerLog(n int) {
	op := OpCode(byte(LOG0) + byte(n))
	register(op, func(m *Machine, f *frame.Frame, pc uint64) error {
		offset, size, err := pop2(f)
		if err != nil {
			return err
		}
		topics := make([]word.Word, n)
		for i := 0; i < n; i++ {
			topics[i], err = pop1(f)
			if err != nil {
				return err
			}
		}
		data := f.Memory.Read(offset.Uint64(), size.Uint64())
		rec := state.LogRecord{Address: f.Callee, Topics: topics, Data: data}
		if err := m.World.AppendLog(rec); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})
}
