// Package interpreter implements the opcode handlers, the constant
// opcode-to-handler dispatch table, the dispatch loop's four-state machine,
// and the CALL/CREATE snapshot-and-restore protocol of spec.md §4.5 and §5.
//
// Dispatch is realised as a [256]opFn table indexed by the opcode byte,
// grounded on the teacher's own `table *JumpTable` / `in.table[op]` pattern
// in vm/interpreter.go (spec.md §9: "best realised as a constant table
// indexed by the opcode byte").
package interpreter

import (
	"time"

	"github.com/Gealber/evm-simulator/internal/evmerr"
	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/state"
	"github.com/Gealber/evm-simulator/internal/word"
)

// opFn executes the opcode found at pc in f.Code. It is responsible for
// advancing f.PC to the next instruction (the common case is pc+1, but
// PUSHn/JUMP/JUMPI reposition it) and, for halting opcodes, for calling
// f.Halt. A non-nil return either carries an *evmerr.RevertError (handled
// as Halted-Revert by Run) or any other error (handled as Halted-Error).
type opFn func(m *Machine, f *frame.Frame, pc uint64) error

var dispatchTable [256]opFn

func register(op OpCode, fn opFn) {
	dispatchTable[byte(op)] = fn
}

// Machine owns the world state shared by every frame in one outermost
// execution and drives the dispatch loop. It carries no concurrency state:
// spec.md §5 is single-threaded and synchronous end to end.
type Machine struct {
	World *state.WorldState

	// MaxDepth bounds call/create nesting; 1024 mirrors the stack depth
	// bound and is the conventional EVM call-depth limit.
	MaxDepth int
}

// New returns a Machine bound to world.
func New(world *state.WorldState) *Machine {
	return &Machine{World: world, MaxDepth: 1024}
}

// Run drives the dispatch loop for f until it reaches a terminal state.
func (m *Machine) Run(f *frame.Frame) {
	for {
		if f.Status != frame.Running {
			return
		}
		if f.AtEnd() {
			f.Halt(frame.HaltedOk, nil)
			return
		}

		pc := f.PC
		op := f.Code[pc]
		fn := dispatchTable[op]
		if fn == nil {
			f.Halt(frame.HaltedError, evmerr.ErrInvalidOpcode)
			return
		}

		err := fn(m, f, pc)
		if err != nil {
			if rev, ok := err.(*evmerr.RevertError); ok {
				f.ReturnData = rev.Data
				f.Halt(frame.HaltedRevert, err)
			} else {
				f.Halt(frame.HaltedError, err)
			}
			return
		}
		if f.Status != frame.Running {
			return
		}
	}
}

// --- environmental placeholders (spec.md §6) ---

var (
	placeholderGasPrice = word.FromBigEndian([]byte{0xff})
	placeholderCoinbase = word.FromAddress(coinbaseAddress())
	placeholderNumber   = word.FromBigEndian([]byte{0xff, 0xff, 0xff, 0xff})
	placeholderDiff     = word.FromBigEndian([]byte{0x45, 0x45, 0x45, 0x45, 0x45, 0x45, 0x45, 0x45})
	placeholderGasLimit = word.FromUint64(0x01C9C380)
	placeholderChainID  = word.FromUint64(1)
	placeholderBaseFee  = word.FromBigEndian([]byte{0x0a})
)

func coinbaseAddress() word.Address {
	var a word.Address
	for i := range a {
		a[i] = 0xc0
	}
	return a
}

func placeholderTimestamp() word.Word {
	return word.FromUint64(uint64(time.Now().Unix()))
}

// InitialCallerBalance is the word representing 1000 ether
// (0x3635C9ADC5DEA00000), the outermost frame's caller balance per spec.md §6.
var InitialCallerBalance = word.FromBigEndian([]byte{
	0x36, 0x35, 0xc9, 0xad, 0xc5, 0xde, 0xa0, 0x00, 0x00,
})
