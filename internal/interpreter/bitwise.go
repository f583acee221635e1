package interpreter

import (
	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/state"
	"github.com/Gealber/evm-simulator/internal/word"
)

func init() {
	binary(AND, func(a, b word.Word) word.Word { return a.And(b) })
	binary(OR, func(a, b word.Word) word.Word { return a.Or(b) })
	binary(XOR, func(a, b word.Word) word.Word { return a.Xor(b) })
	unary(NOT, func(a word.Word) word.Word { return a.Not() })

	// SHL/SHR pop (shift, value); the shift count is itself a word, and
	// counts >= 256 produce zero (spec.md §4.1/§4.5).
	binary(SHL, func(shift, value word.Word) word.Word { return value.Shl(shift) })
	binary(SHR, func(shift, value word.Word) word.Word { return value.Shr(shift) })

	register(SHA3, opSHA3)
}

// opSHA3 pops (offset, size), reads that memory window, and pushes its
// keccak-256 digest (spec.md §4.5 "Bitwise" / §8 scenario 6).
func opSHA3(m *Machine, f *frame.Frame, pc uint64) error {
	offset, size, err := pop2(f)
	if err != nil {
		return err
	}
	data := f.Memory.Read(offset.Uint64(), size.Uint64())
	digest := state.Keccak256(data)
	if err := f.Stack.Push(word.FromBigEndian(digest)); err != nil {
		return err
	}
	advance(f, pc)
	return nil
}
