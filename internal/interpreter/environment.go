package interpreter

import (
	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/state"
	"github.com/Gealber/evm-simulator/internal/word"
)

func init() {
	pushFn(ADDRESS, func(m *Machine, f *frame.Frame) word.Word { return word.FromAddress(f.Callee) })
	pushFn(ORIGIN, func(m *Machine, f *frame.Frame) word.Word { return word.FromAddress(f.Origin) })
	pushFn(CALLER, func(m *Machine, f *frame.Frame) word.Word { return word.FromAddress(f.Caller) })
	pushFn(CALLVALUE, func(m *Machine, f *frame.Frame) word.Word { return f.CallValue })

	register(BALANCE, func(m *Machine, f *frame.Frame, pc uint64) error {
		addrWord, err := pop1(f)
		if err != nil {
			return err
		}
		if err := f.Stack.Push(m.balanceOf(addrWord.Address())); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})

	pushFn(SELFBALANCE, func(m *Machine, f *frame.Frame) word.Word { return m.balanceOf(f.Callee) })

	register(CALLDATALOAD, func(m *Machine, f *frame.Frame, pc uint64) error {
		offset, err := pop1(f)
		if err != nil {
			return err
		}
		if err := f.Stack.Push(word.FromBigEndian(windowOf(f.CallData, offset.Uint64(), 32))); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})

	pushFn(CALLDATASIZE, func(m *Machine, f *frame.Frame) word.Word {
		return word.FromUint64(uint64(len(f.CallData)))
	})

	register(CALLDATACOPY, func(m *Machine, f *frame.Frame, pc uint64) error {
		destOffset, srcOffset, size, err := pop3(f)
		if err != nil {
			return err
		}
		f.Memory.Write(destOffset.Uint64(), windowOf(f.CallData, srcOffset.Uint64(), size.Uint64()))
		advance(f, pc)
		return nil
	})

	pushFn(CODESIZE, func(m *Machine, f *frame.Frame) word.Word {
		return word.FromUint64(uint64(len(f.Code)))
	})

	register(CODECOPY, func(m *Machine, f *frame.Frame, pc uint64) error {
		destOffset, srcOffset, size, err := pop3(f)
		if err != nil {
			return err
		}
		f.Memory.Write(destOffset.Uint64(), windowOf(f.Code, srcOffset.Uint64(), size.Uint64()))
		advance(f, pc)
		return nil
	})

	pushConst(GASPRICE, placeholderGasPrice)

	register(EXTCODESIZE, func(m *Machine, f *frame.Frame, pc uint64) error {
		addrWord, err := pop1(f)
		if err != nil {
			return err
		}
		code, _ := m.World.GetCode(addrWord.Address())
		if err := f.Stack.Push(word.FromUint64(uint64(len(code)))); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})

	register(EXTCODECOPY, func(m *Machine, f *frame.Frame, pc uint64) error {
		addrWord, err := pop1(f)
		if err != nil {
			return err
		}
		destOffset, srcOffset, size, err := pop3(f)
		if err != nil {
			return err
		}
		code, _ := m.World.GetCode(addrWord.Address())
		f.Memory.Write(destOffset.Uint64(), windowOf(code, srcOffset.Uint64(), size.Uint64()))
		advance(f, pc)
		return nil
	})

	pushFn(RETURNDATASIZE, func(m *Machine, f *frame.Frame) word.Word {
		return word.FromUint64(uint64(len(f.ReturnData)))
	})

	register(RETURNDATACOPY, func(m *Machine, f *frame.Frame, pc uint64) error {
		destOffset, srcOffset, size, err := pop3(f)
		if err != nil {
			return err
		}
		f.Memory.Write(destOffset.Uint64(), windowOf(f.ReturnData, srcOffset.Uint64(), size.Uint64()))
		advance(f, pc)
		return nil
	})

	register(EXTCODEHASH, func(m *Machine, f *frame.Frame, pc uint64) error {
		addrWord, err := pop1(f)
		if err != nil {
			return err
		}
		code, codeErr := m.World.GetCode(addrWord.Address())
		result := word.Zero
		if codeErr == nil {
			result = word.FromBigEndian(state.Keccak256(code))
		}
		if err := f.Stack.Push(result); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})

	register(BLOCKHASH, func(m *Machine, f *frame.Frame, pc uint64) error {
		number, err := pop1(f)
		if err != nil {
			return err
		}
		if err := f.Stack.Push(word.FromBigEndian(state.Keccak256(number.Bytes()))); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	})

	pushConst(COINBASE, placeholderCoinbase)
	pushFn(TIMESTAMP, func(m *Machine, f *frame.Frame) word.Word { return placeholderTimestamp() })
	pushConst(NUMBER, placeholderNumber)
	pushConst(DIFFICULTY, placeholderDiff)
	pushConst(GASLIMIT, placeholderGasLimit)
	pushConst(CHAINID, placeholderChainID)
	pushConst(BASEFEE, placeholderBaseFee)
}

// balanceOf returns addr's balance, or zero for an account with no record.
func (m *Machine) balanceOf(addr word.Address) word.Word {
	acc, ok := m.World.Accounts[addr]
	if !ok {
		return word.Zero
	}
	return acc.Balance
}

// windowOf copies size bytes starting at offset out of src, zero-padding
// past the end of src (CALLDATALOAD/CALLDATACOPY/CODECOPY/EXTCODECOPY/
// RETURNDATACOPY all share this "reads past end are zero" rule, spec.md §4.5).
func windowOf(src []byte, offset, size uint64) []byte {
	buf := make([]byte, size)
	for i := uint64(0); i < size; i++ {
		idx := offset + i
		if idx < uint64(len(src)) {
			buf[i] = src[idx]
		}
	}
	return buf
}
