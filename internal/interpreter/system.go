package interpreter

import (
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Gealber/evm-simulator/internal/evmerr"
	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/memory"
	"github.com/Gealber/evm-simulator/internal/stack"
	"github.com/Gealber/evm-simulator/internal/state"
	"github.com/Gealber/evm-simulator/internal/word"
)

func init() {
	register(RETURN, opReturn)
	register(REVERT, opRevert)
	register(INVALID, opInvalid)
	register(CALLCODE, opCallcode)
	register(CALL, opCall)
	register(DELEGATECALL, opDelegatecall)
	register(STATICCALL, opStaticcall)
	register(CREATE, opCreate)
	register(CREATE2, opCreate2)
	register(SELFDESTRUCT, opSelfdestruct)

	// unrecognised/unassigned opcode bytes already dispatch as
	// {invalid-opcode} because dispatchTable[op] is nil for them (see
	// Machine.Run); INVALID registers the same behaviour explicitly so the
	// byte 0xfe is documented rather than merely falling through.
}

func opReturn(m *Machine, f *frame.Frame, pc uint64) error {
	offset, size, err := pop2(f)
	if err != nil {
		return err
	}
	f.ReturnData = f.Memory.Read(offset.Uint64(), size.Uint64())
	f.Halt(frame.HaltedOk, nil)
	return nil
}

func opRevert(m *Machine, f *frame.Frame, pc uint64) error {
	offset, size, err := pop2(f)
	if err != nil {
		return err
	}
	data := f.Memory.Read(offset.Uint64(), size.Uint64())
	return &evmerr.RevertError{Data: data}
}

func opInvalid(m *Machine, f *frame.Frame, pc uint64) error {
	return evmerr.ErrInvalidOpcode
}

// opCallcode detects CALLCODE and signals {not-implemented} without
// attempting to reproduce its semantics, per spec.md §4.5.
func opCallcode(m *Machine, f *frame.Frame, pc uint64) error {
	return evmerr.ErrNotImplemented
}

func opSelfdestruct(m *Machine, f *frame.Frame, pc uint64) error {
	beneficiaryWord, err := pop1(f)
	if err != nil {
		return err
	}
	if m.World.StaticMode {
		return evmerr.ErrStaticViolation
	}
	beneficiary := beneficiaryWord.Address()
	if _, ok := m.World.Accounts[beneficiary]; !ok {
		m.World.InitAccount(beneficiary)
	}
	if err := m.World.Transfer(f.Callee, beneficiary, m.balanceOf(f.Callee)); err != nil {
		return err
	}
	m.World.DeleteAccount(f.Callee)
	f.Halt(frame.HaltedOk, nil)
	return nil
}

// --- CALL-class opcodes ---

func opCall(m *Machine, f *frame.Frame, pc uint64) error {
	return dispatchCall(m, f, pc, callKindCall)
}

func opDelegatecall(m *Machine, f *frame.Frame, pc uint64) error {
	return dispatchCall(m, f, pc, callKindDelegate)
}

func opStaticcall(m *Machine, f *frame.Frame, pc uint64) error {
	return dispatchCall(m, f, pc, callKindStatic)
}

type callKind int

const (
	callKindCall callKind = iota
	callKindDelegate
	callKindStatic
)

// dispatchCall implements spec.md §5's snapshot/install/run/restore
// protocol for CALL, DELEGATECALL, and STATICCALL. It pops the
// kind-appropriate operands, builds the child frame per §5.1/§5.2, runs it
// to completion, writes the (possibly truncated/padded) return window into
// the parent's memory, and pushes the 1/0 result.
func dispatchCall(m *Machine, f *frame.Frame, pc uint64, kind callKind) error {
	var gasWord, toWord, valueWord, inOff, inSize, outOff, outSize word.Word
	var err error

	gasWord, err = pop1(f)
	if err != nil {
		return err
	}
	toWord, err = pop1(f)
	if err != nil {
		return err
	}
	if kind == callKindCall {
		valueWord, err = pop1(f)
		if err != nil {
			return err
		}
	}
	inOff, err = pop1(f)
	if err != nil {
		return err
	}
	inSize, err = pop1(f)
	if err != nil {
		return err
	}
	outOff, err = pop1(f)
	if err != nil {
		return err
	}
	outSize, err = pop1(f)
	if err != nil {
		return err
	}
	_ = gasWord // only seeds the child's GasRemaining below; nothing meters it

	if kind == callKindCall && m.World.StaticMode && !valueWord.IsZero() {
		return evmerr.ErrStaticViolation
	}

	to := toWord.Address()
	callData := f.Memory.Read(inOff.Uint64(), inSize.Uint64())

	if f.Depth+1 > m.MaxDepth {
		if err := f.Stack.Push(word.Zero); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	}

	snap := m.World.Snapshot()

	child := &frame.Frame{
		Code:         nil,
		Stack:        stack.New(),
		Memory:       memory.New(),
		CallData:     callData,
		GasRemaining: gasWord.Uint64(),
		Depth:        f.Depth + 1,
		DebugLevel:   f.DebugLevel,
		Status:       frame.Running,
	}

	switch kind {
	case callKindDelegate:
		child.Caller = f.Caller
		child.Origin = f.Origin
		child.Callee = f.Callee
		child.CallValue = f.CallValue
	case callKindStatic:
		child.Caller = f.Callee
		child.Origin = f.Origin
		child.Callee = to
		child.CallValue = word.Zero
	default: // callKindCall
		child.Caller = f.Callee
		child.Origin = f.Origin
		child.Callee = to
		child.CallValue = valueWord
	}

	code, codeErr := m.World.GetCode(to)
	if codeErr != nil {
		code = nil
	}
	child.Code = code

	prevStatic := m.World.StaticMode
	if kind == callKindStatic {
		m.World.StaticMode = true
	}

	var callErr error
	if kind == callKindCall && !valueWord.IsZero() {
		if !m.World.Exists(to) {
			m.World.InitAccount(to)
		}
		callErr = m.World.Transfer(f.Callee, to, valueWord)
	}

	if callErr == nil {
		m.Run(child)
	} else {
		child.Halt(frame.HaltedError, callErr)
	}

	m.World.StaticMode = prevStatic

	f.ReturnData = child.ReturnData
	writeOutput(f, outOff.Uint64(), outSize.Uint64(), child.ReturnData)

	success := child.Status == frame.HaltedOk
	if !success {
		m.World.Restore(snap)
		f.ReturnData = child.ReturnData // revert payload must survive the restore
	}

	// Observed teacher/source behaviour: the caller's own nonce is bumped
	// after every sub-call (spec.md §9 flags this as diverging from
	// mainline EVM semantics, where only CREATE/CREATE2 touch the
	// creator's nonce; we keep the documented-but-odd behaviour rather
	// than silently "fixing" it).
	if acc, ok := m.World.Accounts[f.Callee]; ok {
		acc.Nonce++
	}

	if err := f.Stack.Push(boolToWord(success)); err != nil {
		return err
	}
	advance(f, pc)
	return nil
}

// --- CREATE-class opcodes ---

func opCreate(m *Machine, f *frame.Frame, pc uint64) error {
	value, offset, size, err := pop3(f)
	if err != nil {
		return err
	}
	initCode := f.Memory.Read(offset.Uint64(), size.Uint64())

	callerNonce := m.nonceOf(f.Callee)
	newAddrCommon := crypto.CreateAddress(gethcommon.Address(f.Callee), callerNonce)
	newAddr := word.AddressFromCommon(newAddrCommon)

	return executeCreate(m, f, pc, newAddr, value, initCode)
}

func opCreate2(m *Machine, f *frame.Frame, pc uint64) error {
	value, offset, size, err := pop3(f)
	if err != nil {
		return err
	}
	salt, err := pop1(f)
	if err != nil {
		return err
	}
	initCode := f.Memory.Read(offset.Uint64(), size.Uint64())

	initCodeHash := state.Keccak256(initCode)
	newAddrCommon := crypto.CreateAddress2(gethcommon.Address(f.Callee), [32]byte(salt), initCodeHash)
	newAddr := word.AddressFromCommon(newAddrCommon)

	return executeCreate(m, f, pc, newAddr, value, initCode)
}

// executeCreate runs the shared CREATE/CREATE2 tail: snapshot, install the
// init-code constructor frame, run it, install its return bytes as runtime
// code, transfer value, and push the new address on success or zero on
// failure (the Yellow-Paper-intended behaviour spec.md §9 pins down among
// several conflicting source revisions).
func executeCreate(m *Machine, f *frame.Frame, pc uint64, newAddr word.Address, value word.Word, initCode []byte) error {
	if m.World.StaticMode {
		return evmerr.ErrStaticViolation
	}
	if f.Depth+1 > m.MaxDepth {
		if err := f.Stack.Push(word.Zero); err != nil {
			return err
		}
		advance(f, pc)
		return nil
	}

	snap := m.World.Snapshot()

	if !m.World.Exists(newAddr) {
		m.World.InitAccount(newAddr)
	}

	child := frame.New(initCode, nil, f.Callee, f.Origin, newAddr, value, 0, f.DebugLevel)
	child.Depth = f.Depth + 1

	transferErr := m.World.Transfer(f.Callee, newAddr, value)
	if transferErr == nil {
		m.Run(child)
	} else {
		child.Halt(frame.HaltedError, transferErr)
	}

	success := child.Status == frame.HaltedOk
	if success {
		if err := m.World.PutCode(newAddr, child.ReturnData); err != nil {
			success = false
		}
	}

	f.ReturnData = child.ReturnData

	if !success {
		m.World.Restore(snap)
	}

	if acc, ok := m.World.Accounts[f.Callee]; ok {
		acc.Nonce++
	}

	var result word.Word
	if success {
		result = word.FromAddress(newAddr)
	}
	if err := f.Stack.Push(result); err != nil {
		return err
	}
	advance(f, pc)
	return nil
}

func (m *Machine) nonceOf(addr word.Address) uint64 {
	acc, ok := m.World.Accounts[addr]
	if !ok {
		return 0
	}
	return acc.Nonce
}

func boolToWord(b bool) word.Word {
	if b {
		return word.One
	}
	return word.Zero
}

// writeOutput copies at most outSize bytes of ret into f's memory at
// outOff, zero-padding if ret is shorter (spec.md §5 step 7).
func writeOutput(f *frame.Frame, outOff, outSize uint64, ret []byte) {
	if outSize == 0 {
		return
	}
	buf := make([]byte, outSize)
	copy(buf, ret)
	f.Memory.Write(outOff, buf)
}
