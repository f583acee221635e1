package simulator

import (
	"testing"

	"github.com/Gealber/evm-simulator/internal/frame"
	"github.com/Gealber/evm-simulator/internal/interpreter"
	"github.com/Gealber/evm-simulator/internal/word"
)

func TestSimulateAddition(t *testing.T) {
	// PUSH1 1, PUSH1 2, ADD, PUSH1 0, MSTORE, PUSH1 32, PUSH1 0, RETURN
	code := []byte{
		byte(interpreter.PUSH1), 0x01,
		byte(interpreter.PUSH1), 0x02,
		byte(interpreter.ADD),
		byte(interpreter.PUSH1), 0x00,
		byte(interpreter.MSTORE),
		byte(interpreter.PUSH1), 0x20,
		byte(interpreter.PUSH1), 0x00,
		byte(interpreter.RETURN),
	}

	sim := Simulation{
		Callee: addrFor(0x11),
		Code:   code,
	}

	result, err := New().Simulate(sim)
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != frame.HaltedOk {
		t.Fatalf("status = %s, want Halted-Ok (err=%v)", result.Status, result.Err)
	}
	if got := word.FromBigEndian(result.ReturnData); got != word.FromUint64(3) {
		t.Fatalf("return data = %s, want 3", got)
	}
}

func TestSimulateEmptyBytecodeFails(t *testing.T) {
	sim := Simulation{Callee: addrFor(0x11)}
	if _, err := New().Simulate(sim); err == nil {
		t.Fatal("expected an error for zero-length bytecode")
	}
}

func TestSimulateRevert(t *testing.T) {
	// PUSH1 0, PUSH1 0, REVERT
	code := []byte{
		byte(interpreter.PUSH1), 0x00,
		byte(interpreter.PUSH1), 0x00,
		byte(interpreter.REVERT),
	}
	sim := Simulation{Callee: addrFor(0x11), Code: code}

	result, err := New().Simulate(sim)
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != frame.HaltedRevert {
		t.Fatalf("status = %s, want Halted-Revert", result.Status)
	}
}

func addrFor(b byte) word.Address {
	var a word.Address
	a[19] = b
	return a
}
