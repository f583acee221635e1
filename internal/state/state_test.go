package state

import (
	"testing"

	"github.com/Gealber/evm-simulator/internal/word"
)

func addr(b byte) word.Address {
	var a word.Address
	a[19] = b
	return a
}

func TestSStoreSLoadRoundTrip(t *testing.T) {
	s := New(nil)
	a := addr(1)
	s.InitAccount(a)

	slot := word.FromUint64(7)
	val := word.FromUint64(99)
	if err := s.SStore(a, slot, val); err != nil {
		t.Fatal(err)
	}
	if got := s.SLoad(a, slot); got != val {
		t.Fatalf("sload = %s, want %s", got, val)
	}
}

func TestSLoadAbsentSlotIsZero(t *testing.T) {
	s := New(nil)
	a := addr(2)
	s.InitAccount(a)
	if got := s.SLoad(a, word.FromUint64(123)); got != word.Zero {
		t.Fatalf("sload of absent slot = %s, want 0", got)
	}
}

func TestSStoreMissingAccountFails(t *testing.T) {
	s := New(nil)
	if err := s.SStore(addr(3), word.Zero, word.One); err == nil {
		t.Fatal("expected account-missing error for an uninitialised account")
	}
}

func TestTransferMovesBalance(t *testing.T) {
	s := New(nil)
	from, to := addr(1), addr(2)
	s.InitAccount(from)
	s.InitAccount(to)
	s.Accounts[from].Balance = word.FromUint64(100)

	if err := s.Transfer(from, to, word.FromUint64(40)); err != nil {
		t.Fatal(err)
	}
	if s.Accounts[from].Balance != word.FromUint64(60) {
		t.Fatalf("from balance = %s, want 60", s.Accounts[from].Balance)
	}
	if s.Accounts[to].Balance != word.FromUint64(40) {
		t.Fatalf("to balance = %s, want 40", s.Accounts[to].Balance)
	}
}

func TestTransferInsufficientBalance(t *testing.T) {
	s := New(nil)
	from, to := addr(1), addr(2)
	s.InitAccount(from)
	s.InitAccount(to)
	if err := s.Transfer(from, to, word.FromUint64(1)); err == nil {
		t.Fatal("expected insufficient-balance error")
	}
}

func TestSnapshotRestoreUndoesMutations(t *testing.T) {
	s := New(nil)
	a := addr(1)
	s.InitAccount(a)
	s.Accounts[a].Balance = word.FromUint64(1000)
	s.SStore(a, word.FromUint64(0), word.FromUint64(0x2e))

	snap := s.Snapshot()

	s.SStore(a, word.FromUint64(0), word.FromUint64(0xff))
	s.Accounts[a].Balance = word.FromUint64(1)
	s.AppendLog(LogRecord{Address: a})
	s.InitAccount(addr(9))

	s.Restore(snap)

	if got := s.SLoad(a, word.FromUint64(0)); got != word.FromUint64(0x2e) {
		t.Fatalf("slot 0 after restore = %s, want 0x2e", got)
	}
	if s.Accounts[a].Balance != word.FromUint64(1000) {
		t.Fatalf("balance after restore = %s, want 1000", s.Accounts[a].Balance)
	}
	if len(s.Logs) != 0 {
		t.Fatalf("logs after restore = %d, want 0", len(s.Logs))
	}
	if s.Exists(addr(9)) {
		t.Fatal("account created after snapshot should not survive restore")
	}
}

func TestPutCodeGetCodeContentAddressed(t *testing.T) {
	s := New(nil)
	a := addr(1)
	code := []byte{0x60, 0x01, 0x60, 0x00}
	if err := s.PutCode(a, code); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetCode(a)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(code) {
		t.Fatalf("code = %x, want %x", got, code)
	}
}

func TestStaticModeForbidsMutation(t *testing.T) {
	s := New(nil)
	a := addr(1)
	s.InitAccount(a)
	s.StaticMode = true

	if err := s.SStore(a, word.Zero, word.One); err == nil {
		t.Fatal("expected static-violation on SSTORE")
	}
	if err := s.Transfer(a, a, word.Zero); err == nil {
		t.Fatal("expected static-violation on Transfer")
	}
	if err := s.AppendLog(LogRecord{Address: a}); err == nil {
		t.Fatal("expected static-violation on AppendLog")
	}
}
