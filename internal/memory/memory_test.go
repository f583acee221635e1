package memory

import (
	"bytes"
	"testing"

	"github.com/Gealber/evm-simulator/internal/word"
)

func TestWriteReadRoundTrip(t *testing.T) {
	m := New()
	data := []byte{0x01, 0x02, 0x03, 0x04}
	m.Write(10, data)
	got := m.Read(10, uint64(len(data)))
	if !bytes.Equal(got, data) {
		t.Fatalf("read after write = %x, want %x", got, data)
	}
}

func TestSizeAlwaysMultipleOf32(t *testing.T) {
	m := New()
	m.Write(5, []byte{0xff})
	if m.Size()%32 != 0 {
		t.Fatalf("size %d is not a multiple of 32", m.Size())
	}
}

func TestFreshMemoryReadsZero(t *testing.T) {
	m := New()
	got := m.Read(0, 32)
	for i, b := range got {
		if b != 0 {
			t.Fatalf("byte %d of fresh memory = %x, want 0", i, b)
		}
	}
}

func TestLoadStoreWordRoundTrip(t *testing.T) {
	m := New()
	w := word.FromUint64(0xdeadbeef)
	m.StoreWord(0, w)
	if got := m.LoadWord(0); got != w {
		t.Fatalf("load after store = %s, want %s", got, w)
	}
}

func TestExpansionCostMonotonic(t *testing.T) {
	if ExpansionCost(0, 0) != 0 {
		t.Fatal("no growth should cost nothing")
	}
	small := ExpansionCost(0, 32)
	large := ExpansionCost(0, 32*1000)
	if large <= small {
		t.Fatalf("expansion cost should grow with size: small=%d large=%d", small, large)
	}
}
