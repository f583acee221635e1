package word

import "testing"

func TestAddSubInverse(t *testing.T) {
	a := FromUint64(123456789)
	b := FromUint64(987654321)
	got := a.Add(b.Sub(a))
	if got != b {
		t.Fatalf("add(a, sub(b, a)) = %s, want %s", got, b)
	}
}

func TestAddCommutative(t *testing.T) {
	a := FromUint64(111)
	b := FromUint64(222)
	if a.Add(b) != b.Add(a) {
		t.Fatalf("addition is not commutative for %s, %s", a, b)
	}
}

func TestDivModIdentity(t *testing.T) {
	a := FromUint64(100)
	b := FromUint64(7)
	got := a.Div(b).Mul(b).Add(a.Mod(b))
	if got != a {
		t.Fatalf("div/mod identity broken: got %s, want %s", got, a)
	}
}

func TestDivByZero(t *testing.T) {
	a := FromUint64(100)
	if got := a.Div(Zero); got != Zero {
		t.Fatalf("div by zero = %s, want 0", got)
	}
	if got := a.Mod(Zero); got != Zero {
		t.Fatalf("mod by zero = %s, want 0", got)
	}
}

func TestNotInvolution(t *testing.T) {
	a := FromUint64(0xdeadbeef)
	if got := a.Not().Not(); got != a {
		t.Fatalf("not(not(a)) = %s, want %s", got, a)
	}
}

func TestXorSelf(t *testing.T) {
	a := FromUint64(42)
	if got := a.Xor(a); got != Zero {
		t.Fatalf("xor(a, a) = %s, want 0", got)
	}
}

func TestIsZeroWord(t *testing.T) {
	if FromUint64(0).IsZeroWord() != One {
		t.Fatal("iszero(0) should be 1")
	}
	if FromUint64(1).IsZeroWord() != Zero {
		t.Fatal("iszero(1) should be 0")
	}
	if Zero.IsZeroWord().IsZeroWord() != Zero {
		t.Fatal("iszero(iszero(0)) should be 0")
	}
	nonZero := FromUint64(7)
	if nonZero.IsZeroWord().IsZeroWord() != One {
		t.Fatal("iszero(iszero(nonzero)) should be 1")
	}
}

func TestSubUnderflowWraps(t *testing.T) {
	// PUSH1 1, PUSH1 0, SUB pops a=0 (top), b=1 (second); a-b wraps to all-FF.
	got := Zero.Sub(One)
	var want Word
	for i := range want {
		want[i] = 0xff
	}
	if got != want {
		t.Fatalf("0 - 1 = %s, want all-FF", got)
	}
}

func TestSDivMinInt256OverNegOne(t *testing.T) {
	var minBytes [32]byte
	minBytes[0] = 0x80
	minInt256 := FromBytes32(minBytes)

	var negOne Word
	for i := range negOne {
		negOne[i] = 0xff
	}

	got := minInt256.SDiv(negOne)
	if got != minInt256 {
		t.Fatalf("MinInt256 / -1 = %s, want MinInt256 (%s)", got, minInt256)
	}
}

func TestShiftOverflowYieldsZero(t *testing.T) {
	a := FromUint64(1)
	shift := FromUint64(256)
	if got := a.Shl(shift); got != Zero {
		t.Fatalf("shl by >=256 = %s, want 0", got)
	}
	if got := a.Shr(shift); got != Zero {
		t.Fatalf("shr by >=256 = %s, want 0", got)
	}
}
