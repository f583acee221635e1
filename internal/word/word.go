// Package word implements the 256-bit big-endian arithmetic that underlies
// every opcode: wrapping add/sub/mul/exp, checked div/mod, signed
// arithmetic with truncation toward zero, bitwise and shift operations, and
// comparisons. Internally it defers to uint256.Int (the same four-limb
// representation the teacher stack uses), exposing only the big-endian byte
// view the interpreter and the rest of the module need.
package word

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Word is a fixed-width 32-byte big-endian value, interpreted as an
// unsigned or two's-complement signed 256-bit integer depending on the
// operation.
type Word [32]byte

// Address is a fixed-width 20-byte account identifier.
type Address [20]byte

// Hex renders the address as a go-ethereum-style 0x-prefixed hex string.
func (a Address) Hex() string {
	return common.BytesToAddress(a[:]).Hex()
}

// Common converts to a go-ethereum common.Address for interop at the RPC
// and CLI boundary.
func (a Address) Common() common.Address {
	return common.Address(a)
}

// AddressFromCommon converts a go-ethereum common.Address into our Address.
func AddressFromCommon(a common.Address) Address {
	return Address(a)
}

// Zero is the additive identity.
var Zero = Word{}

// One is the multiplicative identity.
var One = FromUint64(1)

// FromBytes32 copies a 32-byte big-endian buffer into a Word.
func FromBytes32(b [32]byte) Word {
	return Word(b)
}

// FromBigEndian left-pads (or truncates from the left) b into a 32-byte Word.
func FromBigEndian(b []byte) Word {
	var w Word
	if len(b) >= 32 {
		copy(w[:], b[len(b)-32:])
		return w
	}
	copy(w[32-len(b):], b)
	return w
}

// FromUint64 builds a Word from a small unsigned integer.
func FromUint64(v uint64) Word {
	return FromBigEndian(new(uint256.Int).SetUint64(v).Bytes32()[:])
}

// FromBig converts a non-negative math/big.Int, truncating modulo 2^256.
func FromBig(v *big.Int) Word {
	var u uint256.Int
	u.SetFromBig(v)
	b := u.Bytes32()
	return Word(b)
}

// FromAddress left-pads a 20-byte address into a word.
func FromAddress(a Address) Word {
	var w Word
	copy(w[12:], a[:])
	return w
}

// Bytes returns the 32-byte big-endian encoding.
func (w Word) Bytes() []byte {
	b := make([]byte, 32)
	copy(b, w[:])
	return b
}

// Address extracts the low 20 bytes as an address.
func (w Word) Address() Address {
	var a Address
	copy(a[:], w[12:])
	return a
}

// Uint64 returns the low 64 bits, discarding anything above.
func (w Word) Uint64() uint64 {
	return w.toU256().Uint64()
}

// Big returns the value as an unsigned math/big.Int.
func (w Word) Big() *big.Int {
	return w.toU256().ToBig()
}

// Hash renders w as a go-ethereum common.Hash, for interop with the rest of
// the dependency surface (logging, RPC encoding).
func (w Word) Hash() common.Hash {
	return common.Hash(w)
}

func (w Word) toU256() *uint256.Int {
	var u uint256.Int
	u.SetBytes32(w[:])
	return &u
}

func fromU256(u *uint256.Int) Word {
	b := u.Bytes32()
	return Word(b)
}

// IsZero reports whether w is the zero word.
func (w Word) IsZero() bool {
	return w == Zero
}

// Eq reports bit-for-bit equality.
func (w Word) Eq(o Word) bool {
	return w == o
}

// --- arithmetic: wrapping on 256 bits ---

func (w Word) Add(o Word) Word {
	a, b := w.toU256(), o.toU256()
	var r uint256.Int
	r.Add(a, b)
	return fromU256(&r)
}

func (w Word) Sub(o Word) Word {
	a, b := w.toU256(), o.toU256()
	var r uint256.Int
	r.Sub(a, b)
	return fromU256(&r)
}

func (w Word) Mul(o Word) Word {
	a, b := w.toU256(), o.toU256()
	var r uint256.Int
	r.Mul(a, b)
	return fromU256(&r)
}

// Div is unsigned integer division; divisor zero yields zero (EVM convention).
func (w Word) Div(o Word) Word {
	a, b := w.toU256(), o.toU256()
	var r uint256.Int
	r.Div(a, b)
	return fromU256(&r)
}

// Mod is unsigned remainder; divisor zero yields zero.
func (w Word) Mod(o Word) Word {
	a, b := w.toU256(), o.toU256()
	var r uint256.Int
	r.Mod(a, b)
	return fromU256(&r)
}

// SDiv is signed division truncating toward zero; divisor zero yields zero,
// and MinInt256 / -1 wraps back to MinInt256.
func (w Word) SDiv(o Word) Word {
	a, b := w.toU256(), o.toU256()
	var r uint256.Int
	r.SDiv(a, b)
	return fromU256(&r)
}

// SMod is signed remainder truncating toward zero; divisor zero yields zero.
func (w Word) SMod(o Word) Word {
	a, b := w.toU256(), o.toU256()
	var r uint256.Int
	r.SMod(a, b)
	return fromU256(&r)
}

// AddMod computes (w+o) mod m with no intermediate overflow; m == 0 yields zero.
func (w Word) AddMod(o, m Word) Word {
	a, b, n := w.toU256(), o.toU256(), m.toU256()
	var r uint256.Int
	r.AddMod(a, b, n)
	return fromU256(&r)
}

// MulMod computes (w*o) mod m with no intermediate overflow; m == 0 yields zero.
func (w Word) MulMod(o, m Word) Word {
	a, b, n := w.toU256(), o.toU256(), m.toU256()
	var r uint256.Int
	r.MulMod(a, b, n)
	return fromU256(&r)
}

// Exp computes w**o, wrapping modulo 2^256.
func (w Word) Exp(o Word) Word {
	a, b := w.toU256(), o.toU256()
	var r uint256.Int
	r.Exp(a, b)
	return fromU256(&r)
}

// --- comparisons: produce the canonical 0/1 words ---

func boolWord(b bool) Word {
	if b {
		return One
	}
	return Zero
}

func (w Word) Lt(o Word) Word  { return boolWord(w.toU256().Lt(o.toU256())) }
func (w Word) Gt(o Word) Word  { return boolWord(w.toU256().Gt(o.toU256())) }
func (w Word) Slt(o Word) Word { return boolWord(w.toU256().Slt(o.toU256())) }
func (w Word) Sgt(o Word) Word { return boolWord(w.toU256().Sgt(o.toU256())) }
func (w Word) EqWord(o Word) Word {
	return boolWord(w.toU256().Eq(o.toU256()))
}
func (w Word) IsZeroWord() Word { return boolWord(w.IsZero()) }

// --- bitwise ---

func (w Word) And(o Word) Word {
	a, b := w.toU256(), o.toU256()
	var r uint256.Int
	r.And(a, b)
	return fromU256(&r)
}

func (w Word) Or(o Word) Word {
	a, b := w.toU256(), o.toU256()
	var r uint256.Int
	r.Or(a, b)
	return fromU256(&r)
}

func (w Word) Xor(o Word) Word {
	a, b := w.toU256(), o.toU256()
	var r uint256.Int
	r.Xor(a, b)
	return fromU256(&r)
}

func (w Word) Not() Word {
	a := w.toU256()
	var r uint256.Int
	r.Not(a)
	return fromU256(&r)
}

// Shl shifts w left by the number of positions given in shift; shift >= 256
// produces zero.
func (w Word) Shl(shift Word) Word {
	if shiftOverflows(shift) {
		return Zero
	}
	a := w.toU256()
	var r uint256.Int
	r.Lsh(a, uint(shift.Uint64()))
	return fromU256(&r)
}

// Shr is the logical (unsigned) right shift counterpart to Shl.
func (w Word) Shr(shift Word) Word {
	if shiftOverflows(shift) {
		return Zero
	}
	a := w.toU256()
	var r uint256.Int
	r.Rsh(a, uint(shift.Uint64()))
	return fromU256(&r)
}

func shiftOverflows(shift Word) bool {
	// any nonzero byte above the low 8 bits means shift >= 256
	for i := 0; i < 31; i++ {
		if shift[i] != 0 {
			return true
		}
	}
	return false
}

// String renders w as 0x-prefixed hex, for logging.
func (w Word) String() string {
	return "0x" + new(big.Int).SetBytes(w[:]).Text(16)
}
