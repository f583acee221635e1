// Package state implements the per-account persistent storage, the
// content-addressed code table, and the log buffer that together make up
// the world state of spec.md §3/§4.4. Remote reads (storage slots, code)
// are lazily delegated to an injected Fetcher the first time an absent
// account or slot is touched, mirroring the teacher's
// registerAddressStorage/registerAddressCodeForCalls on-demand fetch-and-
// cache policy in vm/interpreter.go.
package state

import (
	"golang.org/x/crypto/sha3"

	"github.com/Gealber/evm-simulator/internal/evmerr"
	"github.com/Gealber/evm-simulator/internal/word"
)

// Fetcher is the optional remote collaborator (§6 "remote fetcher
// adapter"). Both operations are synchronous and may fail; failure is
// handled by the caller per spec.md §4.4 (zero word for storage, {code-missing}
// for code).
type Fetcher interface {
	GetStorageAt(addr word.Address, slot word.Word) (word.Word, error)
	GetCode(addr word.Address) ([]byte, error)
}

// Account is the persistent per-address record.
type Account struct {
	Nonce    uint64
	Balance  word.Word
	Storage  map[word.Word]word.Word
	CodeHash word.Word
}

func newAccount() *Account {
	return &Account{Storage: make(map[word.Word]word.Word)}
}

// LogRecord is one emitted event, per spec.md §3.
type LogRecord struct {
	Address word.Address
	Topics  []word.Word
	Data    []byte
}

// WorldState is the single mutable aggregate owned by one outermost
// execution: accounts, the content-addressed code table, the log buffer,
// and the static-mode flag (monotonically true for a STATICCALL subtree).
type WorldState struct {
	Accounts   map[word.Address]*Account
	Codes      map[word.Word][]byte
	Logs       []LogRecord
	StaticMode bool
	Fetcher    Fetcher
}

// New returns an empty world state, optionally backed by a Fetcher for lazy
// remote reads (pass nil for a purely local, pre-populated world).
func New(fetcher Fetcher) *WorldState {
	return &WorldState{
		Accounts: make(map[word.Address]*Account),
		Codes:    make(map[word.Word][]byte),
		Fetcher:  fetcher,
	}
}

// Exists reports whether addr has an account record.
func (s *WorldState) Exists(addr word.Address) bool {
	_, ok := s.Accounts[addr]
	return ok
}

// InitAccount is idempotent: absent addresses get a fresh zero-valued
// record whose nonce is then bumped to 1; existing addresses are untouched.
func (s *WorldState) InitAccount(addr word.Address) {
	if _, ok := s.Accounts[addr]; ok {
		return
	}
	acc := newAccount()
	acc.Nonce = 1
	s.Accounts[addr] = acc
}

// DeleteAccount removes the account record entirely (SELFDESTRUCT).
func (s *WorldState) DeleteAccount(addr word.Address) {
	delete(s.Accounts, addr)
}

// SLoad reads a storage slot, lazily fetching from the remote collaborator
// the first time an unknown account is touched.
func (s *WorldState) SLoad(addr word.Address, slot word.Word) word.Word {
	acc, ok := s.Accounts[addr]
	if ok {
		if v, present := acc.Storage[slot]; present {
			return v
		}
		return word.Zero
	}
	if s.Fetcher == nil {
		return word.Zero
	}
	v, err := s.Fetcher.GetStorageAt(addr, slot)
	if err != nil {
		return word.Zero
	}
	// cache into a freshly materialised account record
	cached := newAccount()
	cached.Storage[slot] = v
	s.Accounts[addr] = cached
	return v
}

// SStore writes a storage slot. Fails in static mode or against a
// never-initialised account.
func (s *WorldState) SStore(addr word.Address, slot, value word.Word) error {
	if s.StaticMode {
		return evmerr.ErrStaticViolation
	}
	acc, ok := s.Accounts[addr]
	if !ok {
		return evmerr.ErrAccountMissing
	}
	acc.Storage[slot] = value
	return nil
}

// Transfer moves value from one account's balance to another's.
func (s *WorldState) Transfer(from, to word.Address, value word.Word) error {
	if s.StaticMode {
		return evmerr.ErrStaticViolation
	}
	fromAcc, ok := s.Accounts[from]
	if !ok {
		return evmerr.ErrAccountMissing
	}
	toAcc, ok := s.Accounts[to]
	if !ok {
		return evmerr.ErrAccountMissing
	}
	if fromAcc.Balance.Big().Cmp(value.Big()) < 0 {
		return evmerr.ErrInsufficientBalance
	}
	fromAcc.Balance = fromAcc.Balance.Sub(value)
	toAcc.Balance = toAcc.Balance.Add(value)
	return nil
}

// GetCode returns the bytes stored under addr's code hash, lazily fetching
// from the remote collaborator if the account is unknown locally.
func (s *WorldState) GetCode(addr word.Address) ([]byte, error) {
	if acc, ok := s.Accounts[addr]; ok {
		if acc.CodeHash.IsZero() {
			return nil, nil
		}
		code, ok := s.Codes[acc.CodeHash]
		if !ok {
			return nil, evmerr.ErrCodeMissing
		}
		return code, nil
	}
	if s.Fetcher == nil {
		return nil, evmerr.ErrCodeMissing
	}
	code, err := s.Fetcher.GetCode(addr)
	if err != nil {
		return nil, evmerr.ErrCodeMissing
	}
	hash := s.insertCode(code)
	acc := newAccount()
	acc.CodeHash = hash
	s.Accounts[addr] = acc
	return code, nil
}

// PutCode installs bytes as addr's code, content-addressing it by
// keccak-256 in the code table. Fails in static mode.
func (s *WorldState) PutCode(addr word.Address, code []byte) error {
	if s.StaticMode {
		return evmerr.ErrStaticViolation
	}
	hash := s.insertCode(code)
	acc, ok := s.Accounts[addr]
	if !ok {
		acc = newAccount()
		s.Accounts[addr] = acc
	}
	acc.CodeHash = hash
	return nil
}

// insertCode content-addresses code into the table if not already present
// and returns its hash. The empty string is conventionally represented by
// the zero word, meaning "no code installed" (spec.md §3).
func (s *WorldState) insertCode(code []byte) word.Word {
	if len(code) == 0 {
		return word.Zero
	}
	hash := word.FromBigEndian(Keccak256(code))
	if _, ok := s.Codes[hash]; !ok {
		s.Codes[hash] = code
	}
	return hash
}

// AppendLog records a log emission in order. Fails in static mode.
func (s *WorldState) AppendLog(rec LogRecord) error {
	if s.StaticMode {
		return evmerr.ErrStaticViolation
	}
	s.Logs = append(s.Logs, rec)
	return nil
}

// Keccak256 hashes data with the Yellow-Paper-specified keccak-256 function.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}
