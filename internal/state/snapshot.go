package state

import "github.com/Gealber/evm-simulator/internal/word"

// Snapshot is an opaque, deep-copied point-in-time view of the mutable parts
// of a WorldState, captured before entering a CALL/CREATE-class sub-frame
// and restored on Halted-Revert or Halted-Error (spec.md §5, step 6).
// Logs are truncated to their pre-call length rather than cloned — they
// only ever grow, so remembering the watermark is sufficient and cheaper
// than copying the whole slice.
type Snapshot struct {
	accounts map[word.Address]*Account
	codes    map[word.Word][]byte
	logsLen  int
	static   bool
}

// Snapshot captures a deep copy of every account and the code table, plus
// the current log watermark and static-mode flag.
func (s *WorldState) Snapshot() *Snapshot {
	accounts := make(map[word.Address]*Account, len(s.Accounts))
	for addr, acc := range s.Accounts {
		accounts[addr] = cloneAccount(acc)
	}
	codes := make(map[word.Word][]byte, len(s.Codes))
	for h, c := range s.Codes {
		codes[h] = c // code bytes are immutable once inserted; sharing is safe
	}
	return &Snapshot{
		accounts: accounts,
		codes:    codes,
		logsLen:  len(s.Logs),
		static:   s.StaticMode,
	}
}

// Restore discards all mutations performed since snap was taken: storage
// writes, balance transfers, account creations/deletions, code
// installations, and logs emitted in the interim.
func (s *WorldState) Restore(snap *Snapshot) {
	s.Accounts = snap.accounts
	s.Codes = snap.codes
	s.Logs = s.Logs[:snap.logsLen]
	s.StaticMode = snap.static
}

func cloneAccount(a *Account) *Account {
	storage := make(map[word.Word]word.Word, len(a.Storage))
	for k, v := range a.Storage {
		storage[k] = v
	}
	return &Account{
		Nonce:    a.Nonce,
		Balance:  a.Balance,
		Storage:  storage,
		CodeHash: a.CodeHash,
	}
}
