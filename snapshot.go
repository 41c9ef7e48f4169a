package teller

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// SnapshotVersion is the format version written by this package. Snapshots
// with a higher version are refused rather than misread.
const SnapshotVersion = 1

// Snapshot is the complete persisted state of a ledger.
type Snapshot struct {
	Version    int        `json:"version"`
	SavedAt    time.Time  `json:"savedAt"`
	Currency   string     `json:"currency"`
	NextNumber int        `json:"nextNumber"`
	Accounts   []*Account `json:"accounts"`
	Users      []User     `json:"users"`
}

// EncodeSnapshot writes s as indented JSON.
func EncodeSnapshot(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot. Every failure wraps ErrCorruptSnapshot.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after the snapshot", ErrCorruptSnapshot)
	}
	if s.Version < 1 || s.Version > SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, s.Version)
	}
	if err := s.check(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return &s, nil
}

// check verifies cross-entity invariants of a decoded snapshot. A snapshot
// without a currency takes the one of its accounts, which must all agree.
func (s *Snapshot) check() error {
	numbers := make(map[int]bool, len(s.Accounts))
	for _, a := range s.Accounts {
		if a == nil {
			return fmt.Errorf("null account")
		}
		if numbers[a.number] {
			return fmt.Errorf("account number %d is used twice", a.number)
		}
		if a.number >= s.NextNumber {
			return fmt.Errorf("account number %d is not below next number %d", a.number, s.NextNumber)
		}
		if s.Currency == "" {
			s.Currency = a.Currency()
		} else if a.Currency() != "" && a.Currency() != s.Currency {
			return fmt.Errorf("account %d is in %s, ledger is in %s", a.number, a.Currency(), s.Currency)
		}
		numbers[a.number] = true
	}
	logins := make(map[string]bool, len(s.Users))
	for _, u := range s.Users {
		if logins[u.Login] {
			return fmt.Errorf("login %q is used twice", u.Login)
		}
		logins[u.Login] = true
	}
	return nil
}
