package teller

import (
	"errors"
	"testing"
	"time"
)

// USD is a helper for test to create dollars from const.
func USD(v float64) Money { return M(v, "USD") }

// fixedClock returns a clock that starts at t0 and advances one minute per call.
func fixedClock(t0 time.Time) func() time.Time {
	now := t0
	return func() time.Time {
		t := now
		now = now.Add(time.Minute)
		return t
	}
}

var t0 = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// countingStore wraps a MemStore, counts saves and can be made to fail.
type countingStore struct {
	*MemStore
	saves int
	fail  error
}

func newCountingStore() *countingStore { return &countingStore{MemStore: NewMemStore()} }

func (s *countingStore) Save(snap *Snapshot) error {
	if s.fail != nil {
		return s.fail
	}
	s.saves++
	return s.MemStore.Save(snap)
}

var errDiskFull = errors.New("disk full")

// openTest opens a USD ledger on a fresh counting store.
func openTest(t *testing.T, opts ...Option) (*Ledger, *countingStore) {
	t.Helper()
	store := newCountingStore()
	opts = append([]Option{WithCurrency("USD"), WithClock(fixedClock(t0))}, opts...)
	l, err := Open(store, opts...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return l, store
}

// mustCreate creates an account or fails the test.
func mustCreate(t *testing.T, l *Ledger, owner string) *Account {
	t.Helper()
	a, err := l.CreateAccount(owner)
	if err != nil {
		t.Fatalf("CreateAccount(%q) error = %v", owner, err)
	}
	return a
}

// balance returns the current balance of an account as a float.
func balance(t *testing.T, l *Ledger, number int) float64 {
	t.Helper()
	a, err := l.Account(number)
	if err != nil {
		t.Fatalf("Account(%d) error = %v", number, err)
	}
	return a.Balance().Decimal().InexactFloat64()
}
