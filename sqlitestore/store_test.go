package sqlitestore

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/teller"
	_ "modernc.org/sqlite"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "teller.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadEmpty(t *testing.T) {
	store := openTemp(t)
	if _, err := store.Load(); !errors.Is(err, teller.ErrNoSnapshot) {
		t.Fatalf("Load() error = %v, want ErrNoSnapshot", err)
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	store := openTemp(t)
	l, err := teller.Open(store, teller.WithCurrency("USD"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	a, err := l.CreateAccount("Ana")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.Deposit(a.Number(), teller.M(100, "USD")); err != nil {
		t.Fatal(err)
	}

	again, err := teller.Open(store)
	if err != nil {
		t.Fatalf("reopen ledger: %v", err)
	}
	got, err := again.Account(a.Number())
	if err != nil {
		t.Fatal(err)
	}
	if !got.Balance().Equal(teller.M(100, "USD")) || got.Owner() != "Ana" {
		t.Errorf("reloaded account = %d %q %s", got.Number(), got.Owner(), got.Balance())
	}
	if !again.Authenticate("admin", "1234") {
		t.Error("seed users were not persisted")
	}
}

func TestSaveKeepsSingleRow(t *testing.T) {
	store := openTemp(t)
	for i := 1; i <= 3; i++ {
		snap := &teller.Snapshot{Version: teller.SnapshotVersion, SavedAt: time.Unix(int64(i), 0), NextNumber: i}
		if err := store.Save(snap); err != nil {
			t.Fatalf("save #%d: %v", i, err)
		}
	}
	var rows int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM snapshot`).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}
	snap, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if snap.NextNumber != 3 {
		t.Errorf("NextNumber = %d, want 3", snap.NextNumber)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teller.db")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec(`INSERT INTO snapshot (id, version, saved_at, body) VALUES (1, 1, 0, ?)`, []byte(`{"version":1,`)); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); !errors.Is(err, teller.ErrCorruptSnapshot) {
		t.Fatalf("Load() error = %v, want ErrCorruptSnapshot", err)
	}
}
