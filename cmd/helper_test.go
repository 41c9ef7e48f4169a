package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

var envKeys = []string{
	"TELLER_SNAPSHOT", "TELLER_STORE", "TELLER_CURRENCY", "TELLER_SEED_FILE",
	"TELLER_USER", "TELLER_PASSWORD", "TELLER_DEBUG", "TELLER_RESET_CORRUPT",
}

// setString overrides a global flag for the duration of the test.
func setString(t *testing.T, p **string, v string) {
	t.Helper()
	old := *p
	*p = &v
	t.Cleanup(func() { *p = old })
}

func setBool(t *testing.T, p **bool, v bool) {
	t.Helper()
	old := *p
	*p = &v
	t.Cleanup(func() { *p = old })
}

// setup isolates the test from the host environment and points the global
// flags at a new USD ledger, with admin as the operator.
func setup(t *testing.T) (snapshot string, output *bytes.Buffer) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("TELLER_CURRENCY", "USD")

	snapshot = filepath.Join(t.TempDir(), "teller.json")
	setString(t, &configFile, "")
	setString(t, &snapshotPath, snapshot)
	setString(t, &storeKind, "file")
	setString(t, &userLogin, "admin")
	setString(t, &userPassword, "1234")
	setBool(t, &resetCorrupt, false)
	setBool(t, &Verbose, false)

	output = &bytes.Buffer{}
	old := out
	out = output
	t.Cleanup(func() { out = old })
	return snapshot, output
}

// as sets the operator credentials.
func as(t *testing.T, login, password string) {
	t.Helper()
	setString(t, &userLogin, login)
	setString(t, &userPassword, password)
}

// run parses args for c and executes it.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: cannot parse %v: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

// mustRun runs c and fails the test unless it succeeds.
func mustRun(t *testing.T, c subcommands.Command, args ...string) {
	t.Helper()
	if status := run(t, c, args...); status != subcommands.ExitSuccess {
		t.Fatalf("%s %v: got status %v, want success", c.Name(), args, status)
	}
}
