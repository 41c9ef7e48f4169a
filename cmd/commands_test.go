package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/teller"
	"github.com/etnz/teller/sqlitestore"
	"github.com/google/subcommands"
)

func TestTellerSession(t *testing.T) {
	snapshot, output := setup(t)

	mustRun(t, &openCmd{}, "-owner", "Ana")
	mustRun(t, &openCmd{}, "-owner", "Bruno")
	mustRun(t, &depositCmd{}, "-n", "1", "-a", "100")
	mustRun(t, &withdrawCmd{}, "-n", "1", "-a", "30")
	mustRun(t, &transferCmd{}, "-from", "1", "-to", "2", "-a", "20")

	for _, want := range []string{
		"Account 1 opened for Ana.",
		"Account 2 opened for Bruno.",
		"Deposited $100.00 into account 1. Balance: $100.00",
		"Withdrew $30.00 from account 1. Balance: $70.00",
		"Transferred $20.00 from account 1 to account 2.",
	} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, output)
		}
	}

	output.Reset()
	mustRun(t, &statementCmd{}, "-n", "1")
	st := output.String()
	if !strings.HasPrefix(st, "Statement for account 1\nOwner: Ana\n") || !strings.HasSuffix(st, "Current balance: $50.00\n") {
		t.Errorf("unexpected statement:\n%s", st)
	}
	if !strings.Contains(st, "Transfer to account 2 - Bruno") {
		t.Errorf("statement does not describe the transfer:\n%s", st)
	}

	output.Reset()
	mustRun(t, &accountsCmd{})
	if !strings.Contains(output.String(), "Ana") || !strings.Contains(output.String(), "Bruno") {
		t.Errorf("accounts output:\n%s", output)
	}

	// the file holds everything.
	l, err := teller.Open(teller.NewFileStore(snapshot))
	if err != nil {
		t.Fatal(err)
	}
	for number, want := range map[int]teller.Money{1: teller.M(50, "USD"), 2: teller.M(20, "USD")} {
		a, err := l.Account(number)
		if err != nil {
			t.Fatal(err)
		}
		if !a.Balance().Equal(want) {
			t.Errorf("account %d balance = %s, want %s", number, a.Balance(), want)
		}
	}
}

func TestRejectedOperations(t *testing.T) {
	snapshot, _ := setup(t)
	mustRun(t, &openCmd{}, "-owner", "Ana")
	mustRun(t, &depositCmd{}, "-n", "1", "-a", "10")
	before, err := os.ReadFile(snapshot)
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name string
		cmd  subcommands.Command
		args []string
		want subcommands.ExitStatus
	}{
		{"insufficient funds", &withdrawCmd{}, []string{"-n", "1", "-a", "10.01"}, subcommands.ExitFailure},
		{"not a number", &depositCmd{}, []string{"-n", "1", "-a", "ten"}, subcommands.ExitFailure},
		{"zero deposit", &depositCmd{}, []string{"-n", "1", "-a", "0"}, subcommands.ExitFailure},
		{"too many decimals", &depositCmd{}, []string{"-n", "1", "-a", "1.005"}, subcommands.ExitFailure},
		{"unknown account", &depositCmd{}, []string{"-n", "9", "-a", "1"}, subcommands.ExitFailure},
		{"same account", &transferCmd{}, []string{"-from", "1", "-to", "1", "-a", "1"}, subcommands.ExitFailure},
		{"unknown target", &transferCmd{}, []string{"-from", "1", "-to", "2", "-a", "1"}, subcommands.ExitFailure},
		{"blank owner", &openCmd{}, []string{"-owner", "  "}, subcommands.ExitUsageError},
		{"blank rename", &renameCmd{}, []string{"-n", "1", "-owner", " "}, subcommands.ExitFailure},
		{"close unknown", &closeCmd{}, []string{"-n", "2"}, subcommands.ExitFailure},
		{"statement format", &statementCmd{}, []string{"-n", "1", "-format", "pdf"}, subcommands.ExitUsageError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(t, tc.cmd, tc.args...); got != tc.want {
				t.Errorf("status = %v, want %v", got, tc.want)
			}
		})
	}

	after, err := os.ReadFile(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("rejected operations changed the snapshot")
	}
}

func TestAuthentication(t *testing.T) {
	_, output := setup(t)

	mustRun(t, &loginCmd{})
	if !strings.Contains(output.String(), "Welcome, Administrator.") {
		t.Errorf("login output = %q", output)
	}

	as(t, "admin", "wrong")
	if got := run(t, &loginCmd{}); got != subcommands.ExitFailure {
		t.Errorf("login with a wrong password: status = %v", got)
	}
	if got := run(t, &openCmd{}, "-owner", "Ana"); got != subcommands.ExitFailure {
		t.Errorf("open without authentication: status = %v", got)
	}

	as(t, "", "")
	if got := run(t, &accountsCmd{}); got != subcommands.ExitFailure {
		t.Errorf("accounts without operator: status = %v", got)
	}

	as(t, "cliente", "cli123")
	mustRun(t, &loginCmd{})
}

func TestRegisterAndChangePassword(t *testing.T) {
	_, output := setup(t)
	as(t, "", "") // registering needs no operator

	if got := run(t, &registerCmd{}, "-login", "ana", "-password", "pw", "-confirm", "px", "-name", "Ana"); got != subcommands.ExitUsageError {
		t.Errorf("mismatched confirmation: status = %v", got)
	}
	mustRun(t, &registerCmd{}, "-login", "ana", "-password", "pw", "-confirm", "pw", "-name", "Ana")
	if got := run(t, &registerCmd{}, "-login", "ana", "-password", "x", "-confirm", "x", "-name", "Other"); got != subcommands.ExitFailure {
		t.Errorf("duplicate login: status = %v", got)
	}
	if got := run(t, &registerCmd{}, "-login", "bob", "-password", "x", "-confirm", "x"); got != subcommands.ExitFailure {
		t.Errorf("blank name: status = %v", got)
	}

	as(t, "ana", "pw")
	output.Reset()
	mustRun(t, &loginCmd{})
	if !strings.Contains(output.String(), "Welcome, Ana.") {
		t.Errorf("login output = %q", output)
	}

	if got := run(t, &passwdCmd{}, "-new", "n1", "-confirm", "n2"); got != subcommands.ExitUsageError {
		t.Errorf("passwd mismatch: status = %v", got)
	}
	if got := run(t, &passwdCmd{}, "-new", "", "-confirm", ""); got != subcommands.ExitFailure {
		t.Errorf("blank password: status = %v", got)
	}
	mustRun(t, &passwdCmd{}, "-new", "n1", "-confirm", "n1")

	if got := run(t, &loginCmd{}); got != subcommands.ExitFailure {
		t.Errorf("old password still works: status = %v", got)
	}
	as(t, "ana", "n1")
	mustRun(t, &loginCmd{})
}

func TestStatementFormats(t *testing.T) {
	_, output := setup(t)
	mustRun(t, &openCmd{}, "-owner", "Ana")
	mustRun(t, &depositCmd{}, "-n", "1", "-a", "12.5")

	output.Reset()
	mustRun(t, &statementCmd{}, "-n", "1", "-format", "html")
	for _, want := range []string{"<h1>Statement for account 1</h1>", "<table>", "Current balance: $12.50"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("html statement does not contain %q:\n%s", want, output)
		}
	}

	output.Reset()
	mustRun(t, &statementCmd{}, "-n", "1", "-format", "markdown")
	if !strings.Contains(output.String(), "Statement for account 1") {
		t.Errorf("markdown statement:\n%s", output)
	}

	if got := run(t, &statementCmd{}, "-n", "2"); got != subcommands.ExitFailure {
		t.Errorf("statement of unknown account: status = %v", got)
	}
}

func TestRenameAndClose(t *testing.T) {
	_, output := setup(t)
	mustRun(t, &openCmd{}, "-owner", "Ana")
	mustRun(t, &renameCmd{}, "-n", "1", "-owner", " Ana Maria ")
	if !strings.Contains(output.String(), "Account 1 now belongs to Ana Maria.") {
		t.Errorf("rename output:\n%s", output)
	}
	mustRun(t, &closeCmd{}, "-n", "1")
	mustRun(t, &openCmd{}, "-owner", "Bruno")
	if !strings.Contains(output.String(), "Account 2 opened for Bruno.") {
		t.Errorf("a closed account number was reused:\n%s", output)
	}
}

func TestQuery(t *testing.T) {
	_, output := setup(t)
	mustRun(t, &openCmd{}, "-owner", "Ana")
	mustRun(t, &depositCmd{}, "-n", "1", "-a", "40")

	testCases := []struct {
		path string
		want string
	}{
		{path: "$.accounts[*].owner", want: `"Ana"`},
		{path: "$.accounts[0].balance.amount", want: "40"},
		{path: "$.users[*].login", want: `"admin"`},
		{path: "$.currency", want: `"USD"`},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			output.Reset()
			mustRun(t, &queryCmd{}, tc.path)
			if !strings.Contains(output.String(), tc.want) {
				t.Errorf("query %s = %s, want it to contain %s", tc.path, output, tc.want)
			}
		})
	}

	output.Reset()
	if got := run(t, &queryCmd{}, "$.users[0].password"); got != subcommands.ExitFailure {
		t.Errorf("passwords must not be queryable: status = %v, output %s", got, output)
	}
	output.Reset()
	mustRun(t, &queryCmd{}, "$.users")
	if strings.Contains(output.String(), "1234") || strings.Contains(output.String(), "password") {
		t.Errorf("query leaked a password:\n%s", output)
	}
	if got := run(t, &queryCmd{}); got != subcommands.ExitUsageError {
		t.Errorf("query without expression: status = %v", got)
	}
}

func TestSQLiteStore(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "teller.db")
	setString(t, &snapshotPath, path)
	setString(t, &storeKind, "sqlite")

	mustRun(t, &openCmd{}, "-owner", "Ana")
	mustRun(t, &depositCmd{}, "-n", "1", "-a", "5")

	store, err := sqlitestore.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	snap, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Accounts) != 1 || !snap.Accounts[0].Balance().Equal(teller.M(5, "USD")) {
		t.Errorf("sqlite snapshot = %+v", snap)
	}
}

func TestSQLiteDefaultSnapshot(t *testing.T) {
	setup(t)
	dir := t.TempDir()
	t.Chdir(dir)
	setString(t, &snapshotPath, "")
	setString(t, &storeKind, "sqlite")

	mustRun(t, &openCmd{}, "-owner", "Ana")

	if _, err := os.Stat(filepath.Join(dir, "teller.db")); err != nil {
		t.Errorf("the sqlite store should default to teller.db: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "teller.json")); err == nil {
		t.Error("teller.json should not be created for the sqlite store")
	}
}

func TestCorruptSnapshot(t *testing.T) {
	snapshot, _ := setup(t)
	if err := os.WriteFile(snapshot, []byte(`{"version":1,"accounts":[`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := run(t, &loginCmd{}); got != subcommands.ExitFailure {
		t.Fatalf("corrupt snapshot: status = %v, want failure", got)
	}
	data, _ := os.ReadFile(snapshot)
	if string(data) != `{"version":1,"accounts":[` {
		t.Error("a corrupt snapshot must be left untouched")
	}

	setBool(t, &resetCorrupt, true)
	mustRun(t, &loginCmd{})
	mustRun(t, &openCmd{}, "-owner", "Ana")
}

func TestInvalidStoreFlag(t *testing.T) {
	setup(t)
	setString(t, &storeKind, "s3")
	if got := run(t, &loginCmd{}); got != subcommands.ExitFailure {
		t.Errorf("status = %v, want failure", got)
	}
}

func TestTopic(t *testing.T) {
	_, output := setup(t)
	mustRun(t, &topicCmd{})
	if !strings.Contains(output.String(), "transactions") {
		t.Errorf("topic list:\n%s", output)
	}
	if got := run(t, &topicCmd{}, "unknown"); got != subcommands.ExitFailure {
		t.Errorf("unknown topic: status = %v", got)
	}
}
