package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/teller"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the snapshot with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `tlr query <jsonpath>

  Evaluates the expression on the snapshot and prints the result as JSON.
  Passwords are never part of the result.

  Examples:
    tlr query '$.accounts[*].owner'
    tlr query '$.accounts[?(@.number==2)].balance.amount'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query takes exactly one JSONPath expression.")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)
	return withSession(func(s *session) error {
		doc, err := queryDocument(s.Snapshot())
		if err != nil {
			return err
		}
		val, err := jsonpath.Get(path, doc)
		if err != nil {
			return fmt.Errorf("error evaluating %q: %w", path, err)
		}
		data, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	})
}

// queryDocument converts the snapshot into generic JSON values, without passwords.
func queryDocument(snap *teller.Snapshot) (any, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if users, ok := doc["users"].([]any); ok {
		for _, u := range users {
			if u, ok := u.(map[string]any); ok {
				delete(u, "password")
			}
		}
	}
	return doc, nil
}
