package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/teller/renderer"
	"github.com/google/subcommands"
)

type openCmd struct {
	owner string
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "open a new account" }
func (*openCmd) Usage() string {
	return `tlr open -owner <name>

  Opens a zero balance account and prints its number.
`
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.owner, "owner", "", "Name of the account owner.")
}

func (c *openCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if strings.TrimSpace(c.owner) == "" {
		fmt.Fprintln(os.Stderr, "Error: -owner is required.")
		return subcommands.ExitUsageError
	}
	return withSession(func(s *session) error {
		a, err := s.CreateAccount(c.owner)
		if a != nil {
			fmt.Fprintf(out, "Account %d opened for %s.\n", a.Number(), a.Owner())
		}
		return err
	})
}

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list all accounts" }
func (*accountsCmd) Usage() string {
	return `tlr accounts

  Lists the accounts with their balance.
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (*accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		printMarkdown(renderer.AccountsMarkdown(s.Accounts(), s.Currency()))
		return nil
	})
}

type statementCmd struct {
	number int
	format string
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "print the statement of an account" }
func (*statementCmd) Usage() string {
	return `tlr statement -n <number> [-format text|markdown|html]

  Prints every entry of the account in chronological order, then its balance.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.number, "n", 0, "Account number.")
	f.StringVar(&c.format, "format", "text", "Output format: text, markdown or html.")
}

func (c *statementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch c.format {
	case "text", "markdown", "html":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q.\n", c.format)
		return subcommands.ExitUsageError
	}
	return withSession(func(s *session) error {
		if c.format == "text" {
			st, err := s.Statement(c.number)
			if err != nil {
				return err
			}
			fmt.Fprint(out, st)
			return nil
		}
		a, err := s.Account(c.number)
		if err != nil {
			return err
		}
		md := renderer.StatementMarkdown(a)
		if c.format == "markdown" {
			printMarkdown(md)
			return nil
		}
		html, err := renderer.HTML(md)
		if err != nil {
			return err
		}
		fmt.Fprint(out, html)
		return nil
	})
}

type renameCmd struct {
	number int
	owner  string
}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "change the owner name of an account" }
func (*renameCmd) Usage() string {
	return `tlr rename -n <number> -owner <name>
`
}

func (c *renameCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.number, "n", 0, "Account number.")
	f.StringVar(&c.owner, "owner", "", "New owner name.")
}

func (c *renameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		if err := s.RenameAccountOwner(c.number, c.owner); err != nil {
			return err
		}
		fmt.Fprintf(out, "Account %d now belongs to %s.\n", c.number, strings.TrimSpace(c.owner))
		return nil
	})
}

type closeCmd struct {
	number int
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "remove an account and its history" }
func (*closeCmd) Usage() string {
	return `tlr close -n <number>

  Removes the account. Its number is never given to another account.
`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.number, "n", 0, "Account number.")
}

func (c *closeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		if err := s.RemoveAccount(c.number); err != nil {
			return err
		}
		fmt.Fprintf(out, "Account %d closed.\n", c.number)
		return nil
	})
}
