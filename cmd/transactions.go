package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/teller"
	"github.com/google/subcommands"
)

type depositCmd struct {
	number int
	amount string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit money into an account" }
func (*depositCmd) Usage() string {
	return `tlr deposit -n <number> -a <amount>
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.number, "n", 0, "Account number.")
	f.StringVar(&c.amount, "a", "", "Amount, in the ledger currency.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		amount, err := teller.ParseMoney(c.amount, s.Currency())
		if err != nil {
			return err
		}
		a, err := s.Deposit(c.number, amount)
		if a != nil {
			fmt.Fprintf(out, "Deposited %s into account %d. Balance: %s\n", amount, a.Number(), a.Balance())
		}
		return err
	})
}

type withdrawCmd struct {
	number int
	amount string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw money from an account" }
func (*withdrawCmd) Usage() string {
	return `tlr withdraw -n <number> -a <amount>
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.number, "n", 0, "Account number.")
	f.StringVar(&c.amount, "a", "", "Amount, in the ledger currency.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		amount, err := teller.ParseMoney(c.amount, s.Currency())
		if err != nil {
			return err
		}
		a, err := s.Withdraw(c.number, amount)
		if a != nil {
			fmt.Fprintf(out, "Withdrew %s from account %d. Balance: %s\n", amount, a.Number(), a.Balance())
		}
		return err
	})
}

type transferCmd struct {
	from   int
	to     int
	amount string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between two accounts" }
func (*transferCmd) Usage() string {
	return `tlr transfer -from <number> -to <number> -a <amount>

  Moves the amount in full or not at all.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.from, "from", 0, "Source account number.")
	f.IntVar(&c.to, "to", 0, "Target account number.")
	f.StringVar(&c.amount, "a", "", "Amount, in the ledger currency.")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		amount, err := teller.ParseMoney(c.amount, s.Currency())
		if err != nil {
			return err
		}
		if err := s.Transfer(c.from, c.to, amount); err != nil {
			return err
		}
		fmt.Fprintf(out, "Transferred %s from account %d to account %d.\n", amount, c.from, c.to)
		return nil
	})
}
