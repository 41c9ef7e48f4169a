package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type loginCmd struct{}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "check the operator credentials" }
func (*loginCmd) Usage() string {
	return `tlr -u <login> -p <password> login

  Checks the credentials and greets the operator.
`
}

func (*loginCmd) SetFlags(f *flag.FlagSet) {}

func (*loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(func(s *session) error {
		name, _ := s.DisplayName(s.login)
		fmt.Fprintf(out, "Welcome, %s.\n", name)
		return nil
	})
}

type registerCmd struct {
	login    string
	password string
	confirm  string
	name     string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "register a new user" }
func (*registerCmd) Usage() string {
	return `tlr register -login <login> -password <password> -confirm <password> -name <name>

  Registers a new user. No authentication is needed.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.login, "login", "", "Login of the new user.")
	f.StringVar(&c.password, "password", "", "Password of the new user.")
	f.StringVar(&c.confirm, "confirm", "", "Password again.")
	f.StringVar(&c.name, "name", "", "Display name of the new user.")
}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.password != c.confirm {
		fmt.Fprintln(os.Stderr, "Error: passwords do not match.")
		return subcommands.ExitUsageError
	}
	s, err := openSession(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if err := s.RegisterUser(c.login, c.password, c.name); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering %q: %v\n", c.login, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(out, "User %q registered.\n", c.login)
	return subcommands.ExitSuccess
}

type passwdCmd struct {
	password string
	confirm  string
}

func (*passwdCmd) Name() string     { return "passwd" }
func (*passwdCmd) Synopsis() string { return "change the operator password" }
func (*passwdCmd) Usage() string {
	return `tlr -u <login> -p <current password> passwd -new <password> -confirm <password>

  Changes the password of the operator. The current password is the one given with -p.
`
}

func (c *passwdCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.password, "new", "", "New password.")
	f.StringVar(&c.confirm, "confirm", "", "New password again.")
}

func (c *passwdCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.password != c.confirm {
		fmt.Fprintln(os.Stderr, "Error: passwords do not match.")
		return subcommands.ExitUsageError
	}
	return withSession(func(s *session) error {
		if err := s.ChangePassword(s.login, c.password); err != nil {
			return err
		}
		fmt.Fprintf(out, "Password changed for %q.\n", s.login)
		return nil
	})
}
