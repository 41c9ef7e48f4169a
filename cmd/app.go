// Package cmd implements the tlr command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/teller"
	"github.com/etnz/teller/config"
	"github.com/etnz/teller/sqlitestore"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&loginCmd{}, "session")
	c.Register(&registerCmd{}, "session")
	c.Register(&passwdCmd{}, "session")

	c.Register(&openCmd{}, "accounts")
	c.Register(&accountsCmd{}, "accounts")
	c.Register(&statementCmd{}, "accounts")
	c.Register(&renameCmd{}, "accounts")
	c.Register(&closeCmd{}, "accounts")

	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&transferCmd{}, "transactions")

	c.Register(&queryCmd{}, "admin")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile   = flag.String("config", "", "Path to a .env file. Defaults to .env in the current directory if it exists.")
	snapshotPath = flag.String("snapshot", "", "Path to the snapshot. Overrides TELLER_SNAPSHOT.")
	storeKind    = flag.String("store", "", "Snapshot storage: file or sqlite. Overrides TELLER_STORE.")
	userLogin    = flag.String("u", "", "Login of the operator. Overrides TELLER_USER.")
	userPassword = flag.String("p", "", "Password of the operator. Overrides TELLER_PASSWORD.")
	resetCorrupt = flag.Bool("reset-corrupt", false, "Start from an empty ledger if the snapshot is corrupt.")
	Verbose      = flag.Bool("v", false, "Log debug information to stderr.")
)

// out receives the command results, logOut the logs.
var (
	out    io.Writer = os.Stdout
	logOut io.Writer = os.Stderr
)

// Config returns the configuration with the global flags applied.
func Config() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *snapshotPath != "" {
		cfg.Snapshot = *snapshotPath
	}
	if *storeKind != "" {
		cfg.Store = *storeKind
	}
	if *userLogin != "" {
		cfg.User = *userLogin
	}
	if *userPassword != "" {
		cfg.Password = *userPassword
	}
	if *resetCorrupt {
		cfg.ResetCorrupt = true
	}
	if *Verbose {
		cfg.Debug = true
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: logOut, TimeFormat: time.TimeOnly}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// session is an opened ledger, authenticated or not.
type session struct {
	*teller.Ledger
	cfg   *config.Config
	login string
	close func() error
}

// Close releases the store.
func (s *session) Close() error { return s.close() }

// openSession opens the configured ledger. With authenticate, the operator
// given by -u and -p must be a known user.
func openSession(authenticate bool) (*session, error) {
	cfg, err := Config()
	if err != nil {
		return nil, err
	}
	seed, err := cfg.SeedUsers()
	if err != nil {
		return nil, err
	}

	var store teller.Store
	closeStore := func() error { return nil }
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := sqlitestore.Open(cfg.Snapshot)
		if err != nil {
			return nil, err
		}
		store, closeStore = s, s.Close
	default:
		store = teller.NewFileStore(cfg.Snapshot)
	}

	l, err := teller.Open(store,
		teller.WithLogger(newLogger(cfg.Debug)),
		teller.WithCurrency(cfg.Currency),
		teller.WithSeedUsers(seed),
		teller.WithLoadPolicy(cfg.LoadPolicy()),
	)
	if err != nil {
		closeStore()
		return nil, err
	}

	s := &session{Ledger: l, cfg: cfg, close: closeStore}
	if !authenticate {
		return s, nil
	}
	if cfg.User == "" {
		s.Close()
		return nil, errors.New("no operator: use -u and -p, or TELLER_USER and TELLER_PASSWORD")
	}
	if !l.Authenticate(cfg.User, cfg.Password) {
		s.Close()
		return nil, errInvalidLogin
	}
	s.login = cfg.User
	return s, nil
}

var errInvalidLogin = errors.New("invalid login or password")

// withSession runs fn on an authenticated session and maps errors to exit statuses.
func withSession(fn func(s *session) error) subcommands.ExitStatus {
	s, err := openSession(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()
	if err := fn(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, raw markdown if it cannot.
func printMarkdown(md string) {
	rendered, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprint(out, md)
		return
	}
	fmt.Fprint(out, rendered)
}
