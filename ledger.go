package teller

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LoadPolicy decides what Open does with a snapshot that cannot be trusted.
type LoadPolicy int

const (
	// FailOnCorrupt makes Open return the load error. It is the default.
	FailOnCorrupt LoadPolicy = iota
	// ResetOnCorrupt discards the corrupt snapshot and starts a seeded, empty ledger.
	ResetOnCorrupt
)

func (p LoadPolicy) String() string {
	switch p {
	case FailOnCorrupt:
		return "fail"
	case ResetOnCorrupt:
		return "reset"
	default:
		return "unknown"
	}
}

// Ledger owns every account and user. It is the only way to mutate them and
// it saves a full snapshot after each successful mutation.
//
// Values returned by the Ledger are copies: changing them has no effect on
// the ledger.
type Ledger struct {
	mu       sync.Mutex
	store    Store
	log      zerolog.Logger
	now      func() time.Time
	currency string
	policy   LoadPolicy
	seed     []User

	nextNumber int
	accounts   []*Account // in creation order
	users      []User
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger, the default discards everything.
func WithLogger(log zerolog.Logger) Option { return func(l *Ledger) { l.log = log } }

// WithClock sets the time source used to stamp entries.
func WithClock(now func() time.Time) Option { return func(l *Ledger) { l.now = now } }

// WithCurrency sets the currency of a new ledger. A loaded snapshot keeps its own.
func WithCurrency(currency string) Option { return func(l *Ledger) { l.currency = currency } }

// WithSeedUsers replaces DefaultUsers as the initial user set.
func WithSeedUsers(users []User) Option {
	return func(l *Ledger) { l.seed = slices.Clone(users) }
}

// WithLoadPolicy sets how a corrupt snapshot is handled.
func WithLoadPolicy(p LoadPolicy) Option { return func(l *Ledger) { l.policy = p } }

// Open loads the ledger from store.
//
// Without a prior snapshot the ledger starts empty with the seed users and is
// saved immediately. A corrupt snapshot is handled according to the LoadPolicy.
// If only the initial save fails, Open returns the usable ledger along with an
// error wrapping ErrSave.
func Open(store Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:      store,
		log:        zerolog.Nop(),
		now:        time.Now,
		currency:   DefaultCurrency,
		seed:       DefaultUsers(),
		nextNumber: 1,
	}
	for _, opt := range opts {
		opt(l)
	}

	dirty := false
	snap, err := store.Load()
	switch {
	case err == nil:
		l.restore(snap)
		l.log.Debug().Int("accounts", len(l.accounts)).Int("users", len(l.users)).Msg("snapshot loaded")
	case errors.Is(err, ErrNoSnapshot):
		l.log.Info().Msg("no snapshot found, starting a new ledger")
		dirty = true
	case errors.Is(err, ErrCorruptSnapshot) && l.policy == ResetOnCorrupt:
		l.log.Warn().Err(err).Msg("corrupt snapshot discarded")
		dirty = true
	default:
		return nil, fmt.Errorf("cannot open ledger: %w", err)
	}

	if len(l.users) == 0 {
		for _, u := range l.seed {
			if err := u.Validate(); err != nil {
				return nil, fmt.Errorf("invalid seed user %q: %w", u.Login, err)
			}
			if l.findUser(u.Login) >= 0 {
				return nil, fmt.Errorf("invalid seed user %q: %w", u.Login, ErrDuplicateLogin)
			}
			l.users = append(l.users, u)
		}
		l.log.Info().Int("users", len(l.users)).Msg("seeded users")
		dirty = true
	}
	if dirty {
		if err := l.commit("open"); err != nil {
			return l, err
		}
	}
	return l, nil
}

func (l *Ledger) restore(s *Snapshot) {
	currency := s.Currency
	for _, a := range s.Accounts {
		if currency != "" {
			break
		}
		currency = a.Currency()
	}
	if currency != "" {
		if currency != l.currency {
			l.log.Debug().Str("configured", l.currency).Str("snapshot", currency).Msg("using snapshot currency")
		}
		l.currency = currency
	}
	l.nextNumber = max(s.NextNumber, 1)
	l.accounts = make([]*Account, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		a = a.clone()
		a.clock = l.now
		l.accounts = append(l.accounts, a)
	}
	l.users = slices.Clone(s.Users)
}

// Snapshot returns a copy of the complete state.
func (l *Ledger) Snapshot() *Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *Ledger) snapshot() *Snapshot {
	s := &Snapshot{
		Version:    SnapshotVersion,
		SavedAt:    l.now(),
		Currency:   l.currency,
		NextNumber: l.nextNumber,
		Accounts:   make([]*Account, 0, len(l.accounts)),
		Users:      slices.Clone(l.users),
	}
	for _, a := range l.accounts {
		s.Accounts = append(s.Accounts, a.clone())
	}
	return s
}

// commit saves the current state. The in-memory change is kept if it fails.
func (l *Ledger) commit(op string) error {
	if err := l.store.Save(l.snapshot()); err != nil {
		l.log.Error().Err(err).Str("op", op).Msg("snapshot not saved")
		return fmt.Errorf("%s: %w: %w", op, ErrSave, err)
	}
	l.log.Debug().Str("op", op).Msg("snapshot saved")
	return nil
}

// Currency returns the ledger currency.
func (l *Ledger) Currency() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currency
}

// CreateAccount opens a zero-balance account with the next account number.
// Numbers are never reused, even after an account is removed.
func (l *Ledger) CreateAccount(owner string) (*Account, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("owner name: %w", ErrEmptyField)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	a := NewAccount(l.nextNumber, owner, l.currency)
	a.clock = l.now
	l.nextNumber++
	l.accounts = append(l.accounts, a)
	l.log.Info().Int("account", a.number).Str("owner", owner).Msg("account created")
	return a.clone(), l.commit("create account")
}

// Account returns a copy of the account with this number.
func (l *Ledger) Account(number int) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.account(number)
	if err != nil {
		return nil, err
	}
	return a.clone(), nil
}

// Accounts returns copies of all accounts in creation order.
func (l *Ledger) Accounts() []*Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a.clone())
	}
	return out
}

func (l *Ledger) account(number int) (*Account, error) {
	for _, a := range l.accounts {
		if a.number == number {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrAccountNotFound, number)
}

// Deposit credits amount to the account and returns its new state.
func (l *Ledger) Deposit(number int, amount Money) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.account(number)
	if err != nil {
		return nil, err
	}
	if err := a.Deposit(amount); err != nil {
		return nil, err
	}
	l.log.Info().Int("account", number).Stringer("amount", amount).Msg("deposit")
	return a.clone(), l.commit("deposit")
}

// Withdraw debits amount from the account and returns its new state.
func (l *Ledger) Withdraw(number int, amount Money) (*Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.account(number)
	if err != nil {
		return nil, err
	}
	if err := a.Withdraw(amount); err != nil {
		return nil, err
	}
	l.log.Info().Int("account", number).Stringer("amount", amount).Msg("withdrawal")
	return a.clone(), l.commit("withdraw")
}

// Transfer moves amount between two accounts, all or nothing.
func (l *Ledger) Transfer(from, to int, amount Money) error {
	if from == to {
		return ErrSameAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	src, err := l.account(from)
	if err != nil {
		return err
	}
	dst, err := l.account(to)
	if err != nil {
		return err
	}
	if err := src.Transfer(dst, amount); err != nil {
		return err
	}
	l.log.Info().Int("from", from).Int("to", to).Stringer("amount", amount).Msg("transfer")
	return l.commit("transfer")
}

// Statement returns the text statement of the account.
func (l *Ledger) Statement(number int) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.account(number)
	if err != nil {
		return "", err
	}
	return a.Statement(), nil
}

// RenameAccountOwner changes the owner name of an account.
func (l *Ledger) RenameAccountOwner(number int, owner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, err := l.account(number)
	if err != nil {
		return err
	}
	if err := a.Rename(owner); err != nil {
		return err
	}
	l.log.Info().Int("account", number).Str("owner", a.owner).Msg("account renamed")
	return l.commit("rename account")
}

// RemoveAccount deletes an account and its history.
func (l *Ledger) RemoveAccount(number int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := slices.IndexFunc(l.accounts, func(a *Account) bool { return a.number == number })
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrAccountNotFound, number)
	}
	l.accounts = slices.Delete(l.accounts, i, i+1)
	l.log.Info().Int("account", number).Msg("account removed")
	return l.commit("remove account")
}

func (l *Ledger) findUser(login string) int {
	return slices.IndexFunc(l.users, func(u User) bool { return u.Login == login })
}

// Authenticate reports whether login exists with exactly this password.
func (l *Ledger) Authenticate(login, password string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.findUser(login)
	return i >= 0 && l.users[i].Password == password
}

// DisplayName returns the name of the user with this login.
func (l *Ledger) DisplayName(login string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.findUser(login)
	if i < 0 {
		return "", false
	}
	return l.users[i].Name, true
}

// Users returns the registered users in registration order, passwords blanked.
func (l *Ledger) Users() []User {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := slices.Clone(l.users)
	for i := range out {
		out[i].Password = ""
	}
	return out
}

// RegisterUser adds a user. An existing login is never modified.
func (l *Ledger) RegisterUser(login, password, name string) error {
	u := User{Login: login, Password: password, Name: strings.TrimSpace(name)}
	if err := u.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.findUser(login) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateLogin, login)
	}
	l.users = append(l.users, u)
	l.log.Info().Str("login", login).Msg("user registered")
	return l.commit("register user")
}

// ChangePassword replaces the password of login. Nothing changes for an
// unknown login.
func (l *Ledger) ChangePassword(login, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("password: %w", ErrEmptyField)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.findUser(login)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownLogin, login)
	}
	l.users[i].Password = newPassword
	l.log.Info().Str("login", login).Msg("password changed")
	return l.commit("change password")
}
