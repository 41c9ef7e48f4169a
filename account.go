package teller

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Account is a named money holder with a balance and an append-only history.
//
// The balance always equals the sum of the signed amounts of its entries and
// is never negative. Operations that would break this are rejected before
// anything is modified.
type Account struct {
	number  int
	owner   string
	balance Money
	entries []Entry
	clock   func() time.Time
}

// NewAccount creates an empty account.
func NewAccount(number int, owner, currency string) *Account {
	return &Account{
		number:  number,
		owner:   owner,
		balance: M(0, currency),
		clock:   time.Now,
	}
}

func (a *Account) Number() int    { return a.number }
func (a *Account) Owner() string  { return a.owner }
func (a *Account) Balance() Money { return a.balance }
func (a *Account) Currency() string {
	return a.balance.Currency()
}

// Entries returns a copy of the history in chronological order.
func (a *Account) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Deposit credits a positive amount.
func (a *Account) Deposit(amount Money) error {
	if err := a.accept(amount); err != nil {
		return err
	}
	if err := a.room(amount); err != nil {
		return err
	}
	a.record(newEntry(a.now(), KindDeposit, amount.in(a.Currency()), "Deposit", 0))
	return nil
}

// Withdraw debits a positive amount not greater than the balance.
func (a *Account) Withdraw(amount Money) error {
	if err := a.accept(amount); err != nil {
		return err
	}
	if err := a.cover(amount); err != nil {
		return err
	}
	a.record(newEntry(a.now(), KindWithdrawal, amount.in(a.Currency()), "Withdrawal", 0))
	return nil
}

// Transfer moves amount from a to target. Either both accounts gain one
// entry or neither changes.
func (a *Account) Transfer(target *Account, amount Money) error {
	if target == nil {
		return ErrAccountNotFound
	}
	if target == a || target.number == a.number {
		return ErrSameAccount
	}
	if err := a.accept(amount); err != nil {
		return err
	}
	if err := target.accept(amount); err != nil {
		return err
	}
	if err := target.room(amount); err != nil {
		return err
	}
	if err := a.cover(amount); err != nil {
		return err
	}
	when := a.now()
	amount = amount.in(a.Currency())
	a.record(newEntry(when, KindTransferOut, amount,
		fmt.Sprintf("Transfer to account %d - %s", target.number, target.owner), target.number))
	target.record(newEntry(when, KindTransferIn, amount,
		fmt.Sprintf("Transfer from account %d - %s", a.number, a.owner), a.number))
	return nil
}

// Rename changes the owner name.
func (a *Account) Rename(owner string) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return fmt.Errorf("owner name: %w", ErrEmptyField)
	}
	a.owner = owner
	return nil
}

// accept validates an amount before any mutation.
func (a *Account) accept(amount Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	if !amount.compatible(a.balance) {
		return fmt.Errorf("%w: %s amount on a %s account", ErrInvalidAmount, amount.Currency(), a.Currency())
	}
	return nil
}

// room checks that crediting amount keeps the balance printable.
func (a *Account) room(amount Money) error {
	if !a.balance.Add(amount.in(a.Currency())).fits() {
		return fmt.Errorf("%w: account %d cannot hold %s more", ErrInvalidAmount, a.number, amount.in(a.Currency()))
	}
	return nil
}

func (a *Account) cover(amount Money) error {
	if a.balance.LessThan(amount) {
		return fmt.Errorf("%w: account %d holds %s, %s requested", ErrInsufficientFunds, a.number, a.balance, amount.in(a.Currency()))
	}
	return nil
}

func (a *Account) record(e Entry) {
	a.balance = a.balance.Add(e.Signed())
	a.entries = append(a.entries, e)
}

func (a *Account) now() time.Time {
	if a.clock == nil {
		return time.Now()
	}
	return a.clock()
}

// clone returns a deep copy that shares nothing mutable with a.
func (a *Account) clone() *Account {
	c := *a
	c.entries = a.Entries()
	return &c
}

// verify checks the balance invariant, it is used on decoded accounts.
func (a *Account) verify() error {
	sum := M(0, a.Currency())
	for _, e := range a.entries {
		if !e.amount.compatible(a.balance) {
			return fmt.Errorf("account %d: entry %s is in %s", a.number, e.id, e.amount.Currency())
		}
		sum = sum.Add(e.Signed())
		if sum.IsNegative() {
			return fmt.Errorf("account %d: balance goes negative at entry %s", a.number, e.id)
		}
	}
	if !sum.Decimal().Equal(a.balance.Decimal()) {
		return fmt.Errorf("account %d: balance %s does not match entries total %s", a.number, a.balance, sum)
	}
	return nil
}

func (a *Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("number", a.number)
	w.Append("owner", a.owner)
	w.Append("balance", a.balance)
	entries := a.entries
	if entries == nil {
		entries = []Entry{}
	}
	w.Append("entries", entries)
	return w.MarshalJSON()
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var temp struct {
		Number  int     `json:"number"`
		Owner   string  `json:"owner"`
		Balance Money   `json:"balance"`
		Entries []Entry `json:"entries"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.Number <= 0 {
		return fmt.Errorf("invalid account number %d", temp.Number)
	}
	*a = Account{
		number:  temp.Number,
		owner:   temp.Owner,
		balance: temp.Balance,
		entries: temp.Entries,
		clock:   time.Now,
	}
	return a.verify()
}
