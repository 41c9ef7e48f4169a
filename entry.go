package teller

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind is the kind of balance-changing event recorded by an Entry.
type Kind int

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindTransferOut
	KindTransferIn
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindTransferOut:
		return "transfer-out"
	case KindTransferIn:
		return "transfer-in"
	default:
		return "unknown"
	}
}

// ParseKind parses the string form of a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "deposit":
		return KindDeposit, nil
	case "withdrawal":
		return KindWithdrawal, nil
	case "transfer-out":
		return KindTransferOut, nil
	case "transfer-in":
		return KindTransferIn, nil
	default:
		return 0, fmt.Errorf("unknown entry kind: %q", s)
	}
}

// Credit reports whether entries of this kind increase the balance.
func (k Kind) Credit() bool { return k == KindDeposit || k == KindTransferIn }

func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Entry is an immutable record of one balance-changing event on an account.
type Entry struct {
	id           uuid.UUID
	when         time.Time
	kind         Kind
	amount       Money
	description  string
	counterparty int // account on the other side of a transfer, 0 otherwise
}

func newEntry(when time.Time, kind Kind, amount Money, description string, counterparty int) Entry {
	return Entry{
		id:           uuid.New(),
		when:         when,
		kind:         kind,
		amount:       amount,
		description:  description,
		counterparty: counterparty,
	}
}

func (e Entry) ID() uuid.UUID       { return e.id }
func (e Entry) When() time.Time     { return e.when }
func (e Entry) Kind() Kind          { return e.kind }
func (e Entry) Amount() Money       { return e.amount }
func (e Entry) Description() string { return e.description }
func (e Entry) Counterparty() int   { return e.counterparty }

// Signed returns the amount with the sign it contributes to the balance.
func (e Entry) Signed() Money {
	if e.kind.Credit() {
		return e.amount
	}
	return e.amount.Neg()
}

func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", e.id)
	w.Append("time", e.when)
	w.Append("kind", e.kind)
	w.EmbedFrom(e.amount)
	w.Optional("description", e.description)
	w.Optional("counterparty", e.counterparty)
	return w.MarshalJSON()
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var temp struct {
		amountField
		ID           uuid.UUID `json:"id"`
		Time         time.Time `json:"time"`
		Kind         Kind      `json:"kind"`
		Description  string    `json:"description"`
		Counterparty int       `json:"counterparty"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.Kind == 0 {
		return fmt.Errorf("entry %s: missing kind", temp.ID)
	}
	if !temp.Amount.IsPositive() {
		return fmt.Errorf("entry %s: %w", temp.ID, ErrInvalidAmount)
	}
	*e = Entry{
		id:           temp.ID,
		when:         temp.Time,
		kind:         temp.Kind,
		amount:       temp.Money(),
		description:  temp.Description,
		counterparty: temp.Counterparty,
	}
	return nil
}
