package renderer

import (
	"fmt"

	"github.com/etnz/teller"
)

// Entry renders a one line description of a ledger entry.
func Entry(e teller.Entry) string {
	if e.Description() != "" && e.Kind() != teller.KindDeposit && e.Kind() != teller.KindWithdrawal {
		return e.Description()
	}
	switch e.Kind() {
	case teller.KindDeposit:
		return fmt.Sprintf("Deposited %s", e.Amount())
	case teller.KindWithdrawal:
		return fmt.Sprintf("Withdrew %s", e.Amount())
	case teller.KindTransferOut:
		return fmt.Sprintf("Sent %s to account %d", e.Amount(), e.Counterparty())
	case teller.KindTransferIn:
		return fmt.Sprintf("Received %s from account %d", e.Amount(), e.Counterparty())
	default:
		return e.Kind().String()
	}
}
