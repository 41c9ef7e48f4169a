package teller

import (
	"fmt"
	"strings"
)

// StatementTimeLayout is the timestamp layout used in text statements.
const StatementTimeLayout = "02/01/2006 15:04:05"

// Statement renders the history of the account in chronological order
// followed by the current balance.
func (a *Account) Statement() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Statement for account %d\n", a.number)
	fmt.Fprintf(&sb, "Owner: %s\n\n", a.owner)
	fmt.Fprintf(&sb, "%-20s %-13s %14s  %s\n", "Date/Time", "Kind", "Amount", "Description")
	sb.WriteString(strings.Repeat("-", 72))
	sb.WriteString("\n")
	for _, e := range a.entries {
		fmt.Fprintf(&sb, "%-20s %-13s %14s  %s\n",
			e.when.Format(StatementTimeLayout),
			e.kind,
			e.amount,
			e.description)
	}
	fmt.Fprintf(&sb, "\nCurrent balance: %s\n", a.balance)
	return sb.String()
}
