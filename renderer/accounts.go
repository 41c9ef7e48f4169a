package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/teller"
	md "github.com/nao1215/markdown"
)

// AccountsMarkdown renders the list of accounts with a total line.
func AccountsMarkdown(accounts []*teller.Account, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Accounts")
	if len(accounts) == 0 {
		doc.PlainText("No accounts.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Number", "Owner", "Entries", "Balance"},
		Rows:   [][]string{},
	}
	total := teller.M(0, currency)
	for _, a := range accounts {
		total = total.Add(a.Balance())
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(a.Number()),
			a.Owner(),
			strconv.Itoa(len(a.Entries())),
			a.Balance().String(),
		})
	}
	table.Rows = append(table.Rows, []string{"", md.Bold("Total"), "", md.Bold(total.String())})
	doc.Table(table)

	return doc.String()
}
