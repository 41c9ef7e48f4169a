package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/teller"
	md "github.com/nao1215/markdown"
)

// StatementMarkdown renders the statement of an account as markdown.
func StatementMarkdown(a *teller.Account) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Statement for account %d", a.Number()))
	doc.PlainText(fmt.Sprintf("Owner: %s", a.Owner()))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Date", "Kind", "Amount", "Description"},
		Rows:   [][]string{},
	}
	for _, e := range a.Entries() {
		table.Rows = append(table.Rows, []string{
			e.When().Format(teller.StatementTimeLayout),
			e.Kind().String(),
			e.Signed().SignedString(),
			Entry(e),
		})
	}
	doc.Table(table)
	doc.PlainText(md.Bold(fmt.Sprintf("Current balance: %s", a.Balance())))

	return doc.String()
}
