package journal

import (
	"strings"

	"github.com/rustyeddy/perf2csv/ledger"
)

// FormatLegsOrg renders legs as an Org-mode table with the output columns.
func FormatLegsOrg(legs []ledger.TradeLeg, includeFee bool) string {
	header := Header(includeFee)

	var b strings.Builder
	writeOrgRow(&b, header)
	b.WriteString("|")
	for i := range header {
		if i > 0 {
			b.WriteString("+")
		}
		b.WriteString("---")
	}
	b.WriteString("|\n")
	for _, l := range legs {
		writeOrgRow(&b, Record(l, includeFee))
	}
	return b.String()
}

func writeOrgRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(c, "|", "\\vert{}"))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
