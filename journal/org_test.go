package journal

import (
	"strings"
	"testing"

	"github.com/rustyeddy/perf2csv/ledger"
	"github.com/stretchr/testify/assert"
)

func TestFormatLegsOrg(t *testing.T) {
	t.Parallel()

	out := FormatLegsOrg(testLegs(), true)
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, "| 商品名稱 | 交易時間 | 成交價 | 成交口數 | 手續費 | 一大點價值 |", lines[0])
	assert.Equal(t, "|---+---+---+---+---+---|", lines[1])
	assert.Equal(t, "| TestInst | 2024/01/01 10:00:00 | 110 | -1 | 2 | 50 |", lines[3])
}

func TestFormatLegsOrgEscapesPipes(t *testing.T) {
	out := FormatLegsOrg([]ledger.TradeLeg{{Symbol: "A|B"}}, false)
	assert.Contains(t, out, `A\vert{}B`)
	assert.NotContains(t, out, "手續費")
}
