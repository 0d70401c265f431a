package market

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestReadSymbolsChineseHeaderWithBOM(t *testing.T) {
	t.Parallel()

	in := "\ufeff商品名稱,一大點價值,手續費\nTXF,200,50\nMTX,50,0.002%\n"
	tbl, err := ReadSymbols(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tbl, 2)

	txf := tbl.Lookup("TXF")
	assert.True(t, d("200").Equal(txf.PointValue))
	assert.Equal(t, FeeSchedule{Amount: d("50")}.String(), txf.Fee.String())

	mtx := tbl.Lookup("MTX")
	assert.True(t, d("50").Equal(mtx.PointValue))
	assert.True(t, mtx.Fee.Percent)
	assert.True(t, d("0.002").Equal(mtx.Fee.Amount))
}

func TestReadSymbolsEnglishHeaderNoFee(t *testing.T) {
	t.Parallel()

	in := "Symbol Name,Point Value\n  ES ,50\n,12\nNQ,20\n"
	tbl, err := ReadSymbols(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tbl, 2)

	es := tbl.Lookup("ES")
	assert.True(t, d("50").Equal(es.PointValue))
	assert.True(t, es.Fee.IsZero())
}

func TestReadSymbolsUTF16(t *testing.T) {
	t.Parallel()

	// UTF-16LE with BOM, as written by some spreadsheet exports.
	text := "商品名稱,一大點價值\nTXF,200\n"
	var buf []byte
	buf = append(buf, 0xFF, 0xFE)
	for _, r := range text {
		buf = append(buf, byte(r), byte(r>>8))
	}

	tbl, err := ReadSymbols(strings.NewReader(string(buf)))
	require.NoError(t, err)
	assert.True(t, d("200").Equal(tbl.Lookup("TXF").PointValue))
}

func TestReadSymbolsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		errMsg string
	}{
		{"empty", "", "read header"},
		{"no name column", "Foo,一大點價值\nA,1\n", "商品名稱"},
		{"no point value column", "商品名稱,Foo\nA,1\n", "一大點價值"},
		{"bad point value", "商品名稱,一大點價值\nA,abc\n", "line 2"},
		{"bad fee", "商品名稱,一大點價值,手續費\nA,1,x%\n", "fee schedule"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSymbols(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestReadSymbolsMissingColumnIsSentinel(t *testing.T) {
	_, err := ReadSymbols(strings.NewReader("a,b\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLookupUnknownIsZero(t *testing.T) {
	tbl := SymbolTable{"TXF": {PointValue: d("200")}}
	info := tbl.Lookup("NOPE")
	assert.True(t, info.PointValue.IsZero())
	assert.True(t, info.Fee.IsZero())

	assert.True(t, d("200").Equal(tbl.Lookup(" TXF ").PointValue))
}

func TestLoadSymbols(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "symbol.csv")
	require.NoError(t, os.WriteFile(path, []byte("商品名稱,一大點價值\nTestInst,50\n"), 0644))

	tbl, err := LoadSymbols(path)
	require.NoError(t, err)
	assert.True(t, d("50").Equal(tbl.Lookup("TestInst").PointValue))

	_, err = LoadSymbols(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
