package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txnsift/txnsift/internal/importer"
	"github.com/txnsift/txnsift/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func sample() []model.Record {
	return []model.Record{
		{
			Amount:      decimal.RequireFromString("-50"),
			Date:        date(2024, 1, 15),
			Memo:        "GROCERY OUTLET #123",
			Description: "weekly shop",
			Category:    "Groceries",
			Tag:         "household",
		},
		{
			Amount: decimal.RequireFromString("1500"),
			Date:   date(2024, 1, 2),
			Memo:   "PAYROLL, ACME",
		},
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-50", "$-50.00"},
		{"12.3", "$12.30"},
		{"0", "$0.00"},
		{"-62.34", "$-62.34"},
		// Half away from zero on the exact decimal value.
		{"0.005", "$0.01"},
		{"-0.005", "$-0.01"},
		{"2.675", "$2.68"},
		{"-0.004", "$0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)), "FormatCurrency(%s)", tt.in)
	}
}

func TestFormatCurrency_NegatedZero(t *testing.T) {
	// A parsed "0.00" is negated on import; decimals have no negative zero.
	assert.Equal(t, "$0.00", FormatCurrency(decimal.RequireFromString("0.00").Neg()))
}

func TestMarshalRecord(t *testing.T) {
	row := MarshalRecord(sample()[0])
	assert.Equal(t, []string{"01/15/2024", "$-50.00", "Groceries", "household", "weekly shop", "GROCERY OUTLET #123"}, row)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))

	want := "Date,Amount,Category,Tag,Description,Memo\r\n" +
		"01/15/2024,$-50.00,Groceries,household,weekly shop,GROCERY OUTLET #123\r\n" +
		"01/02/2024,$1500.00,,,,\"PAYROLL, ACME\"\r\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, Header+"\r\n", buf.String())
}

func TestSaveToCSV_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale\n", 100)), 0o644))

	require.NoError(t, SaveToCSV(sample()[:1], path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\r\n")
	assert.Len(t, lines, 2)
	assert.NotContains(t, string(data), "stale")
}

func TestSaveToCSV_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.csv")
	err := SaveToCSV(sample(), path)
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, path, ioErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveToCSV_NotReadableByParser(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveToCSV(sample(), filepath.Join(dir, "saved.csv")))

	_, err := importer.LoadFromDirectory(dir, "", "")
	require.Error(t, err, "saved exports are not valid parser input")

	var fe *importer.FormatError
	assert.ErrorAs(t, err, &fe)
}
