package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txnsift/txnsift/internal/importer"
	"github.com/txnsift/txnsift/internal/memofilter"
	"github.com/txnsift/txnsift/internal/model"
)

const defaultBlocklist = "ONLINE TRANSFER .*\nONLINE PAYMENT THANK YOU"

func loadTestdata(t *testing.T) *Session {
	t.Helper()
	dir := t.TempDir()
	data, err := os.ReadFile("../../testdata/checking_2024-01.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "checking.csv"), data, 0o644))

	s := New("Uncategorized", "checking")
	require.NoError(t, s.Load(dir))
	return s
}

func TestLoad(t *testing.T) {
	s := loadTestdata(t)
	assert.Len(t, s.Records(), 6)
	assert.Equal(t, 6, s.Len(), "no filter means every row is visible")
	for _, r := range s.Records() {
		assert.Equal(t, "Uncategorized", r.Category)
		assert.Equal(t, "checking", r.Tag)
	}
}

func TestLoad_NotFoundKeepsRecords(t *testing.T) {
	s := loadTestdata(t)
	err := s.Load(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, importer.ErrDirNotFound)
	assert.Len(t, s.Records(), 6)
}

func TestSetPatterns(t *testing.T) {
	s := loadTestdata(t)
	require.NoError(t, s.SetPatterns(defaultBlocklist))

	assert.Equal(t, 4, s.Len())
	for _, r := range s.Visible() {
		assert.NotContains(t, r.Memo, "ONLINE")
	}
	assert.Len(t, s.Records(), 6, "filtering does not remove records")
	assert.Equal(t, defaultBlocklist, s.Patterns())
}

func TestSetPatterns_InvalidKeepsPrevious(t *testing.T) {
	s := loadTestdata(t)
	require.NoError(t, s.SetPatterns(defaultBlocklist))

	err := s.SetPatterns("ONLINE (")
	var pe *memofilter.PatternError
	require.ErrorAs(t, err, &pe)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, defaultBlocklist, s.Patterns())
}

func TestTotal(t *testing.T) {
	s := loadTestdata(t)
	// -50 - 12.34 + 1500 - 45.67 - 250 - 9.99
	assert.Equal(t, "1132.00", s.Total().StringFixed(2))

	require.NoError(t, s.SetPatterns(defaultBlocklist))
	// -12.34 + 1500 - 45.67 - 9.99
	assert.Equal(t, "1432.00", s.Total().StringFixed(2))
}

func TestTotal_Empty(t *testing.T) {
	s := New("", "")
	assert.True(t, s.Total().IsZero())
}

func TestSetField_EditsUnderlyingRecord(t *testing.T) {
	s := loadTestdata(t)
	require.NoError(t, s.SetPatterns(defaultBlocklist))

	// Visible row 0 is the grocery line, which is record 1 overall.
	row, err := s.Row(0)
	require.NoError(t, err)
	require.Equal(t, "GROCERY OUTLET #123", row.Memo)

	require.NoError(t, s.SetField(0, ColumnCategory, "Groceries"))
	require.NoError(t, s.SetField(0, ColumnTag, "household"))
	require.NoError(t, s.SetField(0, ColumnDescription, "weekly shop"))

	rec := s.Records()[1]
	assert.Equal(t, "Groceries", rec.Category)
	assert.Equal(t, "household", rec.Tag)
	assert.Equal(t, "weekly shop", rec.Description)

	// Edits survive a filter change.
	require.NoError(t, s.SetPatterns(""))
	assert.Equal(t, "Groceries", s.Visible()[1].Category)
}

func TestSetField_ReadOnly(t *testing.T) {
	s := loadTestdata(t)
	for _, col := range []Column{ColumnDate, ColumnAmount, ColumnMemo} {
		err := s.SetField(0, col, "x")
		assert.ErrorIs(t, err, ErrReadOnlyColumn, "column %s", col)
	}
	assert.Equal(t, "ONLINE TRANSFER TO SAVINGS", s.Records()[0].Memo)
}

func TestSetField_OutOfRange(t *testing.T) {
	s := loadTestdata(t)
	assert.ErrorIs(t, s.SetField(-1, ColumnTag, "x"), ErrRowOutOfRange)
	assert.ErrorIs(t, s.SetField(6, ColumnTag, "x"), ErrRowOutOfRange)
}

func TestSetField_Invalid(t *testing.T) {
	s := loadTestdata(t)
	assert.ErrorIs(t, s.SetField(0, ColumnTag, "\xff"), model.ErrInvalidField)
	assert.ErrorIs(t, s.SetField(0, Column("balance"), "x"), ErrUnknownColumn)
}

func TestParseColumn(t *testing.T) {
	c, err := ParseColumn(" Category ")
	require.NoError(t, err)
	assert.Equal(t, ColumnCategory, c)

	_, err = ParseColumn("balance")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestVisibleReturnsCopies(t *testing.T) {
	s := loadTestdata(t)
	v := s.Visible()
	v[0].Category = "changed"
	assert.Equal(t, "Uncategorized", s.Records()[0].Category)
}

func TestSave_WritesVisibleRows(t *testing.T) {
	s := loadTestdata(t)
	require.NoError(t, s.SetPatterns(defaultBlocklist))
	require.NoError(t, s.SetField(0, ColumnCategory, "Groceries"))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "Date,Amount,Category,Tag,Description,Memo\r\n")
	assert.Contains(t, contents, "01/16/2024,$-12.34,Groceries,checking,,GROCERY OUTLET #123\r\n")
	assert.NotContains(t, contents, "ONLINE TRANSFER")
}

func TestSetRecords(t *testing.T) {
	s := New("", "")
	require.NoError(t, s.SetPatterns("SKIP"))
	s.SetRecords([]model.Record{
		{Memo: "SKIP ME", Amount: decimal.NewFromInt(1)},
		{Memo: "KEEP", Amount: decimal.NewFromInt(2)},
	})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "2", s.Total().String())
}
