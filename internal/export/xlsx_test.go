package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSaveToXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, SaveToXLSX(sample(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4, "header + 2 records + total")

	assert.Equal(t, []string{"Date", "Amount", "Category", "Tag", "Description", "Memo"}, rows[0])
	assert.Equal(t, "01/15/2024", rows[1][0])
	assert.Equal(t, "-50", rows[1][1])
	assert.Equal(t, "Groceries", rows[1][2])
	assert.Equal(t, "PAYROLL, ACME", rows[2][5])
	assert.Equal(t, "Total", rows[3][0])
	assert.Equal(t, "1450", rows[3][1])
}

func TestSaveToXLSX_UnwritablePath(t *testing.T) {
	err := SaveToXLSX(sample(), filepath.Join(t.TempDir(), "nope", "out.xlsx"))
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "save", ioErr.Op)
}
