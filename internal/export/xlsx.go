package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/txnsift/txnsift/internal/model"
)

const (
	sheetName = "Transactions"
	// currencyFormat is the custom number format for the Amount column.
	currencyFormat = `"$"0.00;"$"-0.00`
)

var xlsxColumns = []struct {
	header string
	col    string
	width  float64
}{
	{"Date", "A", 12},
	{"Amount", "B", 12},
	{"Category", "C", 18},
	{"Tag", "D", 14},
	{"Description", "E", 30},
	{"Memo", "F", 40},
}

// SaveToXLSX writes records to a single-sheet workbook at path with the
// same columns as the CSV export and a total row under the amounts.
func SaveToXLSX(records []model.Record, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	format := currencyFormat
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for _, c := range xlsxColumns {
		if err := f.SetCellValue(sheetName, c.col+"1", c.header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		if err := f.SetColWidth(sheetName, c.col, c.col, c.width); err != nil {
			return fmt.Errorf("setting width: %w", err)
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", boldStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range records {
		row := i + 2
		amount, _ := r.Amount.Float64()
		values := []any{r.Date.Format(DateFormat), amount, r.Category, r.Tag, r.Description, r.Memo}
		for j, v := range values {
			cell := fmt.Sprintf("%s%d", xlsxColumns[j].col, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing %s: %w", cell, err)
			}
		}
		if err := f.SetCellStyle(sheetName, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), amountStyle); err != nil {
			return fmt.Errorf("styling row %d: %w", row, err)
		}
	}

	totalRow := len(records) + 2
	total, _ := model.SumAmounts(records).Float64()
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
		return fmt.Errorf("writing total label: %w", err)
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", totalRow), total); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("B%d", totalRow), fmt.Sprintf("B%d", totalRow), amountStyle); err != nil {
		return fmt.Errorf("styling total: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return &IOError{Path: path, Op: "save", Err: err}
	}
	return nil
}
