package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/txnsift/txnsift/internal/model"
)

// Header is the CSV header for saved exports.
const Header = "Date,Amount,Category,Tag,Description,Memo"

const (
	// DateFormat renders dates as MM/DD/YYYY.
	DateFormat = "01/02/2006"

	numFields = 6
	colDate   = 0
	colAmount = 1
	colCat    = 2
	colTag    = 3
	colDesc   = 4
	colMemo   = 5
)

// IOError reports a failure to write an export file.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatCurrency renders an amount as "$" plus exactly two decimals.
// Negative amounts keep their sign after the dollar sign: "$-50.00".
// Zero is always "$0.00" and halves round away from zero.
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// MarshalRecord converts a Record to a CSV row ([]string).
func MarshalRecord(r model.Record) []string {
	row := make([]string, numFields)
	row[colDate] = r.Date.Format(DateFormat)
	row[colAmount] = FormatCurrency(r.Amount)
	row[colCat] = r.Category
	row[colTag] = r.Tag
	row[colDesc] = r.Description
	row[colMemo] = r.Memo
	return row
}

// WriteCSV writes records to w, header first, with CRLF line endings.
func WriteCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		if err := cw.Write(MarshalRecord(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveToCSV writes records to path, replacing any existing file.
func SaveToCSV(records []model.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Op: "create", Err: err}
	}

	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return &IOError{Path: path, Op: "write", Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Path: path, Op: "close", Err: err}
	}
	return nil
}
