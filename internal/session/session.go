// Package session holds the record set a user is working on and exposes
// the load, filter, edit, total and save operations to a front end.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/txnsift/txnsift/internal/export"
	"github.com/txnsift/txnsift/internal/importer"
	"github.com/txnsift/txnsift/internal/memofilter"
	"github.com/txnsift/txnsift/internal/model"
)

// Column identifies a field of the record grid.
type Column string

const (
	ColumnDate        Column = "date"
	ColumnAmount      Column = "amount"
	ColumnCategory    Column = "category"
	ColumnTag         Column = "tag"
	ColumnDescription Column = "description"
	ColumnMemo        Column = "memo"
)

// Columns lists the grid columns in display order.
var Columns = []Column{ColumnDate, ColumnAmount, ColumnCategory, ColumnTag, ColumnDescription, ColumnMemo}

var (
	// ErrReadOnlyColumn is returned when editing date, amount or memo.
	ErrReadOnlyColumn = errors.New("column is read-only")
	// ErrUnknownColumn is returned for a column name that is not in Columns.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrRowOutOfRange is returned when a row index is outside the visible rows.
	ErrRowOutOfRange = errors.New("row out of range")
)

// ParseColumn resolves a case-insensitive column name.
func ParseColumn(name string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Columns {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// Session owns the loaded records and the active memo filter.
type Session struct {
	defaultCategory string
	defaultTag      string

	records  []model.Record
	patterns string
	filter   *memofilter.Filter
	visible  []int
}

// New creates an empty Session. Records loaded later get the given
// category and tag.
func New(defaultCategory, defaultTag string) *Session {
	return &Session{
		defaultCategory: defaultCategory,
		defaultTag:      defaultTag,
		filter:          &memofilter.Filter{},
	}
}

// Load replaces all records with the CSV files found in dir.
// On error the current records are kept.
func (s *Session) Load(dir string) error {
	records, err := importer.LoadFromDirectory(dir, s.defaultCategory, s.defaultTag)
	if err != nil {
		return err
	}
	s.SetRecords(records)
	return nil
}

// SetRecords replaces all records.
func (s *Session) SetRecords(records []model.Record) {
	s.records = records
	s.refresh()
}

// SetPatterns compiles a new memo blocklist. If the text is invalid the
// previous filter stays active and a *memofilter.PatternError is returned.
func (s *Session) SetPatterns(text string) error {
	f, err := memofilter.Compile(text)
	if err != nil {
		return err
	}
	s.patterns = text
	s.filter = f
	s.refresh()
	return nil
}

// Patterns returns the text of the active blocklist.
func (s *Session) Patterns() string {
	return s.patterns
}

func (s *Session) refresh() {
	s.visible = s.filter.Indices(s.records)
}

// Records returns every loaded record, including filtered ones.
func (s *Session) Records() []model.Record {
	return s.records
}

// Len returns the number of visible rows.
func (s *Session) Len() int {
	return len(s.visible)
}

// Visible returns copies of the records that pass the filter, in order.
func (s *Session) Visible() []model.Record {
	out := make([]model.Record, len(s.visible))
	for i, idx := range s.visible {
		out[i] = s.records[idx]
	}
	return out
}

// Row returns the visible record at row.
func (s *Session) Row(row int) (model.Record, error) {
	if row < 0 || row >= len(s.visible) {
		return model.Record{}, fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, row, len(s.visible))
	}
	return s.records[s.visible[row]], nil
}

// Total sums the visible amounts.
func (s *Session) Total() decimal.Decimal {
	return model.SumAmounts(s.Visible())
}

// SetField edits one cell of the visible grid. Rows are indexed in the
// filtered view; the edit lands on the underlying record.
func (s *Session) SetField(row int, col Column, value string) error {
	if row < 0 || row >= len(s.visible) {
		return fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, row, len(s.visible))
	}
	rec := &s.records[s.visible[row]]

	switch col {
	case ColumnCategory:
		return rec.SetCategory(value)
	case ColumnTag:
		return rec.SetTag(value)
	case ColumnDescription:
		return rec.SetDescription(value)
	case ColumnDate, ColumnAmount, ColumnMemo:
		return fmt.Errorf("%w: %s", ErrReadOnlyColumn, col)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
}

// Save writes the visible records to path as CSV.
func (s *Session) Save(path string) error {
	return export.SaveToCSV(s.Visible(), path)
}

// SaveXLSX writes the visible records to path as an XLSX workbook.
func (s *Session) SaveXLSX(path string) error {
	return export.SaveToXLSX(s.Visible(), path)
}
