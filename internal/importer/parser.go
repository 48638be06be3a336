package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/txnsift/txnsift/internal/model"
)

const (
	// DateLayout parses MM/DD/YYYY, also accepting single-digit month and day.
	DateLayout = "1/2/2006"

	numFields = 5
	colDate   = 0
	colAmount = 1
	colMemo   = 4
)

// Parse reads a headerless bank CSV export. Every line must have exactly
// five fields: date, amount, two ignored columns, memo. Amounts are negated
// so outflows reported as positive become negative. The first malformed row
// aborts the parse; a blank line counts as a malformed row.
func Parse(r io.Reader, defaultCategory, defaultTag string) ([]model.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = numFields
	cr.LazyQuotes = true

	var records []model.Record
	for {
		// encoding/csv skips empty lines, so catch them before each read.
		if off := cr.InputOffset(); isBlankLine(data[off:]) {
			return nil, &FormatError{
				Row:   bytes.Count(data[:off], []byte("\n")) + 1,
				Field: "row",
				Err:   errBlankLine,
			}
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, rowError(err)
		}
		line, _ := cr.FieldPos(0)

		record, err := parseRow(rec, defaultCategory, defaultTag)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Row = line
			}
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path, defaultCategory, defaultTag string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := Parse(f, defaultCategory, defaultTag)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.File = path
		}
		return nil, err
	}
	return records, nil
}

func parseRow(rec []string, defaultCategory, defaultTag string) (model.Record, error) {
	date, err := time.Parse(DateLayout, rec[colDate])
	if err != nil {
		return model.Record{}, &FormatError{Field: "date", Value: rec[colDate], Err: err}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[colAmount]))
	if err != nil {
		return model.Record{}, &FormatError{Field: "amount", Value: rec[colAmount], Err: err}
	}

	return model.Record{
		Amount:   amount.Neg(),
		Date:     date,
		Memo:     rec[colMemo],
		Category: defaultCategory,
		Tag:      defaultTag,
	}, nil
}

var errBlankLine = errors.New("blank line")

// isBlankLine reports whether rest starts with an empty line.
func isBlankLine(rest []byte) bool {
	return bytes.HasPrefix(rest, []byte("\n")) || bytes.HasPrefix(rest, []byte("\r\n"))
}

// rowError converts an encoding/csv failure into a FormatError.
func rowError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &FormatError{Row: pe.StartLine, Field: "row", Err: pe.Err}
	}
	return fmt.Errorf("reading CSV: %w", err)
}
