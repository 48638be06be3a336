package model

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxFieldLength is the maximum number of runes accepted by the field setters.
const MaxFieldLength = 1024

// ErrInvalidField is returned when a user-supplied field value is rejected.
var ErrInvalidField = errors.New("invalid field value")

// Record is one parsed transaction line.
type Record struct {
	Amount      decimal.Decimal
	Date        time.Time // midnight UTC
	Memo        string    // from the source ledger, read-only
	Description string
	Category    string
	Tag         string
}

// SetCategory validates and sets the category.
func (r *Record) SetCategory(v string) error {
	if err := checkField("category", v); err != nil {
		return err
	}
	r.Category = v
	return nil
}

// SetTag validates and sets the tag.
func (r *Record) SetTag(v string) error {
	if err := checkField("tag", v); err != nil {
		return err
	}
	r.Tag = v
	return nil
}

// SetDescription validates and sets the description.
func (r *Record) SetDescription(v string) error {
	if err := checkField("description", v); err != nil {
		return err
	}
	r.Description = v
	return nil
}

func checkField(name, v string) error {
	if !utf8.ValidString(v) {
		return fmt.Errorf("%s: not valid UTF-8: %w", name, ErrInvalidField)
	}
	if n := utf8.RuneCountInString(v); n > MaxFieldLength {
		return fmt.Errorf("%s: %d characters exceeds limit of %d: %w", name, n, MaxFieldLength, ErrInvalidField)
	}
	return nil
}

// SumAmounts returns the sum of all amounts, or zero for no records.
func SumAmounts(records []Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}
