// Package memofilter hides records whose memo matches a user-supplied
// blocklist of regular expressions.
package memofilter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/txnsift/txnsift/internal/model"
)

// PatternError reports a blocklist line that is not a valid regular expression.
type PatternError struct {
	Line    int // 1-based line in the pattern text
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("pattern on line %d %q: %v", e.Line, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Filter is a compiled memo blocklist. The zero value excludes nothing.
type Filter struct {
	patterns []*regexp.Regexp
}

// Compile parses newline-separated patterns. Blank lines are skipped, so an
// empty text compiles to a filter that keeps every record. Each pattern is
// anchored at the start of the memo: a pattern matching any prefix of the
// memo excludes it.
func Compile(text string) (*Filter, error) {
	f := &Filter{}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		// Validate the bare pattern first so errors point at what the user typed.
		if _, err := regexp.Compile(line); err != nil {
			return nil, &PatternError{Line: i + 1, Pattern: line, Err: err}
		}
		re, err := regexp.Compile(`^(?:` + line + `)`)
		if err != nil {
			return nil, &PatternError{Line: i + 1, Pattern: line, Err: err}
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Len returns the number of active patterns.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.patterns)
}

// Excludes reports whether any pattern matches the start of memo.
func (f *Filter) Excludes(memo string) bool {
	if f == nil {
		return false
	}
	for _, re := range f.patterns {
		if re.MatchString(memo) {
			return true
		}
	}
	return false
}

// Indices returns the positions of the records the filter keeps, in order.
func (f *Filter) Indices(records []model.Record) []int {
	idx := make([]int, 0, len(records))
	for i := range records {
		if !f.Excludes(records[i].Memo) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Apply returns the records whose memo is not excluded, preserving order.
func (f *Filter) Apply(records []model.Record) []model.Record {
	if f.Len() == 0 {
		return records
	}
	kept := make([]model.Record, 0, len(records))
	for _, r := range records {
		if !f.Excludes(r.Memo) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Apply compiles text and filters records with it.
func Apply(records []model.Record, text string) ([]model.Record, error) {
	f, err := Compile(text)
	if err != nil {
		return nil, err
	}
	return f.Apply(records), nil
}

// JoinPatterns builds pattern text from a list, one pattern per line.
func JoinPatterns(patterns []string) string {
	return strings.Join(patterns, "\n")
}
