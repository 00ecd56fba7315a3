// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Base question type configuration.
const (
	DefaultTypeCodes   = "AGIQRSXV"
	DefaultGeneralType = 'G'
)

// QuestionType is a single question category code, e.g. 'Q' or 'G'.
type QuestionType rune

func (t QuestionType) String() string { return string(t) }

// TypeSet is the closed set of recognised question types together with the
// column index each one occupies in the count matrices. It is built once and
// never mutated; copies share the same read-only tables.
type TypeSet struct {
	codes   []QuestionType
	indices map[QuestionType]int
	general QuestionType
}

// NewTypeSet builds a TypeSet from codes in column order. Index 0 doubles as
// the fallback column for codes outside the set. general must be a member.
func NewTypeSet(codes string, general rune) (TypeSet, error) {
	if codes == "" {
		return TypeSet{}, fmt.Errorf("%w: no codes", ErrInvalidTypeSet)
	}
	s := TypeSet{
		indices: make(map[QuestionType]int, len(codes)),
		general: QuestionType(general),
	}
	for _, r := range codes {
		t := QuestionType(r)
		if _, dup := s.indices[t]; dup {
			return TypeSet{}, fmt.Errorf("%w: duplicate code %q", ErrInvalidTypeSet, r)
		}
		s.indices[t] = len(s.codes)
		s.codes = append(s.codes, t)
	}
	if _, ok := s.indices[s.general]; !ok {
		return TypeSet{}, fmt.Errorf("%w: general type %q not in %q", ErrInvalidTypeSet, general, codes)
	}
	return s, nil
}

// DefaultTypeSet returns the eight-code base configuration.
func DefaultTypeSet() TypeSet {
	s, err := NewTypeSet(DefaultTypeCodes, DefaultGeneralType)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of recognised codes.
func (s TypeSet) Len() int { return len(s.codes) }

// General returns the designated default/general category.
func (s TypeSet) General() QuestionType { return s.general }

// Codes returns the codes in column order.
func (s TypeSet) Codes() []QuestionType {
	out := make([]QuestionType, len(s.codes))
	copy(out, s.codes)
	return out
}

// Sorted returns the codes sorted ascending.
func (s TypeSet) Sorted() []QuestionType {
	out := s.Codes()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Contains reports whether t is a recognised code.
func (s TypeSet) Contains(t QuestionType) bool {
	_, ok := s.indices[t]
	return ok
}

// Index returns the column for t. Unknown codes resolve to column 0 with ok
// set to false.
func (s TypeSet) Index(t QuestionType) (int, bool) {
	i, ok := s.indices[t]
	if !ok {
		return 0, false
	}
	return i, true
}

// Select parses a user supplied allow-list such as "qgA". Every character must
// case-insensitively match a recognised code. Duplicates collapse and the
// result is sorted ascending. An empty selection means every code.
func (s TypeSet) Select(selection string) ([]QuestionType, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return s.Sorted(), nil
	}
	seen := make(map[QuestionType]bool, len(selection))
	out := make([]QuestionType, 0, len(selection))
	for _, r := range selection {
		t := QuestionType(unicode.ToUpper(r))
		if !s.Contains(t) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidQuestionType, r)
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// TypeGrid maps a 0-indexed (round, question) pair to its question type.
// Rows need not have equal length.
type TypeGrid [][]QuestionType

// Rounds returns the number of rounds in the grid.
func (g TypeGrid) Rounds() int { return len(g) }

// Lookup returns the type at (round, question). Negative or out of range
// positions are a miss.
func (g TypeGrid) Lookup(round, question int) (QuestionType, bool) {
	if round < 0 || round >= len(g) {
		return 0, false
	}
	row := g[round]
	if question < 0 || question >= len(row) {
		return 0, false
	}
	return row[question], true
}
