package model

import (
	"strconv"
	"strings"
)

// EventCode classifies a scoring event.
type EventCode int

// Recognised scoring events.
const (
	EventUnknown EventCode = iota
	TossupCorrect
	TossupError
	BonusCorrect
	BonusError
)

func (c EventCode) String() string {
	switch c {
	case TossupCorrect:
		return "TC"
	case TossupError:
		return "TE"
	case BonusCorrect:
		return "BC"
	case BonusError:
		return "BE"
	default:
		return "unknown"
	}
}

// EventCodes holds the literal event column values, quoting included, that
// the event log uses for each scoring event.
type EventCodes struct {
	TossupCorrect string `koanf:"tossup_correct"`
	TossupError   string `koanf:"tossup_error"`
	BonusCorrect  string `koanf:"bonus_correct"`
	BonusError    string `koanf:"bonus_error"`
}

// DefaultEventCodes returns the codes as written by the quiz scoring software.
func DefaultEventCodes() EventCodes {
	return EventCodes{
		TossupCorrect: "'TC'",
		TossupError:   "'TE'",
		BonusCorrect:  "'BC'",
		BonusError:    "'BE'",
	}
}

// List returns the four literal codes.
func (c EventCodes) List() []string {
	return []string{c.TossupCorrect, c.TossupError, c.BonusCorrect, c.BonusError}
}

// Classify maps a raw event column value to its EventCode. Matching is exact.
func (c EventCodes) Classify(raw string) EventCode {
	switch raw {
	case c.TossupCorrect:
		return TossupCorrect
	case c.TossupError:
		return TossupError
	case c.BonusCorrect:
		return BonusCorrect
	case c.BonusError:
		return BonusError
	default:
		return EventUnknown
	}
}

// EventRecord is one parsed row of the event log.
type EventRecord struct {
	Round      int    // 1-indexed as written; 0 when missing or not numeric
	Question   int    // 1-indexed as written; 0 when missing or not numeric
	Quizzer    string // quizzer name
	Team       int    // 0 when missing, quoted or not numeric
	Event      string // raw event column, quoting included
	Tournament string // tournament name, "" when absent
	HasEvent   bool   // false when the row is too short to carry an event column
}

// Layout gives the 0-based column of each field in an event log row.
type Layout struct {
	Tournament int `koanf:"tournament"`
	Round      int `koanf:"round"`
	Question   int `koanf:"question"`
	Quizzer    int `koanf:"quizzer"`
	Team       int `koanf:"team"`
	Event      int `koanf:"event"`
}

// DefaultLayout returns the column layout of the scoring software export.
func DefaultLayout() Layout {
	return Layout{
		Tournament: 0,
		Round:      4,
		Question:   5,
		Quizzer:    7,
		Team:       8,
		Event:      10,
	}
}

// Record parses one row. Missing columns read as empty strings.
func (l Layout) Record(row []string) EventRecord {
	return EventRecord{
		Round:      parseQuoted(column(row, l.Round)),
		Question:   parseQuoted(column(row, l.Question)),
		Quizzer:    column(row, l.Quizzer),
		Team:       parseUint(column(row, l.Team)),
		Event:      column(row, l.Event),
		Tournament: column(row, l.Tournament),
		HasEvent:   l.Event >= 0 && l.Event < len(row),
	}
}

// Records parses every row in order.
func (l Layout) Records(rows [][]string) []EventRecord {
	out := make([]EventRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, l.Record(row))
	}
	return out
}

func column(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseQuoted reads a non-negative integer, tolerating single-quote wrapping.
// Anything else yields 0.
func parseQuoted(s string) int {
	return parseUint(strings.Trim(s, "'"))
}

// parseUint reads a bare non-negative integer, or 0. The team column goes
// through here directly, so a quoted team is unparseable.
func parseUint(s string) int {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0
	}
	return int(n)
}
