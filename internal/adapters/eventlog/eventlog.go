// Package eventlog reads the delimited scoring event export. The first row
// is a header and is not returned.
package eventlog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// DefaultDelimiter separates fields when none is configured.
const DefaultDelimiter = ","

// Read opens path and returns its data rows.
func Read(path, delim string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()
	return ReadFrom(f, delim)
}

// ReadFrom returns the data rows of r. A single-character delimiter follows
// CSV quoting rules; longer delimiters split each line literally. Every row
// must have as many fields as the header.
func ReadFrom(r io.Reader, delim string) ([][]string, error) {
	if delim == "" {
		delim = DefaultDelimiter
	}
	if utf8.RuneCountInString(delim) == 1 {
		return readCSV(r, delim)
	}
	return readSplit(r, delim)
}

func readCSV(r io.Reader, delim string) ([][]string, error) {
	comma, _ := utf8.DecodeRuneInString(delim)
	if comma == '"' || comma == '\r' || comma == '\n' || comma == utf8.RuneError {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDelimiter, delim)
	}
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	var rows [][]string
	header := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrIO, err)
		}
		if header {
			header = false
			continue
		}
		rows = append(rows, rec)
	}
}

func readSplit(r io.Reader, delim string) ([][]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var rows [][]string
	width, line := -1, 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}
		fields := strings.Split(text, delim)
		if width < 0 {
			width = len(fields)
			continue
		}
		if len(fields) != width {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d", ErrMalformedRow, line, width, len(fields))
		}
		rows = append(rows, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return rows, nil
}
