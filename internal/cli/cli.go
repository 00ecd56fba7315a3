// Package cli parses the qperformance command line.
package cli

import (
	"fmt"
	"io"
	"strings"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const maxDelimiterLen = 5

// Options is the parsed command line.
type Options struct {
	QuestionSets string // directory of answer-key documents
	EventLog     string // delimited event log
	Verbose      bool
	Help         bool
	Types        string // raw -t value, validated against the configured types later
	Delimiter    string // "" keeps the configured delimiter
	Tournament   string
	ShowRounds   bool
}

type state int

const (
	stateIdle state = iota
	stateExpectTypes
	stateExpectDelimiter
	stateExpectTournamentName
)

func (s state) flag() string {
	switch s {
	case stateExpectTypes:
		return "--types"
	case stateExpectDelimiter:
		return "--delim"
	case stateExpectTournamentName:
		return "--name"
	default:
		return ""
	}
}

// Parse consumes args token by token. -h/--help anywhere a flag is expected
// returns immediately with Help set and nothing else validated.
func Parse(args []string) (Options, error) {
	var (
		opts       Options
		positional []string
		st         = stateIdle
	)
	for _, arg := range args {
		if st != stateIdle {
			if err := opts.set(st, arg); err != nil {
				return Options{}, err
			}
			st = stateIdle
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		if !strings.HasPrefix(arg, "--") {
			name, hasValue = arg, false
		}
		switch name {
		case "-h", "--help":
			return Options{Help: true}, nil
		case "-v", "--verbose":
			opts.Verbose = true
			continue
		case "-r", "--round":
			opts.ShowRounds = true
			continue
		case "-t", "--types":
			st = stateExpectTypes
		case "-d", "--delim":
			st = stateExpectDelimiter
		case "-n", "--name":
			st = stateExpectTournamentName
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return Options{}, fmt.Errorf("%w: unknown option %s", ErrUsage, arg)
			}
			positional = append(positional, arg)
			continue
		}
		if hasValue {
			if err := opts.set(st, value); err != nil {
				return Options{}, err
			}
			st = stateIdle
		}
	}

	if st != stateIdle {
		return Options{}, fmt.Errorf("%w: %s requires a value", ErrUsage, st.flag())
	}
	if len(positional) != 2 {
		return Options{}, fmt.Errorf("%w: expected 2 paths, got %d", ErrUsage, len(positional))
	}
	opts.QuestionSets, opts.EventLog = positional[0], positional[1]
	return opts, nil
}

func (o *Options) set(st state, value string) error {
	switch st {
	case stateExpectTypes:
		o.Types = value
	case stateExpectDelimiter:
		d, err := ParseDelimiter(value)
		if err != nil {
			return err
		}
		o.Delimiter = d
	case stateExpectTournamentName:
		o.Tournament = value
	}
	return nil
}

// ParseDelimiter maps the literal `\t` to a tab and rejects delimiters that
// are empty, longer than five characters or contain a path separator.
func ParseDelimiter(raw string) (string, error) {
	d := raw
	if d == `\t` {
		d = "\t"
	}
	switch {
	case d == "":
		return "", fmt.Errorf("%w: empty", ErrInvalidDelimiter)
	case len([]rune(d)) > maxDelimiterLen:
		return "", fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidDelimiter, raw, maxDelimiterLen)
	case strings.ContainsAny(d, `/\`):
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidDelimiter, raw)
	}
	return d, nil
}

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `qperformance - A tool for analyzing quiz performance data

USAGE:
    qperformance [OPTIONS] <question_sets> <quiz_data>

OPTIONS:
    -h, --help               Prints help information
    -v, --verbose            Enables verbose mode
    -t, --types <codes>      Only report these question types, e.g. QGA
    -d, --delim <sep>        Field delimiter of the quiz data (default ","; \t for tab)
    -n, --name <tournament>  Only count events from this tournament
    -r, --round              Break the report down by round

ARGS:
    <question_sets>  The path to the directory containing the question sets
    <quiz_data>      The path to the CSV file containing the quiz data

ENVIRONMENT:
    QPERF_CONFIG     Optional YAML configuration file
    QPERF_*          Overrides for individual configuration keys
`)
}
