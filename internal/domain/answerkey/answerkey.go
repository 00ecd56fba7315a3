// Package answerkey extracts the round number and the ordered question types
// from the raw text of one answer-key document.
package answerkey

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/qperformance/internal/domain/model"
)

// DefaultTabMarker is the RTF control word separating answer-key cells.
const DefaultTabMarker = `\tab`

var roundMarker = regexp.MustCompile(`SET #(\d+)`)

// Key is the content extracted from one answer-key document.
type Key struct {
	Round int // 0-indexed
	Types []model.QuestionType
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithTabMarker sets the token that separates cells.
func WithTabMarker(marker string) Option {
	return func(e *Extractor) {
		if marker != "" {
			e.tabMarker = marker
		}
	}
}

// Extractor parses answer-key text. It holds no state between calls.
type Extractor struct {
	tabMarker string
}

// NewExtractor creates an Extractor with configuration options.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{tabMarker: DefaultTabMarker}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the round number and question types of one document.
func (e *Extractor) Extract(text string) (Key, error) {
	round, err := RoundNumber(text)
	if err != nil {
		return Key{}, err
	}
	return Key{Round: round, Types: e.Types(text)}, nil
}

// RoundNumber locates the first "SET #<n>" marker and returns n-1.
// n must lie in 1..127.
func RoundNumber(text string) (int, error) {
	m := roundMarker.FindStringSubmatch(text)
	if m == nil {
		return 0, ErrMissingRoundNumber
	}
	n, err := strconv.ParseInt(m[1], 10, 8)
	if err != nil || n < 1 || n > math.MaxInt8 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidRoundNumber, m[1])
	}
	return int(n) - 1, nil
}

// Types splits text on the tab marker and takes the second-to-last character
// of every even-indexed cell as that question's type. Empty and
// single-character cells carry no type.
func (e *Extractor) Types(text string) []model.QuestionType {
	var out []model.QuestionType
	for i, cell := range strings.Split(text, e.tabMarker) {
		if i%2 != 0 || cell == "" {
			continue
		}
		r := []rune(cell)
		if len(r) <= 1 {
			continue
		}
		out = append(out, model.QuestionType(r[len(r)-2]))
	}
	return out
}
