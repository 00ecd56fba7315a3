// Package report renders aggregation results as a tab-delimited table.
package report

import (
	"strconv"
	"strings"

	"github.com/okian/qperformance/internal/domain/model"
	"github.com/okian/qperformance/internal/domain/tally"
)

// Option applies a configuration option to the Reporter.
type Option func(*Reporter)

// WithRounds adds a leading round column and prints one block of quizzer rows
// per round that recorded events.
func WithRounds(enabled bool) Option {
	return func(r *Reporter) {
		r.showRounds = enabled
	}
}

// Reporter formats a tally.Result.
type Reporter struct {
	types      model.TypeSet
	selected   []model.QuestionType
	showRounds bool
}

// New creates a Reporter. selected is the column allow-list; empty selects
// every type. Columns are always sorted ascending by code.
func New(types model.TypeSet, selected []model.QuestionType, opts ...Option) (*Reporter, error) {
	cols, err := types.Select(codes(selected))
	if err != nil {
		return nil, err
	}
	r := &Reporter{types: types, selected: cols}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render returns the header and one line per quizzer, each terminated by a
// newline.
func (r *Reporter) Render(names []string, res *tally.Result) string {
	var b strings.Builder
	r.header(&b)
	if !r.showRounds {
		for i, name := range names {
			r.row(&b, "", name, res.Totals, i)
		}
		return b.String()
	}
	for _, round := range res.Rounds() {
		prefix := strconv.Itoa(round+1) + "\t"
		for i, name := range names {
			r.row(&b, prefix, name, res.ByRound[round], i)
		}
	}
	return b.String()
}

func (r *Reporter) header(b *strings.Builder) {
	if r.showRounds {
		b.WriteString("Round\t")
	}
	b.WriteString("Quizzer\t")
	for _, t := range r.selected {
		for _, label := range []string{"QA", "QC", "BA", "BC"} {
			b.WriteString(t.String())
			b.WriteByte(' ')
			b.WriteString(label)
			b.WriteByte('\t')
		}
	}
	b.WriteByte('\n')
}

func (r *Reporter) row(b *strings.Builder, prefix, name string, counts tally.Counts, quizzer int) {
	b.WriteString(prefix)
	b.WriteString(name)
	b.WriteByte('\t')
	for _, t := range r.selected {
		col, _ := r.types.Index(t)
		cell := counts.Cell(quizzer, col)
		for _, v := range []int64{cell.Attempts, cell.Correct, cell.BonusAttempts, cell.Bonus} {
			b.WriteString(strconv.FormatFloat(float64(v), 'f', 1, 64))
			b.WriteByte('\t')
		}
	}
	b.WriteByte('\n')
}

func codes(types []model.QuestionType) string {
	var b strings.Builder
	for _, t := range types {
		b.WriteRune(rune(t))
	}
	return b.String()
}
