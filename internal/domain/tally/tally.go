// Package tally accumulates per-quizzer, per-question-type attempt and
// correct counts from filtered scoring events.
package tally

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/qperformance/internal/domain/model"
	"github.com/okian/qperformance/internal/domain/roster"
	"github.com/okian/qperformance/pkg/logger"
)

// DefaultGeneralPosition is the 1-indexed question position that always
// counts as the general category.
const DefaultGeneralPosition = 21

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithTypeSet sets the recognised question types.
func WithTypeSet(types model.TypeSet) Option {
	return func(a *Aggregator) {
		if types.Len() > 0 {
			a.types = types
		}
	}
}

// WithEventCodes sets the literal event codes.
func WithEventCodes(codes model.EventCodes) Option {
	return func(a *Aggregator) {
		a.codes = codes
	}
}

// WithGeneralPosition sets the 1-indexed question position forced to the
// general category. Zero or negative disables the override.
func WithGeneralPosition(pos int) Option {
	return func(a *Aggregator) {
		a.generalPosition = pos
	}
}

// WithLogger sets the logger used for per-row tracing.
func WithLogger(l logger.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// Result is the outcome of one aggregation pass. It is read-only once
// returned.
type Result struct {
	Totals Counts
	// ByRound holds counts per 0-indexed grid round that saw at least one
	// counted event.
	ByRound map[int]Counts
	// Warnings has one entry per skipped row.
	Warnings []string
	// Unresolved has one entry per row that needed a fallback lookup.
	Unresolved []string
	// Counted is the number of rows that changed a matrix.
	Counted int
}

// Rounds returns the 0-indexed rounds present in ByRound, ascending.
func (r *Result) Rounds() []int {
	out := make([]int, 0, len(r.ByRound))
	for round := range r.ByRound {
		out = append(out, round)
	}
	sort.Ints(out)
	return out
}

// Aggregator resolves each event to a (quizzer, question type) cell and
// increments the matching matrices.
type Aggregator struct {
	types           model.TypeSet
	codes           model.EventCodes
	generalPosition int
	logger          logger.Logger
}

// New creates an Aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		types:           model.DefaultTypeSet(),
		codes:           model.DefaultEventCodes(),
		generalPosition: DefaultGeneralPosition,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate runs one pass over records. It never fails: rows that cannot be
// placed are skipped with a warning.
func (a *Aggregator) Aggregate(ctx context.Context, records []model.EventRecord, grid model.TypeGrid, quizzers *roster.Roster) *Result {
	res := &Result{
		Totals:  NewCounts(quizzers.Len(), a.types.Len()),
		ByRound: make(map[int]Counts),
	}
	for _, rec := range records {
		a.apply(ctx, rec, grid, quizzers, res)
	}
	return res
}

func (a *Aggregator) apply(ctx context.Context, rec model.EventRecord, grid model.TypeGrid, quizzers *roster.Roster, res *Result) {
	event := a.codes.Classify(rec.Event)
	if event == model.EventUnknown {
		return
	}
	round, question := rec.Round-1, rec.Question-1
	a.logger.Debug(ctx, "record",
		logger.String("event", rec.Event),
		logger.String("quizzer", rec.Quizzer),
		logger.Int("round", rec.Round),
		logger.Int("question", rec.Question),
	)

	qt, ok := grid.Lookup(round, question)
	if !ok {
		msg := fmt.Sprintf("skipped: no question type for round %d, question %d", rec.Round, rec.Question)
		a.logger.Debug(ctx, msg)
		res.Warnings = append(res.Warnings, msg)
		return
	}
	if a.generalPosition > 0 && question+1 == a.generalPosition {
		qt = a.types.General()
	}

	row, ok := quizzers.Index(rec.Quizzer)
	if !ok {
		msg := fmt.Sprintf("unresolved: unknown quizzer %q in round %d, question %d", rec.Quizzer, rec.Round, rec.Question)
		a.logger.Debug(ctx, msg)
		res.Unresolved = append(res.Unresolved, msg)
		return
	}

	col, ok := a.types.Index(qt)
	if !ok {
		res.Unresolved = append(res.Unresolved, fmt.Sprintf(
			"unresolved: unknown question type %q in round %d, question %d; counted as %s",
			rune(qt), rec.Round, rec.Question, a.types.Codes()[0]))
	}
	a.logger.Debug(ctx, "resolved", logger.String("type", qt.String()), logger.Int("column", col))

	byRound, exists := res.ByRound[round]
	if !exists {
		byRound = NewCounts(quizzers.Len(), a.types.Len())
		res.ByRound[round] = byRound
	}
	increment(res.Totals, event, row, col)
	increment(byRound, event, row, col)
	res.Counted++
}

func increment(c Counts, event model.EventCode, row, col int) {
	switch event {
	case model.TossupCorrect:
		c.Attempts[row][col]++
		c.Correct[row][col]++
	case model.TossupError:
		c.Attempts[row][col]++
	case model.BonusCorrect:
		c.BonusAttempts[row][col]++
		c.Bonus[row][col]++
	case model.BonusError:
		c.BonusAttempts[row][col]++
	}
}
