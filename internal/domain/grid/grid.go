// Package grid turns per-document answer keys into the round by question
// type lookup used during aggregation.
//
// All answer keys are one continuous run of questions: the first collected
// round is re-paginated into fixed-size pages, and each page becomes one
// round of the grid. Event log round numbers are relative to these pages.
package grid

import (
	"sort"

	"github.com/okian/qperformance/internal/domain/answerkey"
	"github.com/okian/qperformance/internal/domain/model"
)

// DefaultPageSize is the number of questions per re-paginated round.
const DefaultPageSize = 20

// Collect orders keys by round and returns a dense, 0-indexed list of type
// sequences. Rounds never declared are empty. Keys sharing a round are
// concatenated in input order.
func Collect(keys []answerkey.Key) [][]model.QuestionType {
	sorted := make([]answerkey.Key, len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Round < sorted[j].Round })

	var rounds [][]model.QuestionType
	for _, k := range sorted {
		if k.Round < 0 {
			continue
		}
		for len(rounds) <= k.Round {
			rounds = append(rounds, []model.QuestionType{})
		}
		rounds[k.Round] = append(rounds[k.Round], k.Types...)
	}
	return rounds
}

// Paginate re-chunks seq into pages of pageSize entries. The last page may be
// shorter. A non-positive pageSize falls back to DefaultPageSize.
func Paginate(seq []model.QuestionType, pageSize int) model.TypeGrid {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	grid := make(model.TypeGrid, 0, (len(seq)+pageSize-1)/pageSize)
	for start := 0; start < len(seq); start += pageSize {
		end := min(start+pageSize, len(seq))
		page := make([]model.QuestionType, end-start)
		copy(page, seq[start:end])
		grid = append(grid, page)
	}
	return grid
}

// Build collects keys and paginates the first round.
func Build(keys []answerkey.Key, pageSize int) model.TypeGrid {
	rounds := Collect(keys)
	if len(rounds) == 0 {
		return model.TypeGrid{}
	}
	return Paginate(rounds[0], pageSize)
}
