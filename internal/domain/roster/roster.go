// Package roster derives the stable quizzer ordering used for report rows.
package roster

import (
	"sort"

	"github.com/okian/qperformance/internal/domain/dedupe"
	"github.com/okian/qperformance/internal/domain/model"
)

// Roster is an ordered, deduplicated list of quizzer names grouped by the
// team each quizzer first appeared under.
type Roster struct {
	names []string
	index map[string]int
}

// Build walks records in order. A name is recorded once, globally, under the
// team of its first appearance. Teams are emitted in ascending order.
func Build(records []model.EventRecord) *Roster {
	seen := dedupe.NewInMemoryDeduper()
	byTeam := make(map[int][]string)
	for _, rec := range records {
		if seen.SeenAndRecord(rec.Quizzer) {
			continue
		}
		byTeam[rec.Team] = append(byTeam[rec.Team], rec.Quizzer)
	}

	teams := make([]int, 0, len(byTeam))
	for team := range byTeam {
		teams = append(teams, team)
	}
	sort.Ints(teams)

	r := &Roster{
		names: make([]string, 0, seen.Size()),
		index: make(map[string]int, seen.Size()),
	}
	for _, team := range teams {
		for _, name := range byTeam[team] {
			r.index[name] = len(r.names)
			r.names = append(r.names, name)
		}
	}
	return r
}

// Names returns the quizzer names in report order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of quizzers.
func (r *Roster) Len() int { return len(r.names) }

// Index returns the row of name. Unknown names resolve to row 0 with ok set
// to false; callers decide whether to use the fallback.
func (r *Roster) Index(name string) (int, bool) {
	i, ok := r.index[name]
	if !ok {
		return 0, false
	}
	return i, true
}
