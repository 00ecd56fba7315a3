// Package filter selects the scoring events that take part in aggregation.
package filter

import "github.com/okian/qperformance/internal/domain/model"

// Option applies a configuration option to the Filter.
type Option func(*Filter)

// WithTournament restricts the filter to one tournament name. An empty name
// disables the restriction.
func WithTournament(name string) Option {
	return func(f *Filter) {
		f.tournament = name
	}
}

// Filter keeps rows carrying one of the allow-listed event codes.
type Filter struct {
	allowed    map[string]struct{}
	tournament string
}

// New creates a Filter for the given event codes.
func New(codes model.EventCodes, opts ...Option) *Filter {
	f := &Filter{allowed: make(map[string]struct{}, 4)}
	for _, c := range codes.List() {
		f.allowed[c] = struct{}{}
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Keep reports whether rec passes the filter.
func (f *Filter) Keep(rec model.EventRecord) bool {
	if !rec.HasEvent {
		return false
	}
	if _, ok := f.allowed[rec.Event]; !ok {
		return false
	}
	return f.tournament == "" || rec.Tournament == f.tournament
}

// Apply returns the records that pass, preserving order.
func (f *Filter) Apply(records []model.EventRecord) []model.EventRecord {
	out := make([]model.EventRecord, 0, len(records))
	for _, rec := range records {
		if f.Keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}
