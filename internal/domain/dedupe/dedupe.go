// Package dedupe tracks identifiers that have already been seen.
package dedupe

// Deduper records seen identifiers so each is processed at most once.
type Deduper interface {
	// SeenAndRecord checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(id string) bool

	Size() int
}

// inMemoryDeduper implements Deduper with a plain map. It is not safe for
// concurrent use; the aggregation pipeline is single-threaded.
type inMemoryDeduper struct {
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an unbounded in-memory deduper.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{seen: make(map[string]struct{})}
}

func (d *inMemoryDeduper) SeenAndRecord(id string) bool {
	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int {
	return len(d.seen)
}
