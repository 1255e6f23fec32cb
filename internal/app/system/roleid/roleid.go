// internal/app/system/roleid/roleid.go
package roleid

import (
	"strconv"
	"sync"
	"time"
)

// Generator hands out role ids (rids) for one recomputation pass over a
// membership's roles array. Batch(n) returns n unique, strictly increasing
// ids; successive calls never overlap, even within the same clock tick.
//
// Rids are reassigned to EVERY role in the array (deleted ones included)
// after any structural change to the array. They are therefore not stable
// across edits and callers must refetch after a mutation. That is contract,
// not accident; see DESIGN.md.
type Generator interface {
	Batch(n int) []string
}

// clock is a millisecond-timestamp generator with a monotonic floor. The id
// shape stays "base_ms + index" but two passes can never share a base: if
// the wall clock has not advanced past the previous pass, the floor bumps
// the base above the last id handed out.
type clock struct {
	mu   sync.Mutex
	last int64
}

// NewClock returns the production Generator.
func NewClock() Generator {
	return &clock{}
}

func (g *clock) Batch(n int) []string {
	if n <= 0 {
		return nil
	}

	g.mu.Lock()
	base := time.Now().UnixMilli()
	if base <= g.last {
		base = g.last + 1
	}
	g.last = base + int64(n) - 1
	g.mu.Unlock()

	ids := make([]string, n)
	for i := range ids {
		ids[i] = strconv.FormatInt(base+int64(i), 10)
	}
	return ids
}

// sequence is a deterministic Generator for tests.
type sequence struct {
	mu   sync.Mutex
	next int64
}

// NewSequence returns a Generator that counts up from base. Deterministic,
// for tests only.
func NewSequence(base int64) Generator {
	return &sequence{next: base}
}

func (g *sequence) Batch(n int) []string {
	if n <= 0 {
		return nil
	}

	g.mu.Lock()
	base := g.next
	g.next += int64(n)
	g.mu.Unlock()

	ids := make([]string, n)
	for i := range ids {
		ids[i] = strconv.FormatInt(base+int64(i), 10)
	}
	return ids
}
