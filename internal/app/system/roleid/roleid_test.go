package roleid_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/campus-council/clubs/internal/app/system/roleid"
)

func TestClock_BatchIsStrictlyIncreasing(t *testing.T) {
	g := roleid.NewClock()
	ids := g.Batch(5)
	if len(ids) != 5 {
		t.Fatalf("len: got %d, want 5", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		a, _ := strconv.ParseInt(ids[i-1], 10, 64)
		b, _ := strconv.ParseInt(ids[i], 10, 64)
		if b != a+1 {
			t.Errorf("ids[%d]=%s not successor of ids[%d]=%s", i, ids[i], i-1, ids[i-1])
		}
	}
}

func TestClock_SuccessiveBatchesNeverOverlap(t *testing.T) {
	// Rapid back-to-back batches land in the same clock millisecond; the
	// monotonic floor must still keep them disjoint.
	g := roleid.NewClock()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		for _, id := range g.Batch(3) {
			if seen[id] {
				t.Fatalf("duplicate id %s", id)
			}
			seen[id] = true
		}
	}
}

func TestClock_ConcurrentBatchesAreUnique(t *testing.T) {
	g := roleid.NewClock()

	const workers = 8
	const perWorker = 50

	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids := g.Batch(2)
				mu.Lock()
				for _, id := range ids {
					if seen[id] {
						t.Errorf("duplicate id %s", id)
					}
					seen[id] = true
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}

func TestClock_ZeroAndNegativeBatch(t *testing.T) {
	g := roleid.NewClock()
	if ids := g.Batch(0); ids != nil {
		t.Errorf("Batch(0): got %v, want nil", ids)
	}
	if ids := g.Batch(-1); ids != nil {
		t.Errorf("Batch(-1): got %v, want nil", ids)
	}
}

func TestSequence_Deterministic(t *testing.T) {
	g := roleid.NewSequence(100)
	got := g.Batch(3)
	want := []string{"100", "101", "102"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids[%d]: got %s, want %s", i, got[i], want[i])
		}
	}
	if next := g.Batch(1)[0]; next != "103" {
		t.Errorf("second batch: got %s, want 103", next)
	}
}
