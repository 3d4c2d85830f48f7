package soc

import (
	"container/heap"

	"laus-core/seeds"
)

// StripQueue is a max-heap of strips ordered by decreasing score (§4.4
// "Output"). It implements container/heap.Interface directly; callers use
// PopBest (or heap.Pop) to drain strips in priority order.
type StripQueue struct {
	items []*seeds.Strip
}

// NewStripQueue returns an empty StripQueue, exported so callers outside
// this package (harmonize's tests, a pipeline merging strips from several
// queries) can build one without going through BuildStrips.
func NewStripQueue() *StripQueue { return &StripQueue{} }

func (q *StripQueue) Len() int { return len(q.items) }

func (q *StripQueue) Less(i, j int) bool { return q.items[i].Score > q.items[j].Score }

func (q *StripQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *StripQueue) Push(x any) { q.items = append(q.items, x.(*seeds.Strip)) }

func (q *StripQueue) Pop() any {
	n := len(q.items)
	item := q.items[n-1]
	q.items[n-1] = nil
	q.items = q.items[:n-1]
	return item
}

// Peek returns the best remaining strip without removing it.
func (q *StripQueue) Peek() (*seeds.Strip, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	return q.items[0], true
}

// Empty reports whether the queue has any strips left.
func (q *StripQueue) Empty() bool { return len(q.items) == 0 }

// PopBest removes and returns the highest-scoring remaining strip,
// preserving the heap invariant (unlike calling Pop directly).
func (q *StripQueue) PopBest() (*seeds.Strip, bool) {
	if q.Empty() {
		return nil, false
	}
	return heap.Pop(q).(*seeds.Strip), true
}
