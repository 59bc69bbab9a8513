package bench

import (
	"container/heap"

	"seeklob/internal/types"
)

// tickEvent schedules the next snapshot generation for a pair at a
// given logical tick.
type tickEvent struct {
	pair types.PairID
	at   int64
}

// schedule is a min-heap of tickEvents ordered by due tick, the
// earliest-first counterpart of the teacher's BuyBook/SellBook
// heap.Interface implementations (internal/book/buy_book.go,
// sell_book.go), repurposed here to interleave multiple pairs'
// generators in a single-threaded benchmark driver instead of ordering
// resting orders by price.
type schedule []tickEvent

func (s schedule) Len() int            { return len(s) }
func (s schedule) Less(i, j int) bool  { return s[i].at < s[j].at }
func (s schedule) Swap(i, j int)       { s[i], s[j] = s[j], s[i] }
func (s *schedule) Push(x any)         { *s = append(*s, x.(tickEvent)) }
func (s *schedule) Pop() any {
	old := *s
	n := len(old)
	e := old[n-1]
	*s = old[:n-1]
	return e
}

// scheduler drives a set of pairs round-robin by logical tick, always
// handing the caller the pair that is next due.
type scheduler struct {
	pending schedule
}

// newScheduler seeds every pair to fire at tick 0.
func newScheduler(pairs []types.PairID) *scheduler {
	sch := &scheduler{pending: make(schedule, 0, len(pairs))}
	heap.Init(&sch.pending)
	for _, p := range pairs {
		heap.Push(&sch.pending, tickEvent{pair: p, at: 0})
	}
	return sch
}

// next pops the earliest-due pair and reschedules it for tick+1.
func (sch *scheduler) next() types.PairID {
	e := heap.Pop(&sch.pending).(tickEvent)
	heap.Push(&sch.pending, tickEvent{pair: e.pair, at: e.at + 1})
	return e.pair
}
