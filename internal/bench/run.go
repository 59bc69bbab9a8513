package bench

import (
	"sort"
	"time"

	"seeklob/internal/lob"
	"seeklob/internal/types"
)

// Config bounds a benchmark run: wall-clock duration, book depth per
// generated snapshot, and how many timed rounds to sample for the
// latency report (the remaining time just drives throughput).
type Config struct {
	Duration      time.Duration
	Depth         int
	LatencyRounds int
	ChangeRate    float64
}

// Result reports throughput and latency distribution for a run.
type Result struct {
	Snapshots int
	Events    int
	Elapsed   time.Duration
	Latencies []time.Duration // one sample per LatencyRounds round, sorted ascending
}

// P50 and P99 return latency percentiles from the sorted sample, or
// zero if no samples were collected.
func (r Result) P50() time.Duration { return percentile(r.Latencies, 0.50) }
func (r Result) P99() time.Duration { return percentile(r.Latencies, 0.99) }

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

// Run drives one or more pairs' generators against parser for cfg.Duration,
// alternating which pair is fed each tick via the scheduler so multiple
// pairs make even progress, and returns aggregate throughput plus a
// latency sample for the first LatencyRounds ticks.
func Run(parser *lob.Parser, pairs []types.PairID, cfg Config) Result {
	gens := make(map[types.PairID]*SinusoidalGenerator, len(pairs))
	state := make(map[types.PairID][]types.BookLevel, len(pairs)*2)
	for i, pair := range pairs {
		base := 100.0 + float64(i)*10
		gens[pair] = NewSinusoidalGenerator(base, base*0.01, 0.01, base*0.002, cfg.Depth, 10.0)
	}

	sch := newScheduler(pairs)
	deadline := time.Now().Add(cfg.Duration)

	var result Result
	latencies := make([]time.Duration, 0, cfg.LatencyRounds)

	for time.Now().Before(deadline) {
		pair := sch.next()
		gen := gens[pair]

		start := time.Now()

		prevBuy, ok := state[pair]
		var buy, sell []types.BookLevel
		if !ok {
			buy, sell = gen.GenerateSnapshot()
			state[pair] = append(append([]types.BookLevel{}, buy...), sell...)
		} else {
			half := len(prevBuy) / 2
			buy = append([]types.BookLevel{}, prevBuy[:half]...)
			sell = append([]types.BookLevel{}, prevBuy[half:]...)
			gen.GenerateIncrementalUpdate(buy, sell, cfg.ChangeRate)
			state[pair] = append(append([]types.BookLevel{}, buy...), sell...)
		}

		parser.ClearEmittedOrders()
		_ = parser.EmitOrdersAndUpdateOldBuyBook(pair, buy, gen.Tick())
		_ = parser.EmitOrdersAndUpdateOldSellBook(pair, sell, gen.Tick())

		elapsed := time.Since(start)
		result.Snapshots++
		result.Events += len(parser.EmittedOrders())

		if len(latencies) < cfg.LatencyRounds {
			latencies = append(latencies, elapsed)
		}
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	result.Latencies = latencies
	result.Elapsed = cfg.Duration
	return result
}
