package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"seeklob/internal/lob"
	"seeklob/internal/types"
)

func TestSinusoidalGeneratorSnapshotDepth(t *testing.T) {
	g := NewSinusoidalGenerator(100, 1, 0.01, 0.5, 5, 10)
	buy, sell := g.GenerateSnapshot()
	assert.Len(t, buy, 5)
	assert.Len(t, sell, 5)
	assert.Less(t, buy[0].Price, sell[0].Price)
}

func TestSinusoidalGeneratorIsDeterministic(t *testing.T) {
	g1 := NewSinusoidalGenerator(100, 1, 0.01, 0.5, 3, 10)
	g2 := NewSinusoidalGenerator(100, 1, 0.01, 0.5, 3, 10)

	buy1, sell1 := g1.GenerateSnapshot()
	buy2, sell2 := g2.GenerateSnapshot()
	assert.Equal(t, buy1, buy2)
	assert.Equal(t, sell1, sell2)
}

func TestIncrementalUpdateNeverZerosQuantity(t *testing.T) {
	g := NewSinusoidalGenerator(100, 1, 0.01, 0.5, 4, 10)
	buy, sell := g.GenerateSnapshot()

	for i := 0; i < 50; i++ {
		g.GenerateIncrementalUpdate(buy, sell, 1.0)
	}
	for _, lvl := range buy {
		assert.GreaterOrEqual(t, lvl.Qty, types.Qty(1))
	}
}

func TestSchedulerRoundRobinsPairs(t *testing.T) {
	sch := newScheduler([]types.PairID{1, 2})
	first := sch.next()
	second := sch.next()
	third := sch.next()
	assert.NotEqual(t, first, second)
	assert.Equal(t, first, third)
}

func TestRunProducesEventsAndLatencySamples(t *testing.T) {
	p := lob.New([]types.PairID{1})
	result := Run(p, []types.PairID{1}, Config{
		Duration:      20 * time.Millisecond,
		Depth:         5,
		LatencyRounds: 10,
		ChangeRate:    0.3,
	})

	assert.Greater(t, result.Snapshots, 0)
	assert.NotEmpty(t, result.Latencies)
	assert.LessOrEqual(t, result.P50(), result.P99())
}
