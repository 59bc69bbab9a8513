package bench

import (
	"math"
	"math/rand"

	"seeklob/internal/types"
)

// defaultSeed matches the original generator's fixed mt19937 seed (42),
// keeping benchmark runs reproducible.
const defaultSeed = 42

// SinusoidalGenerator produces synthetic snapshots whose mid-price
// follows a sine wave plus uniform noise, grounded on
// original_source/benchmarks/market_generator.h's SinusoidalMarketGenerator.
type SinusoidalGenerator struct {
	basePrice  float64
	amplitude  float64
	frequency  float64
	noiseLevel float64
	depth      int
	spreadBps  float64
	tick       int64

	rng *rand.Rand
}

// NewSinusoidalGenerator constructs a generator with the given market
// shape. spreadBps is the top-of-book spread in basis points of mid.
func NewSinusoidalGenerator(basePrice, amplitude, frequency, noiseLevel float64, depth int, spreadBps float64) *SinusoidalGenerator {
	return &SinusoidalGenerator{
		basePrice:  basePrice,
		amplitude:  amplitude,
		frequency:  frequency,
		noiseLevel: noiseLevel,
		depth:      depth,
		spreadBps:  spreadBps,
		rng:        rand.New(rand.NewSource(defaultSeed)),
	}
}

func (g *SinusoidalGenerator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *SinusoidalGenerator) uniformInt(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// Tick returns the generator's current logical clock.
func (g *SinusoidalGenerator) Tick() types.Time { return types.Time(g.tick) }

// GenerateSnapshot produces a fresh full-depth snapshot for both sides
// around the current sinusoidal mid-price.
func (g *SinusoidalGenerator) GenerateSnapshot() (buy, sell []types.BookLevel) {
	g.tick++
	sinComponent := g.amplitude * math.Sin(2*math.Pi*g.frequency*float64(g.tick))
	noise := g.uniform(-g.noiseLevel, g.noiseLevel)
	mid := g.basePrice + sinComponent + noise
	halfSpread := mid * (g.spreadBps / 10000.0) / 2.0
	bestBid := mid - halfSpread
	bestAsk := mid + halfSpread
	tickSize := mid * 0.0001

	buy = make([]types.BookLevel, g.depth)
	price := bestBid
	for i := 0; i < g.depth; i++ {
		buy[i] = types.BookLevel{Price: price, Qty: types.Qty(g.uniformInt(100, 10000)), Time: types.Time(g.tick)}
		price -= tickSize * float64(1+g.uniformInt(0, 3))
	}

	sell = make([]types.BookLevel, g.depth)
	price = bestAsk
	for i := 0; i < g.depth; i++ {
		sell[i] = types.BookLevel{Price: price, Qty: types.Qty(g.uniformInt(100, 10000)), Time: types.Time(g.tick)}
		price += tickSize * float64(1+g.uniformInt(0, 3))
	}
	return buy, sell
}

// GenerateIncrementalUpdate perturbs an existing pair of sides in
// place: each level has a changeRate chance of a quantity change, and
// every level drifts by a shared per-tick price delta (buy and sell
// drift in opposite directions, so the mid-price stays roughly put while
// the spread widens or narrows by twice the drift).
func (g *SinusoidalGenerator) GenerateIncrementalUpdate(buy, sell []types.BookLevel, changeRate float64) {
	g.tick++
	drift := g.uniform(-g.noiseLevel, g.noiseLevel) * 0.1

	for i := range buy {
		if g.rng.Float64() < changeRate {
			buy[i].Qty = maxQty(1, buy[i].Qty+types.Qty(g.uniformInt(-500, 500)))
			buy[i].Time = types.Time(g.tick)
		}
		buy[i].Price += drift
	}
	for i := range sell {
		if g.rng.Float64() < changeRate {
			sell[i].Qty = maxQty(1, sell[i].Qty+types.Qty(g.uniformInt(-500, 500)))
			sell[i].Time = types.Time(g.tick)
		}
		sell[i].Price -= drift
	}
}

func maxQty(a, b types.Qty) types.Qty {
	if a > b {
		return a
	}
	return b
}
