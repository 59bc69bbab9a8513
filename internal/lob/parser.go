// Package lob implements the snapshot-to-tick-by-tick differ: a
// stateful per-pair book mirror plus the algorithm that walks an old
// book and a new snapshot in parallel, mutates the mirror in place, and
// emits the minimal ADD/REMOVE/SEEKER_ADD event sequence that explains
// the transition (and, for market orders, the synthetic ICEBERG/MARKET
// events that reconcile observed over-consumption of posted liquidity).
//
// This is the core the rest of the repo (wire codec, NATS transport,
// benchmark, demo CLI) is built around; it performs no I/O and makes no
// concurrency promises of its own (see DESIGN.md).
package lob

import (
	"errors"

	"github.com/rs/zerolog"

	"seeklob/internal/book"
	"seeklob/internal/types"
)

// ErrUnknownPair is returned by any operation naming a PairID not
// supplied at construction. The Parser never creates pair state lazily.
var ErrUnknownPair = errors.New("lob: unknown pair")

// emittedOrdersReserve matches the original's reserve(256) convention for
// the shared append-only event buffer (original_source/src/snapshot_parser.cpp).
const emittedOrdersReserve = 256

// Parser holds one pairState per distinct pair it was constructed with,
// and a single shared buffer of emitted events accumulated across calls
// until the caller clears it.
type Parser struct {
	pairs    map[types.PairID]*pairState
	emitted  []types.EmittedOrder
	log      zerolog.Logger
}

// Option configures a Parser at construction.
type Option func(*Parser)

// WithLogger overrides the Parser's diagnostic sink. By default the
// Parser logs nothing (zerolog.Nop()).
func WithLogger(log zerolog.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// New constructs a Parser with one pairState per distinct PairID in
// pairIDs (duplicates collapse). Unknown pairs accessed later return
// ErrUnknownPair.
func New(pairIDs []types.PairID, opts ...Option) *Parser {
	p := &Parser{
		pairs:   make(map[types.PairID]*pairState, len(pairIDs)),
		emitted: make([]types.EmittedOrder, 0, emittedOrdersReserve),
		log:     zerolog.Nop(),
	}
	for _, id := range pairIDs {
		if _, ok := p.pairs[id]; ok {
			continue
		}
		p.pairs[id] = newPairState()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BuySide returns the current buy-side mirror for pair. The returned
// slice is borrowed; callers must not retain it across subsequent calls
// that mutate the same pair.
func (p *Parser) BuySide(pair types.PairID) (book.Side, error) {
	st, ok := p.pairs[pair]
	if !ok {
		return nil, ErrUnknownPair
	}
	return st.buy, nil
}

// SellSide returns the current sell-side mirror for pair.
func (p *Parser) SellSide(pair types.PairID) (book.Side, error) {
	st, ok := p.pairs[pair]
	if !ok {
		return nil, ErrUnknownPair
	}
	return st.sell, nil
}

// SeekerBounds returns the running price extremes for pair.
func (p *Parser) SeekerBounds(pair types.PairID) (types.SeekerBounds, error) {
	st, ok := p.pairs[pair]
	if !ok {
		return types.SeekerBounds{}, ErrUnknownPair
	}
	return st.bounds, nil
}

// EmittedOrders returns the events accumulated since construction or the
// last ClearEmittedOrders, in production order. The returned slice is
// borrowed.
func (p *Parser) EmittedOrders() []types.EmittedOrder {
	return p.emitted
}

// ClearEmittedOrders truncates the event buffer without releasing its
// backing capacity.
func (p *Parser) ClearEmittedOrders() {
	p.emitted = p.emitted[:0]
}

// emit appends one event to the shared buffer.
func (p *Parser) emit(pair types.PairID, price types.Price, t types.Time, qty types.Qty, side types.Side, typ types.OrderType, action types.Action) {
	p.emitted = append(p.emitted, types.EmittedOrder{
		Pair:   pair,
		Price:  price,
		Time:   t,
		Qty:    qty,
		Side:   side,
		Type:   typ,
		Action: action,
	})
}
