package lob

import (
	"seeklob/internal/numeric"
	"seeklob/internal/types"
)

// EmitMarketOrderAndUpdateBuyBook consumes the top of the buy book as if
// an aggressor traded against it at price, emitting the synthetic events
// that reconcile the mutation.
func (p *Parser) EmitMarketOrderAndUpdateBuyBook(pair types.PairID, qty types.Qty, price types.Price, t types.Time) error {
	return p.emitMarketOrder(pair, qty, price, t, types.Buy)
}

// EmitMarketOrderAndUpdateSellBook is the sell-side counterpart of
// EmitMarketOrderAndUpdateBuyBook.
func (p *Parser) EmitMarketOrderAndUpdateSellBook(pair types.PairID, qty types.Qty, price types.Price, t types.Time) error {
	return p.emitMarketOrder(pair, qty, price, t, types.Sell)
}

// emitMarketOrder implements the four (plus one no-op) cases of spec
// §4.4. Market orders never touch seeker bounds.
func (p *Parser) emitMarketOrder(pair types.PairID, qty types.Qty, price types.Price, t types.Time, side types.Side) error {
	st, ok := p.pairs[pair]
	if !ok {
		return ErrUnknownPair
	}
	book := st.sideFor(side)
	opp := side.Opposite()

	top, ok := book.Front()
	switch {
	case !ok:
		// Case 1: book empty. An unseen resting iceberg existed; reveal
		// it, then consume it.
		p.emit(pair, price, t, qty, side, types.Iceberg, types.Add)
		p.emit(pair, price, t, qty, opp, types.Market, types.Add)

	case numeric.SafeEq(top.Price, price):
		remainder := top.Qty - qty
		switch {
		case remainder > 0:
			// Case 2: partial fill of the top level.
			(*book)[0].Qty = remainder
			(*book)[0].Time = t
			p.emit(pair, price, t, qty, opp, types.Market, types.Add)
		case remainder == 0:
			// Case 3: exact fill of the top level.
			p.emit(pair, price, t, qty, opp, types.Market, types.Add)
			book.PopFront()
		default:
			// Case 4: overfill reveals a hidden iceberg for the deficit.
			deficit := qty - top.Qty
			p.emit(pair, price, t, deficit, side, types.Iceberg, types.Add)
			p.emit(pair, price, t, qty, opp, types.Market, types.Add)
			book.PopFront()
		}

	case side == types.Buy:
		// Case 5 (buy): logged, no mutation, no emission.
		p.log.Warn().
			Int64("pair", int64(pair)).
			Float64("price", price).
			Msg("no matching liquidity at price")

	default:
		// Case 5 (sell): silent no-op, preserved asymmetry (see SPEC_FULL.md).
	}

	return nil
}
