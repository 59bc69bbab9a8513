package lob

import (
	"seeklob/internal/book"
	"seeklob/internal/numeric"
	"seeklob/internal/types"
)

// EmitOrdersAndUpdateOldBuyBook walks the current buy mirror against
// newBook (a fresh, best-first snapshot of the same side), mutates the
// mirror in place to match it, and appends the events that describe the
// transition. See spec §4.5 for the full algorithm.
func (p *Parser) EmitOrdersAndUpdateOldBuyBook(pair types.PairID, newBook []types.BookLevel, t types.Time) error {
	st, ok := p.pairs[pair]
	if !ok {
		return ErrUnknownPair
	}
	p.diffSide(pair, &st.buy, newBook, t, types.Buy, true, &st.bounds)
	return nil
}

// EmitOrdersAndUpdateOldSellBook is the sell-side counterpart of
// EmitOrdersAndUpdateOldBuyBook.
func (p *Parser) EmitOrdersAndUpdateOldSellBook(pair types.PairID, newBook []types.BookLevel, t types.Time) error {
	st, ok := p.pairs[pair]
	if !ok {
		return ErrUnknownPair
	}
	p.diffSide(pair, &st.sell, newBook, t, types.Sell, false, &st.bounds)
	return nil
}

// checkAndUpdateSeeker classifies a newly-inserted price as a new
// extreme (SEEKER_ADD) or an ordinary refill (ADD), updating bounds when
// it fires.
func checkAndUpdateSeeker(bounds *types.SeekerBounds, price types.Price, isBuy bool) types.Action {
	if isBuy {
		if price > bounds.MaxBidSeen {
			bounds.MaxBidSeen = price
			return types.SeekerAdd
		}
		return types.Add
	}
	if price < bounds.MinAskSeen {
		bounds.MinAskSeen = price
		return types.SeekerAdd
	}
	return types.Add
}

// diffSide is the shared implementation behind both public entry
// points, parameterised on side/isBuy the way the original parameterises
// on an is_buy flag plus a pair of closures (see spec §9's
// polymorphism-over-sides note).
func (p *Parser) diffSide(pair types.PairID, old *book.Side, newBook []types.BookLevel, t types.Time, side types.Side, isBuy bool, bounds *types.SeekerBounds) {
	emitLimit := func(action types.Action, price types.Price, qty types.Qty) {
		p.emit(pair, price, t, qty, side, types.Limit, action)
	}

	switch {
	case len(newBook) == 0 && old.Len() == 0:
		return

	case len(newBook) == 0:
		// Clear the book back to front, popping as we go.
		for old.Len() > 0 {
			back, _ := old.Back()
			emitLimit(types.Remove, back.Price, back.Qty)
			old.PopBack()
		}
		return

	case old.Len() == 0:
		for _, lvl := range newBook {
			old.PushBack(types.BookLevel{Price: lvl.Price, Qty: lvl.Qty, Time: t})
			action := checkAndUpdateSeeker(bounds, lvl.Price, isBuy)
			emitLimit(action, lvl.Price, lvl.Qty)
		}
		return
	}

	// General case: pairwise walk.
	if isBuy {
		top, _ := old.Front()
		if numeric.SafeEq(top.Price, newBook[0].Price) {
			diff := newBook[0].Qty - top.Qty
			switch {
			case diff > 0:
				(*old)[0].Qty += diff
				emitLimit(types.Add, top.Price, diff)
			case diff < 0:
				(*old)[0].Qty += diff
				emitLimit(types.Remove, top.Price, -diff)
			}
		}
	}

	loopEnd := len(newBook)
	if !isBuy {
		if old.Len() > loopEnd {
			loopEnd = old.Len()
		}
	}

	defaultPrice := numeric.DefaultPrice(isBuy)

	for i := 1; i < loopEnd; i++ {
		maxIterations := (old.Len()+len(newBook))*4 + 16

		var op, np, oq, nq types.Price
		for {
			maxIterations--
			if maxIterations <= 0 {
				p.log.Warn().
					Int64("pair", int64(pair)).
					Int("old_size", old.Len()).
					Int("new_size", len(newBook)).
					Msg("seeker diff exceeded iteration guard")
				break
			}
			if old.Len() == 0 || len(newBook) == 0 {
				break
			}

			oldLast := old.Len() - 1
			newLast := len(newBook) - 1

			if oldLast >= i-1 {
				op, _ = levelPrice(old, i-1)
			} else {
				op = defaultPrice
			}
			if newLast >= i-1 {
				np = newBook[i-1].Price
			} else {
				np = defaultPrice
			}
			if oldLast >= i {
				oq, _ = levelPrice(old, i)
			} else {
				oq = defaultPrice
			}
			if newLast >= i {
				nq = newBook[i].Price
			} else {
				nq = defaultPrice
			}

			if numeric.PriceBetter(op, np, isBuy) {
				front, _ := old.Front()
				emitLimit(types.Remove, front.Price, front.Qty)
				old.PopFront()
				if numeric.SafeEq(op, np) && numeric.SafeEq(oq, nq) {
					break
				}
				continue
			}
			if numeric.PriceBetter(np, op, isBuy) {
				old.InsertAt(i-1, types.BookLevel{Price: np, Qty: newBook[i-1].Qty, Time: t})
				inserted, _ := old.At(i - 1)
				emitLimit(types.Add, inserted.Price, inserted.Qty)
				if numeric.SafeEq(op, np) && numeric.SafeEq(oq, nq) {
					break
				}
				continue
			}

			if numeric.SafeEq(op, np) {
				if newLast >= i-1 && oldLast >= i-1 {
					cur, _ := old.At(i - 1)
					diff := newBook[i-1].Qty - cur.Qty
					if diff > 0 {
						(*old)[i-1].Qty += diff
						emitLimit(types.Add, cur.Price, diff)
					}
					if diff < 0 {
						(*old)[i-1].Qty += diff
						emitLimit(types.Remove, cur.Price, -diff)
					}
				}

				if numeric.PriceBetter(oq, nq, isBuy) {
					victim, _ := old.At(i)
					emitLimit(types.Remove, victim.Price, victim.Qty)
					old.EraseAt(i)
				}
				if numeric.PriceBetter(nq, oq, isBuy) {
					action := checkAndUpdateSeeker(bounds, nq, isBuy)
					old.InsertAt(i, types.BookLevel{Price: nq, Qty: newBook[i].Qty, Time: t})
					inserted, _ := old.At(i)
					emitLimit(action, inserted.Price, inserted.Qty)
				}
			}

			if numeric.SafeEq(oq, nq) {
				if newLast >= i && oldLast >= i {
					cur, _ := old.At(i)
					diff := newBook[i].Qty - cur.Qty
					if diff > 0 {
						(*old)[i].Qty += diff
						emitLimit(types.Add, cur.Price, diff)
					}
					if diff < 0 {
						(*old)[i].Qty += diff
						emitLimit(types.Remove, cur.Price, -diff)
					}
				}
			}

			if numeric.SafeEq(op, np) && numeric.SafeEq(oq, nq) {
				break
			}
		}
	}
}

// levelPrice reads the price at position i, returning false if i is out
// of range (should not happen given the callers' bounds checks, but
// keeps indexing panic-free).
func levelPrice(s *book.Side, i int) (types.Price, bool) {
	lvl, ok := s.At(i)
	if !ok {
		return 0, false
	}
	return lvl.Price, true
}
