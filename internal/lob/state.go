package lob

import (
	"math"

	"seeklob/internal/book"
	"seeklob/internal/types"
)

// pairState mirrors one pair's current buy and sell sides plus the
// seeker extremes used to classify newly inserted levels.
type pairState struct {
	buy  book.Side
	sell book.Side

	bounds types.SeekerBounds
}

func newPairState() *pairState {
	return &pairState{
		bounds: types.SeekerBounds{
			MaxBidSeen: -math.MaxFloat64,
			MinAskSeen: math.MaxFloat64,
		},
	}
}

// sideFor returns a pointer to the requested side's mirror.
func (ps *pairState) sideFor(side types.Side) *book.Side {
	if side == types.Buy {
		return &ps.buy
	}
	return &ps.sell
}
