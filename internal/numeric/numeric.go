// Package numeric holds the handful of float comparisons the differ
// leans on. Keeping them here (rather than inline in internal/lob) mirrors
// the teacher's separation of a tiny comparator helper from the book
// logic that consumes it (see internal/engine/orderbook.go's inline
// btree.NewBTreeG comparators, and original_source/src/utils.h's
// SafeDoubleCompare / CustomDoubleComparator).
package numeric

import (
	"math"

	"seeklob/internal/types"
)

// Epsilon is the tolerance used for all price comparisons.
const Epsilon = 1e-5

// SafeEq reports whether a and b are equal within Epsilon.
func SafeEq(a, b types.Price) bool {
	return math.Abs(a-b) < Epsilon
}

// PriceBetter reports whether a is strictly better than b for the given
// side: higher for buys, lower for sells. Raw-equal prices are never
// "better". Prices that are only epsilon-equal (but raw-different) are
// still resolved by this strict comparison, which is intentional: it
// keeps the differ's termination condition (SafeEq) and its ordering
// decisions (PriceBetter) from disagreeing with each other.
func PriceBetter(a, b types.Price, isBuy bool) bool {
	if isBuy {
		return a > b
	}
	return a < b
}

// DefaultPrice returns the out-of-range sentinel used by the differ's
// pairwise walk: 0 for buy sides (worse than any real bid), +Inf for
// sell sides (worse than any real ask).
func DefaultPrice(isBuy bool) types.Price {
	if isBuy {
		return 0
	}
	return math.Inf(1)
}
