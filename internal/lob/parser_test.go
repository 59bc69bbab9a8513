package lob_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"seeklob/internal/lob"
	"seeklob/internal/types"
)

func TestNewInitializesEmptyBooksForSinglePair(t *testing.T) {
	p := lob.New([]types.PairID{1})

	buy, err := p.BuySide(1)
	assert.NoError(t, err)
	assert.Equal(t, 0, buy.Len())

	sell, err := p.SellSide(1)
	assert.NoError(t, err)
	assert.Equal(t, 0, sell.Len())
}

func TestNewInitializesEmptyBooksForMultiplePairs(t *testing.T) {
	p := lob.New([]types.PairID{1, 2, 3})
	for _, id := range []types.PairID{1, 2, 3} {
		buy, err := p.BuySide(id)
		assert.NoError(t, err)
		assert.Equal(t, 0, buy.Len())
	}
}

func TestNewInitializesSeekerBoundsCorrectly(t *testing.T) {
	p := lob.New([]types.PairID{1})
	bounds, err := p.SeekerBounds(1)
	assert.NoError(t, err)
	assert.Equal(t, -math.MaxFloat64, bounds.MaxBidSeen)
	assert.Equal(t, math.MaxFloat64, bounds.MinAskSeen)
}

func TestEmptyPairListCreatesNoBooks(t *testing.T) {
	p := lob.New(nil)
	_, err := p.BuySide(1)
	assert.ErrorIs(t, err, lob.ErrUnknownPair)
}

func TestDuplicatePairIDsCollapse(t *testing.T) {
	p := lob.New([]types.PairID{1, 1, 1})
	buy, err := p.BuySide(1)
	assert.NoError(t, err)
	assert.Equal(t, 0, buy.Len())
}

func TestClearEmittedOrders(t *testing.T) {
	p := lob.New([]types.PairID{1})
	assert.NoError(t, p.EmitOrdersAndUpdateOldBuyBook(1, []types.BookLevel{{Price: 100, Qty: 50}}, 1000))
	assert.NotEmpty(t, p.EmittedOrders())

	p.ClearEmittedOrders()
	assert.Empty(t, p.EmittedOrders())
}

func TestOperationsOnDistinctPairsAreIndependent(t *testing.T) {
	p := lob.New([]types.PairID{1, 2})
	assert.NoError(t, p.EmitOrdersAndUpdateOldBuyBook(1, []types.BookLevel{{Price: 100, Qty: 50}}, 1000))

	buy2, err := p.BuySide(2)
	assert.NoError(t, err)
	assert.Equal(t, 0, buy2.Len())

	bounds2, err := p.SeekerBounds(2)
	assert.NoError(t, err)
	assert.Equal(t, -math.MaxFloat64, bounds2.MaxBidSeen)
}
