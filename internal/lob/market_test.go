package lob_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seeklob/internal/lob"
	"seeklob/internal/types"
)

func TestMarketOrderOnEmptyBuyBookEmitsIceberg(t *testing.T) {
	p := newTestParser(t, 1)

	assert.NoError(t, p.EmitMarketOrderAndUpdateBuyBook(1, 20, 100.0, 1000))

	emitted := p.EmittedOrders()
	assert.Len(t, emitted, 2)

	assert.Equal(t, types.Iceberg, emitted[0].Type)
	assert.Equal(t, types.Add, emitted[0].Action)
	assert.Equal(t, types.Buy, emitted[0].Side)
	assert.Equal(t, types.Qty(20), emitted[0].Qty)

	assert.Equal(t, types.Market, emitted[1].Type)
	assert.Equal(t, types.Sell, emitted[1].Side)
	assert.Equal(t, types.Qty(20), emitted[1].Qty)

	buy, _ := p.BuySide(1)
	assert.Equal(t, 0, buy.Len())
}

func TestMarketOrderPartialFillBuyBook(t *testing.T) {
	p := newTestParser(t, 1)
	assert.NoError(t, p.EmitOrdersAndUpdateOldBuyBook(1, []types.BookLevel{
		{Price: 100.0, Qty: 50},
	}, 1000))
	p.ClearEmittedOrders()

	assert.NoError(t, p.EmitMarketOrderAndUpdateBuyBook(1, 20, 100.0, 2000))

	buy, _ := p.BuySide(1)
	assert.Equal(t, 1, buy.Len())
	assert.Equal(t, types.Qty(30), buy[0].Qty)

	emitted := p.EmittedOrders()
	assert.Len(t, emitted, 1)
	assert.Equal(t, types.Market, emitted[0].Type)
	assert.Equal(t, types.Sell, emitted[0].Side)
	assert.Equal(t, types.Qty(20), emitted[0].Qty)
}

func TestMarketOrderExactFillBuyBook(t *testing.T) {
	p := newTestParser(t, 1)
	assert.NoError(t, p.EmitOrdersAndUpdateOldBuyBook(1, []types.BookLevel{
		{Price: 100.0, Qty: 50},
	}, 1000))
	p.ClearEmittedOrders()

	assert.NoError(t, p.EmitMarketOrderAndUpdateBuyBook(1, 50, 100.0, 2000))

	buy, _ := p.BuySide(1)
	assert.Equal(t, 0, buy.Len())

	emitted := p.EmittedOrders()
	assert.Len(t, emitted, 1)
	assert.Equal(t, types.Market, emitted[0].Type)
}

func TestMarketOrderOverfillBuyBookDetectsIceberg(t *testing.T) {
	p := newTestParser(t, 1)
	assert.NoError(t, p.EmitOrdersAndUpdateOldBuyBook(1, []types.BookLevel{
		{Price: 100.0, Qty: 50},
	}, 1000))
	p.ClearEmittedOrders()

	assert.NoError(t, p.EmitMarketOrderAndUpdateBuyBook(1, 70, 100.0, 2000))

	buy, _ := p.BuySide(1)
	assert.Equal(t, 0, buy.Len())

	emitted := p.EmittedOrders()
	assert.Len(t, emitted, 2)

	assert.Equal(t, types.Iceberg, emitted[0].Type)
	assert.Equal(t, types.Buy, emitted[0].Side)
	assert.Equal(t, types.Qty(20), emitted[0].Qty)

	assert.Equal(t, types.Market, emitted[1].Type)
	assert.Equal(t, types.Qty(70), emitted[1].Qty)
}

func TestMarketOrderAtWrongPriceOnBuyBookLogsAndDoesNotMutate(t *testing.T) {
	p := newTestParser(t, 1)
	assert.NoError(t, p.EmitOrdersAndUpdateOldBuyBook(1, []types.BookLevel{
		{Price: 100.0, Qty: 50},
	}, 1000))
	p.ClearEmittedOrders()

	assert.NoError(t, p.EmitMarketOrderAndUpdateBuyBook(1, 20, 99.0, 2000))

	buy, _ := p.BuySide(1)
	assert.Equal(t, 1, buy.Len())
	assert.Equal(t, types.Qty(50), buy[0].Qty)
	assert.Empty(t, p.EmittedOrders())
}

func TestMarketOrderZeroQuantityOnBuyBookExactFills(t *testing.T) {
	p := newTestParser(t, 1)
	assert.NoError(t, p.EmitOrdersAndUpdateOldBuyBook(1, []types.BookLevel{
		{Price: 100.0, Qty: 0},
	}, 1000))
	p.ClearEmittedOrders()

	assert.NoError(t, p.EmitMarketOrderAndUpdateBuyBook(1, 0, 100.0, 2000))

	buy, _ := p.BuySide(1)
	assert.Equal(t, 0, buy.Len())
}

func TestMarketOrderOnEmptySellBookEmitsIceberg(t *testing.T) {
	p := newTestParser(t, 1)

	assert.NoError(t, p.EmitMarketOrderAndUpdateSellBook(1, 15, 101.0, 1000))

	emitted := p.EmittedOrders()
	assert.Len(t, emitted, 2)
	assert.Equal(t, types.Iceberg, emitted[0].Type)
	assert.Equal(t, types.Sell, emitted[0].Side)
	assert.Equal(t, types.Market, emitted[1].Type)
	assert.Equal(t, types.Buy, emitted[1].Side)
}

func TestMarketOrderPartialFillSellBook(t *testing.T) {
	p := newTestParser(t, 1)
	assert.NoError(t, p.EmitOrdersAndUpdateOldSellBook(1, []types.BookLevel{
		{Price: 101.0, Qty: 40},
	}, 1000))
	p.ClearEmittedOrders()

	assert.NoError(t, p.EmitMarketOrderAndUpdateSellBook(1, 15, 101.0, 2000))

	sell, _ := p.SellSide(1)
	assert.Equal(t, 1, sell.Len())
	assert.Equal(t, types.Qty(25), sell[0].Qty)
}

func TestMarketOrderExactFillSellBook(t *testing.T) {
	p := newTestParser(t, 1)
	assert.NoError(t, p.EmitOrdersAndUpdateOldSellBook(1, []types.BookLevel{
		{Price: 101.0, Qty: 40},
	}, 1000))
	p.ClearEmittedOrders()

	assert.NoError(t, p.EmitMarketOrderAndUpdateSellBook(1, 40, 101.0, 2000))

	sell, _ := p.SellSide(1)
	assert.Equal(t, 0, sell.Len())
}

func TestMarketOrderOverfillSellBookDetectsIceberg(t *testing.T) {
	p := newTestParser(t, 1)
	assert.NoError(t, p.EmitOrdersAndUpdateOldSellBook(1, []types.BookLevel{
		{Price: 101.0, Qty: 40},
	}, 1000))
	p.ClearEmittedOrders()

	assert.NoError(t, p.EmitMarketOrderAndUpdateSellBook(1, 55, 101.0, 2000))

	sell, _ := p.SellSide(1)
	assert.Equal(t, 0, sell.Len())

	emitted := p.EmittedOrders()
	assert.Len(t, emitted, 2)
	assert.Equal(t, types.Iceberg, emitted[0].Type)
	assert.Equal(t, types.Qty(15), emitted[0].Qty)
}

func TestMarketOrderAtWrongPriceOnSellBookIsSilentNoOp(t *testing.T) {
	p := newTestParser(t, 1)
	assert.NoError(t, p.EmitOrdersAndUpdateOldSellBook(1, []types.BookLevel{
		{Price: 101.0, Qty: 40},
	}, 1000))
	p.ClearEmittedOrders()

	assert.NoError(t, p.EmitMarketOrderAndUpdateSellBook(1, 15, 102.0, 2000))

	sell, _ := p.SellSide(1)
	assert.Equal(t, 1, sell.Len())
	assert.Equal(t, types.Qty(40), sell[0].Qty)
	assert.Empty(t, p.EmittedOrders())
}

func TestMarketOrderUnknownPair(t *testing.T) {
	p := newTestParser(t, 1)
	assert.ErrorIs(t, p.EmitMarketOrderAndUpdateBuyBook(99, 10, 100.0, 1000), lob.ErrUnknownPair)
}
