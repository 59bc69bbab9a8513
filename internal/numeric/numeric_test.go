package numeric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"seeklob/internal/numeric"
)

func TestSafeEq(t *testing.T) {
	assert.True(t, numeric.SafeEq(100.0, 100.0+1e-6))
	assert.False(t, numeric.SafeEq(100.0, 100.0+1e-4))
}

func TestPriceBetterBuy(t *testing.T) {
	assert.True(t, numeric.PriceBetter(101, 100, true))
	assert.False(t, numeric.PriceBetter(100, 100, true))
	assert.False(t, numeric.PriceBetter(99, 100, true))
}

func TestPriceBetterSell(t *testing.T) {
	assert.True(t, numeric.PriceBetter(99, 100, false))
	assert.False(t, numeric.PriceBetter(100, 100, false))
	assert.False(t, numeric.PriceBetter(101, 100, false))
}

func TestDefaultPrice(t *testing.T) {
	assert.Equal(t, 0.0, numeric.DefaultPrice(true))
	assert.True(t, math.IsInf(numeric.DefaultPrice(false), 1))
}
