package billing

import (
	"testing"

	"invoicehub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotalsStandardVAT(t *testing.T) {
	items := []models.LineItem{
		{Description: "Mirror 6mm", Quantity: 2, UnitPrice: 30, Total: LineTotal(2, 30)},
		{Description: "Fitting", Quantity: 1, UnitPrice: 40, Total: LineTotal(1, 40)},
	}

	totals := ComputeTotals(items, 23)

	assert.Equal(t, 100.0, totals.Subtotal)
	assert.Equal(t, 23.0, totals.TaxAmount)
	assert.Equal(t, 123.0, totals.Total)
}

func TestComputeTotalsZeroRate(t *testing.T) {
	items := []models.LineItem{{Total: 55.5}}

	totals := ComputeTotals(items, 0)

	assert.Equal(t, 55.5, totals.Subtotal)
	assert.Equal(t, 0.0, totals.TaxAmount)
	assert.Equal(t, 55.5, totals.Total)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, 23)

	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.TaxAmount)
	assert.Equal(t, 0.0, totals.Total)
}

func TestComputeTotalsSubtotalNotReRounded(t *testing.T) {
	// Line totals are already rounded; the subtotal sums them exactly so the
	// printed breakdown always adds up line by line.
	items := []models.LineItem{
		{Total: LineTotal(3, 33.333)}, // 100.00 after rounding
		{Total: LineTotal(1, 0.005)},  // 0.01 after rounding
	}

	totals := ComputeTotals(items, 23)

	require.Equal(t, 100.01, totals.Subtotal)
	assert.Equal(t, Round2(100.01*0.23), totals.TaxAmount)
}

func TestLineTotalRounding(t *testing.T) {
	assert.Equal(t, 15.0, LineTotal(0.5, 30))
	assert.Equal(t, 10.71, LineTotal(3, 3.57))
	assert.Equal(t, 0.0, LineTotal(0, 99.99))
}

func TestAreaQuantity(t *testing.T) {
	// 1000mm x 500mm = 0.5 sqm
	assert.Equal(t, 0.5, AreaQuantity(1000, 500))
	// commutative
	assert.Equal(t, AreaQuantity(1234, 567), AreaQuantity(567, 1234))
	// sub-millimetre precision kept to 6 places
	assert.Equal(t, 0.206115, AreaQuantity(453, 455))
}

func TestAreaQuantityNonPositive(t *testing.T) {
	assert.Equal(t, 0.0, AreaQuantity(0, 500))
	assert.Equal(t, 0.0, AreaQuantity(1000, -1))
}

func TestAreaPricedLineEndToEnd(t *testing.T) {
	// 1000x500 pane at EUR 30/sqm prices at EUR 15.00.
	qty := AreaQuantity(1000, 500)
	assert.Equal(t, 15.0, LineTotal(qty, 30))
}

func TestRoundingHelpers(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 1.2346, Round4(1.23456))
	assert.Equal(t, 0.123457, Round6(0.1234567))
}
