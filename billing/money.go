package billing

import (
	"invoicehub-backend/models"

	"github.com/shopspring/decimal"
)

// Totals is the derived financial block of a document.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
}

// Round2 rounds x to 2 decimal places. Money boundaries only; intermediate
// values keep full precision.
func Round2(x float64) float64 {
	v, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return v
}

// Round4 rounds x to 4 decimal places (Xero unit amounts).
func Round4(x float64) float64 {
	v, _ := decimal.NewFromFloat(x).Round(4).Float64()
	return v
}

// Round6 rounds x to 6 decimal places (sqm quantities).
func Round6(x float64) float64 {
	v, _ := decimal.NewFromFloat(x).Round(6).Float64()
	return v
}

// LineTotal derives a stored line total from quantity and unit price.
// Rounded to 2 decimals at this boundary; callers persist the result rather
// than recomputing it implicitly.
func LineTotal(quantity, unitPrice float64) float64 {
	return Round2(quantity * unitPrice)
}

// ComputeTotals derives {subtotal, taxAmount, total} from already-entered
// line items and a tax-rate percentage. The subtotal is an exact sum of the
// stored (already rounded) line totals and is never rounded again; only the
// tax amount is rounded here. Negative inputs propagate arithmetically --
// validation is the caller's concern.
func ComputeTotals(items []models.LineItem, taxRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}
	taxAmount := Round2(subtotal * taxRate / 100)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal + taxAmount,
	}
}

// AreaQuantity derives an sqm quantity from width x height in millimeters.
// Kept to 6 decimal places internally; line totals are computed from this
// value before their own 2-decimal rounding. Non-positive dimensions yield 0.
func AreaQuantity(widthMM, heightMM float64) float64 {
	if widthMM <= 0 || heightMM <= 0 {
		return 0
	}
	return Round6(widthMM * heightMM / 1_000_000)
}
