package integrations

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"invoicehub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXeroLineWholeQuantityUnchanged(t *testing.T) {
	item := models.LineItem{Description: "Shelf bracket", Quantity: 3, UnitPrice: 12.5, Unit: "pcs"}

	line := xeroLine(item, 23)

	assert.Equal(t, 3.0, line.Quantity)
	assert.Equal(t, 12.5, line.UnitAmount)
	assert.Equal(t, "Shelf bracket", line.Description)
	assert.Equal(t, "200", line.AccountCode)
	assert.Equal(t, 8.63, line.TaxAmount) // 37.50 * 0.23
}

func TestXeroLineFractionalSqmAdjusted(t *testing.T) {
	// 0.5 sqm at EUR 30/sqm: Xero gets qty 1 at EUR 15.00.
	item := models.LineItem{Description: "Clear float glass", Quantity: 0.5, UnitPrice: 30, Unit: "sqm"}

	line := xeroLine(item, 23)

	assert.Equal(t, 1.0, line.Quantity)
	assert.Equal(t, 15.0, line.UnitAmount)
	assert.Contains(t, line.Description, "Qty Adjusted: 0.5 -> 1")
	assert.Equal(t, 3.45, line.TaxAmount)
}

func TestXeroLineAdjustmentPreservesTotal(t *testing.T) {
	quantities := []float64{0.206115, 0.5, 1.25, 2.8, 3.333333}
	prices := []float64{18, 30, 42.5, 55.99}

	for _, qty := range quantities {
		for _, price := range prices {
			item := models.LineItem{Description: "Pane", Quantity: qty, UnitPrice: price, Unit: "sqm"}
			line := xeroLine(item, 23)

			original := qty * price
			adjusted := line.Quantity * line.UnitAmount
			assert.InDelta(t, original, adjusted, 0.01,
				"qty %v price %v: total drift too large", qty, price)
			assert.Equal(t, line.Quantity, math.Ceil(qty))
		}
	}
}

func TestXeroLineSqmByDescription(t *testing.T) {
	item := models.LineItem{Description: "Mirror 1.5 sqm cut", Quantity: 1.5, UnitPrice: 40}

	line := xeroLine(item, 23)

	assert.Equal(t, 2.0, line.Quantity, "sqm in description triggers the correction")
}

func TestBuildXeroInvoiceShape(t *testing.T) {
	doc := sendFixture()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	inv := BuildXeroInvoice(doc, nil, &models.AppSettings{CompanyName: "Clonmel Glass & Mirrors Ltd"}, "admin@clonmelglass.ie", now)

	assert.Equal(t, "ACCREC", inv.Type)
	assert.Equal(t, "AUTHORISED", inv.Status)
	assert.Equal(t, "Exclusive", inv.LineAmountTypes)
	assert.Equal(t, "2026-03-01", inv.Date)
	assert.Equal(t, "2026-03-31", inv.DueDate)
	assert.Equal(t, "INV-2026-4821", inv.Reference)
	assert.Equal(t, "Mary O'Brien", inv.Contact.Name)
	require.Len(t, inv.Contact.Addresses, 1)
	assert.Equal(t, "POBOX", inv.Contact.Addresses[0].AddressType)
	assert.Equal(t, "admin@clonmelglass.ie", inv.Metadata.TransferredBy)
	assert.Equal(t, "Clonmel Glass Invoice Hub", inv.Metadata.Source)
}

func TestBuildXeroInvoicePrefersLiveCustomer(t *testing.T) {
	doc := sendFixture()
	customer := &models.Customer{
		Name:       "Mary O'Brien Interiors Ltd",
		Email:      "accounts@obrien.ie",
		Address:    "Unit 4, Business Park",
		City:       "Clonmel",
		PostalCode: "E91 AB34",
	}

	inv := BuildXeroInvoice(doc, customer, &models.AppSettings{}, "", time.Now())

	assert.Equal(t, "Mary O'Brien Interiors Ltd", inv.Contact.Name)
	assert.Equal(t, "accounts@obrien.ie", inv.Contact.EmailAddress)
	assert.Equal(t, "Unit 4, Business Park", inv.Contact.Addresses[0].AddressLine1)
	assert.Equal(t, "Clonmel", inv.Contact.Addresses[0].City)
	assert.Equal(t, "system", inv.Metadata.TransferredBy)
}

func TestBuildXeroInvoiceUnknownCustomer(t *testing.T) {
	doc := sendFixture()
	doc.CustomerName = ""

	inv := BuildXeroInvoice(doc, nil, &models.AppSettings{}, "", time.Now())

	assert.Equal(t, "Unknown Customer", inv.Contact.Name)
}

func TestSendToXero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ok, err := NewSender().SendToXero(&models.AppSettings{XeroWebhookURL: srv.URL}, XeroInvoice{})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NewSender().SendToXero(&models.AppSettings{}, XeroInvoice{})
	assert.ErrorIs(t, err, ErrXeroNotConfigured)
	assert.False(t, ok)
}
