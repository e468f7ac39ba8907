package pdf

import (
	"bytes"
	"testing"
	"time"

	"invoicehub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderFixture() (*models.Document, *models.AppSettings) {
	doc := &models.Document{
		Id:              "d-1",
		Number:          "INV-2026-4821",
		DocumentType:    models.TypeInvoice,
		Company:         models.CompanyClonmel,
		CustomerName:    "Mary O'Brien",
		CustomerEmail:   "mary@example.ie",
		CustomerAddress: "5 Main Street, Clonmel",
		Items: []models.LineItem{
			{Description: "Clear float glass (1000mm x 500mm)", Quantity: 0.5, UnitPrice: 30, Total: 15, Unit: "sqm"},
			{Description: "Polished edge", Quantity: 4, UnitPrice: 2.5, Total: 10, Unit: "m"},
		},
		Subtotal:   25,
		TaxRate:    23,
		TaxAmount:  5.75,
		Total:      30.75,
		AmountPaid: 10,
		BalanceDue: 20.75,
		Status:     string(models.PartiallyPaid),
		DateIssued: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Notes:      "Please quote the invoice number with your payment.",
	}
	return doc, &models.AppSettings{TaxRate: 23}
}

func fixedRenderer() *Renderer {
	r := NewRenderer()
	r.Now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return r
}

func TestRenderProducesPDF(t *testing.T) {
	doc, settings := renderFixture()

	out, err := fixedRenderer().Render(doc, settings, nil, "Admin")

	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output must start with the PDF magic")
}

func TestRenderDeterministicWithFixedClock(t *testing.T) {
	doc, settings := renderFixture()
	r := fixedRenderer()

	first, err := r.Render(doc, settings, nil, "Admin")
	require.NoError(t, err)
	second, err := fixedRenderer().Render(doc, settings, nil, "Admin")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderPaidRibbonDoesNotFail(t *testing.T) {
	doc, settings := renderFixture()
	doc.Status = string(models.Paid)
	doc.AmountPaid = doc.Total
	doc.BalanceDue = 0

	out, err := fixedRenderer().Render(doc, settings, nil, "Admin")

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderQuote(t *testing.T) {
	doc, settings := renderFixture()
	doc.DocumentType = models.TypeQuote
	doc.Number = "QT-123456"
	doc.Status = string(models.QuotePending)
	validUntil := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	doc.ValidUntil = &validUntil

	out, err := fixedRenderer().Render(doc, settings, nil, "Admin")

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderSurvivesBadLogo(t *testing.T) {
	doc, settings := renderFixture()

	// Garbage logo bytes must not fail the render; the logo is skipped.
	out, err := fixedRenderer().Render(doc, settings, []byte("not an image"), "Admin")

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderManyItemsSinglePageLayout(t *testing.T) {
	doc, settings := renderFixture()
	for i := 0; i < 12; i++ {
		doc.Items = append(doc.Items, models.LineItem{
			Description: "Extra line with a long description that wraps across the available column width",
			Quantity:    1, UnitPrice: 5, Total: 5, Unit: "pcs",
		})
	}

	out, err := fixedRenderer().Render(doc, settings, nil, "Admin")

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "123.45", FormatAmount(123.45))
	assert.Equal(t, "1,234.50", FormatAmount(1234.5))
	assert.Equal(t, "1,234,567.89", FormatAmount(1234567.89))
	assert.Equal(t, "-9,876.54", FormatAmount(-9876.54))
}

func TestFilename(t *testing.T) {
	doc := &models.Document{Number: "INV-2026-4821"}
	assert.Equal(t, "INV-2026-4821.pdf", Filename(doc))
}
