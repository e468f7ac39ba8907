package billing

import (
	"testing"
	"time"

	"invoicehub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceWith(total, paid float64, status models.PaymentState) *models.Document {
	return &models.Document{
		Number:     "INV-123456",
		Total:      total,
		AmountPaid: paid,
		BalanceDue: total - paid,
		Status:     string(status),
	}
}

func TestApplyPaymentFull(t *testing.T) {
	doc := invoiceWith(123, 0, models.Unpaid)
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	require.NoError(t, ApplyPayment(doc, 123, now))

	assert.Equal(t, string(models.Paid), doc.Status)
	assert.Equal(t, 123.0, doc.AmountPaid)
	assert.Equal(t, 0.0, doc.BalanceDue)
	require.NotNil(t, doc.PaymentDate)
	assert.Equal(t, now, *doc.PaymentDate)
}

func TestApplyPaymentPartial(t *testing.T) {
	doc := invoiceWith(123, 0, models.Unpaid)

	require.NoError(t, ApplyPayment(doc, 60, time.Now()))

	assert.Equal(t, string(models.PartiallyPaid), doc.Status)
	assert.Equal(t, 60.0, doc.AmountPaid)
	assert.Equal(t, 63.0, doc.BalanceDue)
	assert.Nil(t, doc.PaymentDate)
}

func TestApplyPaymentEpsilonSettles(t *testing.T) {
	// Residual balance within the tolerance counts as fully paid and the
	// stored balance snaps to exactly zero.
	doc := invoiceWith(100, 0, models.Unpaid)

	require.NoError(t, ApplyPayment(doc, 99.96, time.Now()))

	assert.Equal(t, string(models.Paid), doc.Status)
	assert.Equal(t, 0.0, doc.BalanceDue)
	assert.Equal(t, 99.96, doc.AmountPaid)
}

func TestApplyPaymentJustOutsideEpsilon(t *testing.T) {
	doc := invoiceWith(100, 0, models.Unpaid)

	require.NoError(t, ApplyPayment(doc, 99.94, time.Now()))

	assert.Equal(t, string(models.PartiallyPaid), doc.Status)
	assert.InDelta(t, 0.06, doc.BalanceDue, 1e-9)
	assert.Nil(t, doc.PaymentDate)
}

func TestApplyPaymentOverpayClamped(t *testing.T) {
	doc := invoiceWith(100, 80, models.PartiallyPaid)

	require.NoError(t, ApplyPayment(doc, 500, time.Now()))

	assert.Equal(t, 100.0, doc.AmountPaid)
	assert.Equal(t, 0.0, doc.BalanceDue)
	assert.Equal(t, string(models.Paid), doc.Status)
}

func TestApplyPaymentRejectsNonPositive(t *testing.T) {
	doc := invoiceWith(100, 0, models.Unpaid)

	assert.ErrorIs(t, ApplyPayment(doc, 0, time.Now()), ErrNonPositivePayment)
	assert.ErrorIs(t, ApplyPayment(doc, -5, time.Now()), ErrNonPositivePayment)

	// document untouched
	assert.Equal(t, 0.0, doc.AmountPaid)
	assert.Equal(t, string(models.Unpaid), doc.Status)
}

func TestApplyPaymentDateOnlyOnTransition(t *testing.T) {
	doc := invoiceWith(100, 0, models.Unpaid)
	first := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	second := time.Date(2026, 2, 5, 9, 0, 0, 0, time.UTC)

	require.NoError(t, ApplyPayment(doc, 100, first))
	require.NoError(t, ApplyPayment(doc, 10, second)) // redundant extra payment

	require.NotNil(t, doc.PaymentDate)
	assert.Equal(t, first, *doc.PaymentDate)
}

func TestPaymentPatchShape(t *testing.T) {
	doc := invoiceWith(100, 0, models.Unpaid)
	require.NoError(t, ApplyPayment(doc, 40, time.Now()))

	patch := PaymentPatch(doc)

	require.NotNil(t, patch.AmountPaid)
	require.NotNil(t, patch.BalanceDue)
	require.NotNil(t, patch.Status)
	assert.Equal(t, 40.0, *patch.AmountPaid)
	assert.Equal(t, 60.0, *patch.BalanceDue)
	assert.Equal(t, string(models.PartiallyPaid), *patch.Status)
	assert.Nil(t, patch.PaymentDate)
	assert.Nil(t, patch.LastReminderSent)
	assert.Nil(t, patch.ReminderCount)
}
