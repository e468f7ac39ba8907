package billing

import (
	"errors"
	"math"
	"time"

	"invoicehub-backend/models"
)

// PaidEpsilon is the residual balance treated as fully settled. It absorbs
// float/rounding drift between the stored total and the sum of payments.
// Do not change the tolerance without migrating stored balances.
const PaidEpsilon = 0.05

var ErrNonPositivePayment = errors.New("payment amount must be greater than zero")

// ApplyPayment records a payment of amount against the document and mutates
// its payment fields in place. Forward-only: there is no unpay operation.
// AmountPaid is clamped to Total, BalanceDue is forced to exactly 0 once
// PAID, and PaymentDate is set only on the transition into PAID.
func ApplyPayment(doc *models.Document, amount float64, now time.Time) error {
	if amount <= 0 {
		return ErrNonPositivePayment
	}

	newPaid := math.Min(doc.Total, doc.AmountPaid+amount)
	newBalance := doc.Total - newPaid

	status := models.PartiallyPaid
	if newBalance <= PaidEpsilon {
		status = models.Paid
	}

	doc.AmountPaid = newPaid
	if status == models.Paid {
		doc.BalanceDue = 0
		if doc.Status != string(models.Paid) {
			t := now
			doc.PaymentDate = &t
		}
	} else {
		doc.BalanceDue = math.Max(0, newBalance)
	}
	doc.Status = string(status)
	return nil
}

// PaymentPatch converts the payment fields of a document into the explicit
// patch shape used for the partial store update.
func PaymentPatch(doc *models.Document) models.DocumentPatch {
	status := doc.Status
	return models.DocumentPatch{
		AmountPaid:  &doc.AmountPaid,
		BalanceDue:  &doc.BalanceDue,
		Status:      &status,
		PaymentDate: doc.PaymentDate,
	}
}
