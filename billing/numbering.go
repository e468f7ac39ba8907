package billing

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"invoicehub-backend/models"
)

// NewDocumentNumber assigns a provisional human-readable number at draft
// creation: prefix plus the trailing six digits of the creation time.
func NewDocumentNumber(docType models.DocumentType, now time.Time) string {
	prefix := "INV"
	if docType == models.TypeQuote {
		prefix = "QT"
	}
	millis := fmt.Sprintf("%d", now.UnixMilli())
	return fmt.Sprintf("%s-%s", prefix, millis[len(millis)-6:])
}

// ConversionNumber mints the fresh invoice number used when a quote becomes
// an invoice: INV-{year}-{4 random digits}.
func ConversionNumber(now time.Time) string {
	return fmt.Sprintf("INV-%d-%d", now.Year(), 1000+rand.Intn(9000))
}

// EnsureInvoiceNumber regenerates the number of a document that is flagged
// as an invoice but still carries a QT-prefixed number -- the signal that it
// was just converted from a quote. Quote numbers are never retained on
// invoices. Returns true if the number was re-minted.
func EnsureInvoiceNumber(doc *models.Document, now time.Time) bool {
	if doc.DocumentType != models.TypeInvoice {
		return false
	}
	upper := strings.ToUpper(doc.Number)
	if !strings.HasPrefix(upper, "QT") {
		return false
	}
	doc.Number = ConversionNumber(now)
	return true
}
