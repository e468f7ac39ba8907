package models

// PaymentState tracks how much of an invoice has been settled.
// Transitions are forward-only: UNPAID -> PARTIALLY_PAID -> PAID.
type PaymentState string

const (
	Unpaid        PaymentState = "UNPAID"
	PartiallyPaid PaymentState = "PARTIALLY_PAID"
	Paid          PaymentState = "PAID"
)

// QuoteState is the approval lifecycle of a quote. It is a separate state
// space from PaymentState; the two never interact even though both end up
// in the same status column.
type QuoteState string

const (
	QuotePending  QuoteState = "PENDING"
	QuoteAccepted QuoteState = "ACCEPTED"
	QuoteRejected QuoteState = "REJECTED"
	QuoteExpired  QuoteState = "EXPIRED"
)

// DocumentType discriminates invoices from quotes; both share the Document schema.
type DocumentType string

const (
	TypeInvoice DocumentType = "invoice"
	TypeQuote   DocumentType = "quote"
)

// CompanyTag selects one of the two fixed brand identities.
type CompanyTag string

const (
	CompanyClonmel    CompanyTag = "clonmel"
	CompanyMirrorzone CompanyTag = "mirrorzone"
)
