package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is an invoice or a quote; the two share one schema and are
// discriminated by DocumentType. The customer fields are a snapshot captured
// at creation time and stay frozen even if the CRM record changes later;
// CustomerID is an optional cross-link to the live record.
type Document struct {
	Id           string       `json:"id" gorm:"primaryKey"`
	Number       string       `json:"invoice_number" gorm:"unique;not null"`
	DocumentType DocumentType `json:"document_type" gorm:"type:VARCHAR(20);default:'invoice'"`
	Company      CompanyTag   `json:"company" gorm:"type:VARCHAR(20);default:'clonmel'"`

	CustomerID      *string `json:"customer_id" gorm:"index"`
	CustomerName    string  `json:"customer_name" gorm:"not null"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerAddress string  `json:"customer_address"`

	Items []LineItem `json:"items" gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`

	Subtotal   float64 `json:"subtotal" gorm:"type:numeric(12,2)"`
	TaxRate    float64 `json:"tax_rate"` // percent; rate stays float
	TaxAmount  float64 `json:"tax_amount" gorm:"type:numeric(12,2)"`
	Total      float64 `json:"total" gorm:"type:numeric(12,2)"`
	AmountPaid float64 `json:"amount_paid" gorm:"type:numeric(12,2)"`
	BalanceDue float64 `json:"balance_due" gorm:"type:numeric(12,2)"`

	// PaymentState for invoices, QuoteState for quotes. The two state spaces
	// share this column but never interact.
	Status string `json:"status" gorm:"type:VARCHAR(20);default:'UNPAID'"`

	DateIssued time.Time  `json:"date_issued"`
	DueDate    time.Time  `json:"due_date"`
	ValidUntil *time.Time `json:"valid_until"` // quotes only
	Notes      string     `json:"notes"`
	CreatedBy  string     `json:"created_by"`

	// Reminder bookkeeping. LastReminderSent holds an ISO date (YYYY-MM-DD);
	// same-day dedup compares these strings, not timestamps.
	LastReminderSent *string `json:"last_reminder_sent"`
	ReminderCount    int     `json:"reminder_count"`

	PaymentDate *time.Time `json:"payment_date"` // set when fully paid

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (document *Document) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if document.Id == "" {
		document.Id = uuid.NewString()
	}
	return
}

// IsQuote reports whether the document is a quote, either by type or by a
// leftover QT-prefixed number (a just-converted document may still carry one).
func (document *Document) IsQuote() bool {
	if document.DocumentType == TypeQuote {
		return true
	}
	n := document.Number
	return len(n) >= 2 && (n[:2] == "QT" || n[:2] == "qt")
}

// LineItem is one priced row on a Document. Total is stored at entry time,
// not recomputed implicitly; edits must re-derive it.
type LineItem struct {
	Id          string  `json:"id" gorm:"primaryKey"`
	DocumentID  string  `json:"-" gorm:"index"`
	ProductID   string  `json:"product_id"` // optional; custom lines allowed
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" gorm:"type:numeric(14,6)"` // fractional for sqm items
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	Total       float64 `json:"total" gorm:"type:numeric(12,2)"`
	Unit        string  `json:"unit"`
}

func (item *LineItem) BeforeCreate(tx *gorm.DB) (err error) {
	if item.Id == "" {
		item.Id = uuid.NewString()
	}
	return
}

// Payment survives document edits; linked to the document.
type Payment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	DocumentID string    `json:"document_id" gorm:"index:idx_payments_document_paid_at,priority:1"`
	Amount     float64   `json:"amount" gorm:"type:numeric(12,2)"`
	Method     string    `json:"method"`
	Reference  string    `json:"reference"`
	Note       string    `json:"note"`
	PaidAt     time.Time `json:"paid_at" gorm:"index:idx_payments_document_paid_at,priority:2"`
	CreatedAt  time.Time `json:"created_at"`
}

// DocumentPatch is the explicit partial-update shape for the fields mutated
// outside the builder flow (payments, reminders). Nil fields are skipped by
// utils.UpdatesFromPtrDTO.
type DocumentPatch struct {
	AmountPaid       *float64   `json:"amount_paid"`
	BalanceDue       *float64   `json:"balance_due"`
	Status           *string    `json:"status"`
	PaymentDate      *time.Time `json:"payment_date"`
	LastReminderSent *string    `json:"last_reminder_sent"`
	ReminderCount    *int       `json:"reminder_count"`
}
