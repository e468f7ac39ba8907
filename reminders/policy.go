// Package reminders decides which unpaid documents get an automated nudge.
//
// Two policies exist on purpose and are never merged: DuePolicy is the
// user-facing, date-semantic rule (overdue or exactly two days before the
// due date, at most once per day), and AutoPolicy is the background
// automation rule (rolling three-day gap, hard reminder cap, global daily
// send limit). Their thresholds are independent constants.
package reminders

import (
	"errors"
	"time"

	"invoicehub-backend/models"
)

// ErrReminderColumnMissing is returned by a Store whose backing table lacks
// the reminder column. The dispatcher degrades to in-memory tracking for the
// rest of the session instead of failing the batch.
var ErrReminderColumnMissing = errors.New("reminder column missing in store schema")

// Store is the persistence the reminder batch needs.
type Store interface {
	ListDocuments() ([]models.Document, error)
	PatchDocument(id string, patch models.DocumentPatch) error
}

// SendFunc renders and delivers one reminder. Wired to the PDF renderer +
// email webhook by the caller.
type SendFunc func(doc *models.Document) error

// ISODate is the string form used for same-day dedup. Dedup is string
// equality on these, not timestamp distance.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// midnight normalizes a time to its local midnight.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DuePolicy selects non-quote, non-paid documents whose due date has passed
// or is exactly two days ahead.
type DuePolicy struct{}

// Eligible evaluates one document against today. lastSent is the effective
// last-reminder date (the stored field, or the in-memory tracker when the
// dispatcher has degraded).
func (DuePolicy) Eligible(doc *models.Document, today time.Time, lastSent string) bool {
	if doc.IsQuote() {
		return false
	}
	if doc.Status == string(models.Paid) {
		return false
	}
	if doc.DueDate.IsZero() {
		return false
	}

	today = midnight(today)
	due := midnight(doc.DueDate)

	isOverdue := due.Before(today)
	isExactlyTwoDaysBefore := due.AddDate(0, 0, -2).Equal(today)
	if !isOverdue && !isExactlyTwoDaysBefore {
		return false
	}
	return lastSent != ISODate(today)
}

// Background automation thresholds. Independent of DuePolicy.
const (
	ReminderGap   = 3 * 24 * time.Hour // rolling gap between sends
	MaxReminders  = 4                  // per document, total
	MaxDailySends = 50                 // global, per calendar day
)

// AutoPolicy is the rolling-gap rule used only by the background runner.
type AutoPolicy struct{}

// Eligible reports whether the background automation should remind doc now.
// The gap is measured from the last reminder, falling back to the issue date
// for documents never reminded.
func (AutoPolicy) Eligible(doc *models.Document, now time.Time) bool {
	if doc.IsQuote() {
		return false
	}
	if doc.Status == string(models.Paid) || doc.Status == string(models.QuoteAccepted) {
		return false
	}
	if doc.ReminderCount >= MaxReminders {
		return false
	}

	lastEvent := doc.DateIssued
	if doc.LastReminderSent != nil {
		if t, ok := parseWhen(*doc.LastReminderSent); ok {
			lastEvent = t
		}
	}
	return now.Sub(lastEvent) >= ReminderGap
}

// parseWhen accepts either a bare ISO date or a full RFC3339 timestamp;
// older rows carry timestamps.
func parseWhen(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
