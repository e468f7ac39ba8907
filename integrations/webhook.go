// Package integrations builds and posts the outbound JSON payloads: the
// generic email-send webhook and the Xero transfer. Both are plain HTTP
// POSTs to user-configured URLs; a missing URL is a configuration error
// surfaced before any request is attempted.
package integrations

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"invoicehub-backend/models"
)

var (
	ErrWebhookNotConfigured = errors.New("webhook URL not configured in Settings")
	ErrXeroNotConfigured    = errors.New("Xero webhook URL not configured")
)

// SendTotals carries the financial fields pre-formatted as euro-prefixed
// display strings; the receiving automation templating expects strings, not
// numbers.
type SendTotals struct {
	Subtotal   string  `json:"subtotal"`
	TaxRate    float64 `json:"taxRate"`
	TaxAmount  string  `json:"taxAmount"`
	Total      string  `json:"total"`
	AmountPaid string  `json:"amountPaid"`
	BalanceDue string  `json:"balanceDue"`
}

type SendItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   string  `json:"unitPrice"`
	Total       string  `json:"total"`
	Unit        string  `json:"unit"`
}

type SendInvoice struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	Status        string     `json:"status"`
	DateIssued    string     `json:"dateIssued"` // DD-MM-YYYY
	DueDate       string     `json:"dueDate"`    // DD-MM-YYYY, empty when unset
	Currency      string     `json:"currency"`
	Notes         string     `json:"notes"`
	ReminderCount int        `json:"reminderCount"`
	Totals        SendTotals `json:"totals"`
	Items         []SendItem `json:"items"`
}

// SendCustomer merges the document's point-in-time snapshot with whatever
// richer CRM fields are available on the live record.
type SendCustomer struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	City        string   `json:"city,omitempty"`
	PostalCode  string   `json:"postalCode,omitempty"`
	Country     string   `json:"country,omitempty"`
	CompanyName string   `json:"companyName,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CRMNotes    string   `json:"crmNotes,omitempty"`
}

type SendSender struct {
	Company models.CompanyTag `json:"company"`
	TaxID   string            `json:"taxId"`
}

// SendPayload is the email-send webhook envelope.
type SendPayload struct {
	GeneratedAt      string       `json:"generatedAt"`
	WebhookType      string       `json:"webhookType"`
	NotificationType string       `json:"notificationType"`
	Filename         string       `json:"filename"`
	PDFBase64        string       `json:"pdfBase64"`
	Invoice          SendInvoice  `json:"invoice"`
	Customer         SendCustomer `json:"customer"`
	Sender           SendSender   `json:"sender"`
}

// euroString formats a money value as the display string the automation
// expects. Plain 2dp, no thousands separators (those are a PDF concern).
func euroString(v float64) string {
	return fmt.Sprintf("€%.2f", v)
}

// wireDate renders DD-MM-YYYY; zero times render empty.
func wireDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02-01-2006")
}

func splitName(full string) (first, last string) {
	for i, r := range full {
		if r == ' ' {
			return full[:i], full[i+1:]
		}
	}
	return full, ""
}

// BuildSendPayload assembles the webhook envelope from a document, the
// rendered PDF, and the optional live CRM record. notificationType defaults
// to "Manual Send".
func BuildSendPayload(doc *models.Document, settings *models.AppSettings, customer *models.Customer, pdfBytes []byte, notificationType, filename string, now time.Time) SendPayload {
	if notificationType == "" {
		notificationType = "Manual Send"
	}

	items := make([]SendItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		items = append(items, SendItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   euroString(item.UnitPrice),
			Total:       euroString(item.Total),
			Unit:        item.Unit,
		})
	}

	first, last := splitName(doc.CustomerName)
	cust := SendCustomer{
		Name:      doc.CustomerName,
		FirstName: first,
		LastName:  last,
		Email:     doc.CustomerEmail,
		Phone:     doc.CustomerPhone,
		Address:   doc.CustomerAddress,
	}
	if doc.CustomerID != nil {
		cust.ID = *doc.CustomerID
	}
	if customer != nil {
		cust.City = customer.City
		cust.PostalCode = customer.PostalCode
		cust.Country = customer.Country
		cust.CompanyName = customer.Company
		cust.CRMNotes = customer.Notes
		if len(customer.Tags) > 0 {
			var tags []string
			if err := json.Unmarshal(customer.Tags, &tags); err == nil {
				cust.Tags = tags
			}
		}
	}

	company := doc.Company
	if company == "" {
		company = models.CompanyClonmel
	}

	return SendPayload{
		GeneratedAt:      now.UTC().Format(time.RFC3339),
		WebhookType:      "INVOICE_SEND",
		NotificationType: notificationType,
		Filename:         filename,
		PDFBase64:        base64.StdEncoding.EncodeToString(pdfBytes),
		Invoice: SendInvoice{
			ID:            doc.Id,
			Number:        doc.Number,
			Status:        doc.Status,
			DateIssued:    wireDate(doc.DateIssued),
			DueDate:       wireDate(doc.DueDate),
			Currency:      "EUR",
			Notes:         doc.Notes,
			ReminderCount: doc.ReminderCount,
			Totals: SendTotals{
				Subtotal:   euroString(doc.Subtotal),
				TaxRate:    doc.TaxRate,
				TaxAmount:  euroString(doc.TaxAmount),
				Total:      euroString(doc.Total),
				AmountPaid: euroString(doc.AmountPaid),
				BalanceDue: euroString(doc.BalanceDue),
			},
			Items: items,
		},
		Customer: cust,
		Sender: SendSender{
			Company: company,
			TaxID:   settings.VATNumber,
		},
	}
}

// postJSON does the actual webhook call. Success is any 2xx.
func postJSON(client *http.Client, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook failed: %s", resp.Status)
	}
	return nil
}

// Sender posts payloads to the configured webhook URLs.
type Sender struct {
	Client *http.Client
}

func NewSender() *Sender {
	return &Sender{Client: &http.Client{Timeout: 30 * time.Second}}
}

// SendViaWebhook posts the email-send envelope. Fails fast when no webhook
// URL is configured; no request is attempted.
func (s *Sender) SendViaWebhook(settings *models.AppSettings, payload SendPayload) error {
	if settings.WebhookURL == "" {
		return ErrWebhookNotConfigured
	}
	return postJSON(s.Client, settings.WebhookURL, payload)
}
