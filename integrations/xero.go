package integrations

import (
	"fmt"
	"math"
	"strings"
	"time"

	"invoicehub-backend/billing"
	"invoicehub-backend/models"
)

// XeroPhone, XeroAddress, XeroContact, XeroLineItem and XeroInvoice mirror
// the ACCREC shape the downstream automation maps onto the Xero API.
type XeroPhone struct {
	PhoneType   string `json:"PhoneType"`
	PhoneNumber string `json:"PhoneNumber"`
}

type XeroAddress struct {
	AddressType  string `json:"AddressType"`
	AddressLine1 string `json:"AddressLine1"`
	AddressLine2 string `json:"AddressLine2"`
	City         string `json:"City"`
	Region       string `json:"Region"`
	PostalCode   string `json:"PostalCode"`
	Country      string `json:"Country"`
}

type XeroContact struct {
	Name         string        `json:"Name"`
	EmailAddress string        `json:"EmailAddress"`
	Phones       []XeroPhone   `json:"Phones"`
	Addresses    []XeroAddress `json:"Addresses"`
}

type XeroLineItem struct {
	Description string  `json:"Description"`
	Quantity    float64 `json:"Quantity"`
	UnitAmount  float64 `json:"UnitAmount"`
	TaxAmount   float64 `json:"TaxAmount"`
	AccountCode string  `json:"AccountCode"`
}

type XeroMetadata struct {
	Source        string `json:"source"`
	TransferredBy string `json:"transferredBy"`
	Timestamp     string `json:"timestamp"`
	Company       string `json:"company"`
}

type XeroInvoice struct {
	Type            string         `json:"Type"`
	Contact         XeroContact    `json:"Contact"`
	Date            string         `json:"Date"`
	DueDate         string         `json:"DueDate"`
	Reference       string         `json:"Reference"`
	Status          string         `json:"Status"`
	LineAmountTypes string         `json:"LineAmountTypes"`
	LineItems       []XeroLineItem `json:"LineItems"`
	Metadata        XeroMetadata   `json:"_metadata"`
}

// isAreaLine reports whether a line is priced by square meter, either by its
// unit label or by a 'sqm' mention in the description.
func isAreaLine(item models.LineItem) bool {
	return item.Unit == "sqm" || strings.Contains(strings.ToLower(item.Description), "sqm")
}

// xeroLine applies the quantity-correction rule for fractional area-priced
// lines: accounting systems expect whole-number quantities, so the quantity
// is rounded up and the unit price re-derived so ceil(qty)*adjusted equals
// the original qty*price to 4 decimals. Tax is computed per line from the
// document rate and rounded to 2 decimals here, rather than letting Xero
// recompute it, to avoid penny-level divergence between systems.
func xeroLine(item models.LineItem, taxRate float64) XeroLineItem {
	rate := taxRate / 100
	lineTotal := item.Quantity * item.UnitPrice
	taxAmount := billing.Round2(lineTotal * rate)

	if isAreaLine(item) && item.Quantity != math.Trunc(item.Quantity) {
		cleanQty := math.Ceil(item.Quantity)
		adjusted := billing.Round4(lineTotal / cleanQty)
		return XeroLineItem{
			Description: fmt.Sprintf("%s (Qty Adjusted: %v -> %v)", item.Description, item.Quantity, cleanQty),
			Quantity:    cleanQty,
			UnitAmount:  adjusted,
			TaxAmount:   taxAmount,
			AccountCode: "200",
		}
	}

	return XeroLineItem{
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitAmount:  item.UnitPrice,
		TaxAmount:   taxAmount,
		AccountCode: "200",
	}
}

// BuildXeroInvoice assembles the ACCREC payload. The live CRM record is
// preferred for contact fields with the document snapshot as fallback.
func BuildXeroInvoice(doc *models.Document, customer *models.Customer, settings *models.AppSettings, transferredBy string, now time.Time) XeroInvoice {
	name := doc.CustomerName
	email := doc.CustomerEmail
	addr1 := doc.CustomerAddress
	phone := doc.CustomerPhone
	var addr XeroAddress
	addr.AddressType = "POBOX" // Xero uses POBOX for postal
	if customer != nil {
		if customer.Name != "" {
			name = customer.Name
		}
		if customer.Email != "" {
			email = customer.Email
		}
		if customer.Phone != "" {
			phone = customer.Phone
		}
		if customer.Address != "" {
			addr1 = customer.Address
		}
		addr.AddressLine2 = customer.AddressLine2
		addr.City = customer.City
		addr.Region = customer.Region
		addr.PostalCode = customer.PostalCode
		addr.Country = customer.Country
	}
	if name == "" {
		name = "Unknown Customer"
	}
	addr.AddressLine1 = addr1

	var phones []XeroPhone
	if phone != "" {
		phones = append(phones, XeroPhone{PhoneType: "DEFAULT", PhoneNumber: phone})
	}

	lines := make([]XeroLineItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		lines = append(lines, xeroLine(item, doc.TaxRate))
	}

	if transferredBy == "" {
		transferredBy = "system"
	}

	return XeroInvoice{
		Type: "ACCREC",
		Contact: XeroContact{
			Name:         name,
			EmailAddress: email,
			Phones:       phones,
			Addresses:    []XeroAddress{addr},
		},
		Date:            doc.DateIssued.Format("2006-01-02"),
		DueDate:         doc.DueDate.Format("2006-01-02"),
		Reference:       doc.Number,
		Status:          "AUTHORISED",
		LineAmountTypes: "Exclusive",
		LineItems:       lines,
		Metadata: XeroMetadata{
			Source:        "Clonmel Glass Invoice Hub",
			TransferredBy: transferredBy,
			Timestamp:     now.UTC().Format(time.RFC3339),
			Company:       settings.CompanyName,
		},
	}
}

// SendToXero posts the ACCREC payload. Returns whether the transfer
// succeeded; the caller decides user messaging.
func (s *Sender) SendToXero(settings *models.AppSettings, payload XeroInvoice) (bool, error) {
	if settings.XeroWebhookURL == "" {
		return false, ErrXeroNotConfigured
	}
	if err := postJSON(s.Client, settings.XeroWebhookURL, payload); err != nil {
		return false, err
	}
	return true, nil
}
