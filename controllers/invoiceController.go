package controllers

import (
	"errors"
	"fmt"
	"os"
	"time"

	"invoicehub-backend/billing"
	"invoicehub-backend/database"
	"invoicehub-backend/middlewares"
	"invoicehub-backend/models"
	"invoicehub-backend/pdf"
	"invoicehub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type LineItemInput struct {
	ProductID   string  `json:"product_id"`
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Unit        string  `json:"unit"`

	// Area-priced items may supply dimensions instead of a quantity; the
	// quantity is then derived as (width*height)/1,000,000 sqm.
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
}

type DocumentInput struct {
	Number          string          `json:"invoice_number"`
	DocumentType    string          `json:"document_type"`
	Company         string          `json:"company"`
	CustomerID      *string         `json:"customer_id"`
	CustomerName    string          `json:"customer_name" validate:"required"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	Items           []LineItemInput `json:"items" validate:"required,min=1"`
	TaxRate         *float64        `json:"tax_rate"`
	DateIssued      string          `json:"date_issued"`
	DueDate         string          `json:"due_date"`
	ValidUntil      string          `json:"valid_until"`
	Notes           string          `json:"notes"`
}

func parseDay(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// buildLineItems derives stored line totals (and sqm quantities from
// dimensions) at entry time.
func buildLineItems(inputs []LineItemInput) []models.LineItem {
	items := make([]models.LineItem, 0, len(inputs))
	for _, in := range inputs {
		qty := in.Quantity
		desc := in.Description
		if in.WidthMM > 0 && in.HeightMM > 0 {
			qty = billing.AreaQuantity(in.WidthMM, in.HeightMM)
			desc = fmt.Sprintf("%s (%vmm x %vmm)", desc, in.WidthMM, in.HeightMM)
		}
		items = append(items, models.LineItem{
			ProductID:   in.ProductID,
			Description: desc,
			Quantity:    qty,
			UnitPrice:   in.UnitPrice,
			Total:       billing.LineTotal(qty, in.UnitPrice),
			Unit:        in.Unit,
		})
	}
	return items
}

// applyDocumentInput maps a validated input onto a document and re-derives
// the financial block. Stored totals are never trusted across edits.
func applyDocumentInput(doc *models.Document, input *DocumentInput, settings *models.AppSettings, now time.Time) {
	docType := models.DocumentType(input.DocumentType)
	if docType != models.TypeQuote {
		docType = models.TypeInvoice
	}
	doc.DocumentType = docType

	company := models.CompanyTag(input.Company)
	if company != models.CompanyMirrorzone {
		company = models.CompanyClonmel
	}
	doc.Company = company

	doc.CustomerID = input.CustomerID
	doc.CustomerName = input.CustomerName
	doc.CustomerEmail = input.CustomerEmail
	doc.CustomerPhone = input.CustomerPhone
	doc.CustomerAddress = input.CustomerAddress

	taxRate := settings.TaxRate
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}

	doc.Items = buildLineItems(input.Items)
	totals := billing.ComputeTotals(doc.Items, taxRate)
	doc.TaxRate = taxRate
	doc.Subtotal = totals.Subtotal
	doc.TaxAmount = totals.TaxAmount
	doc.Total = totals.Total
	doc.BalanceDue = totals.Total - doc.AmountPaid
	if doc.BalanceDue < 0 {
		doc.BalanceDue = 0
	}

	if t := parseDay(input.DateIssued); !t.IsZero() {
		doc.DateIssued = t
	} else if doc.DateIssued.IsZero() {
		doc.DateIssued = now
	}
	if t := parseDay(input.DueDate); !t.IsZero() {
		doc.DueDate = t
	}
	if t := parseDay(input.ValidUntil); !t.IsZero() {
		doc.ValidUntil = &t
	}
	doc.Notes = input.Notes

	if input.Number != "" {
		doc.Number = input.Number
	}
	if doc.Number == "" {
		doc.Number = billing.NewDocumentNumber(docType, now)
	}
	// A converted quote must never keep its QT number.
	billing.EnsureInvoiceNumber(doc, now)

	// A quote edited into an invoice also leaves the quote state space;
	// any lingering approval status resets to UNPAID.
	if docType == models.TypeInvoice {
		switch doc.Status {
		case string(models.QuotePending), string(models.QuoteAccepted),
			string(models.QuoteRejected), string(models.QuoteExpired):
			doc.Status = string(models.Unpaid)
		}
	}

	if doc.Status == "" {
		if docType == models.TypeQuote {
			doc.Status = string(models.QuotePending)
		} else {
			doc.Status = string(models.Unpaid)
		}
	}
}

func CreateInvoice(c *fiber.Ctx) error {
	var input DocumentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	settings, err := database.LoadSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not load settings", "error": err.Error()})
	}

	var doc models.Document
	doc.CreatedBy, _ = c.Locals("userName").(string)
	applyDocumentInput(&doc, &input, settings, time.Now())

	tx := database.DB.Begin()
	if err := tx.Create(&doc).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not create invoice", "error": err.Error()})
	}
	tx.Commit()

	return c.JSON(doc)
}

func GetInvoices(c *fiber.Ctx) error {
	var docs []models.Document
	q := database.DB.Preload("Items").Order("date_issued DESC")
	if t := c.Query("type"); t != "" {
		q = q.Where("document_type = ?", t)
	}
	if limit := utils.ParseIntDefault(c.Query("limit"), 0); limit > 0 {
		q = q.Limit(limit)
	}
	q.Find(&docs)
	return c.JSON(fiber.Map{
		"invoices": docs,
		"message":  "success",
	})
}

func GetInvoice(c *fiber.Ctx) error {
	doc, err := findDocument(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}
	return c.JSON(doc)
}

func findDocument(id string) (*models.Document, error) {
	var doc models.Document
	if err := database.DB.Preload("Items").First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func UpdateInvoice(c *fiber.Ctx) error {
	doc, err := findDocument(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}

	var input DocumentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	settings, err := database.LoadSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not load settings", "error": err.Error()})
	}

	applyDocumentInput(doc, &input, settings, time.Now())

	tx := database.DB.Begin()
	// Line items are replaced wholesale; edits re-derive every stored total.
	if err := tx.Where("document_id = ?", doc.Id).Delete(&models.LineItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not update invoice", "error": err.Error()})
	}
	if err := tx.Save(doc).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{"message": "Could not update invoice", "error": err.Error()})
	}
	tx.Commit()

	return c.JSON(doc)
}

// ConvertInvoice turns a quote into an invoice: fresh INV number, payment
// state reset to UNPAID. The quote number is never retained.
func ConvertInvoice(c *fiber.Ctx) error {
	doc, err := findDocument(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}
	if doc.DocumentType != models.TypeQuote {
		return c.Status(400).JSON(fiber.Map{"message": "Document is not a quote"})
	}

	doc.DocumentType = models.TypeInvoice
	doc.Status = string(models.Unpaid)
	doc.ValidUntil = nil
	billing.EnsureInvoiceNumber(doc, time.Now())

	if err := database.DB.Save(doc).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not convert quote", "error": err.Error()})
	}
	return c.JSON(doc)
}

// DeleteInvoice is a hard delete; there is no tombstone or history trail.
func DeleteInvoice(c *fiber.Ctx) error {
	if err := database.DB.Delete(&models.Document{}, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not delete invoice", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "success"})
}

type PaymentInput struct {
	Amount    float64 `json:"amount" validate:"required"`
	Method    string  `json:"method"`
	Reference string  `json:"reference"`
	Note      string  `json:"note"`
}

// CreatePayment records a payment and advances the payment state machine.
func CreatePayment(c *fiber.Ctx) error {
	doc, err := findDocument(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}
	if doc.DocumentType == models.TypeQuote {
		return c.Status(400).JSON(fiber.Map{"message": "Cannot record a payment against a quote"})
	}

	var input PaymentInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	now := time.Now()
	if err := billing.ApplyPayment(doc, input.Amount, now); err != nil {
		if errors.Is(err, billing.ErrNonPositivePayment) {
			return c.Status(400).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Could not record payment", "error": err.Error()})
	}

	payment := models.Payment{
		DocumentID: doc.Id,
		Amount:     input.Amount,
		Method:     input.Method,
		Reference:  input.Reference,
		Note:       input.Note,
		PaidAt:     now,
	}
	if err := database.SavePayment(database.DB, &payment, doc.Id, billing.PaymentPatch(doc)); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not record payment", "error": err.Error()})
	}

	return c.JSON(doc)
}

func ListPayments(c *fiber.Ctx) error {
	var payments []models.Payment
	database.DB.Where("document_id = ?", c.Params("id")).Order("paid_at").Find(&payments)
	return c.JSON(fiber.Map{
		"payments": payments,
		"message":  "success",
	})
}

// loadLogo reads the brand logo asset for a company tag. A missing file is
// fine; the renderer skips the logo.
func loadLogo(company models.CompanyTag) []byte {
	name := "clonmel-logo.png"
	if company == models.CompanyMirrorzone {
		name = "mirrorzone-logo.png"
	}
	dir := os.Getenv("ASSET_DIR")
	if dir == "" {
		dir = "assets"
	}
	raw, err := os.ReadFile(dir + "/" + name)
	if err != nil {
		return nil
	}
	return raw
}

// GetInvoicePDF renders the document. ?preview=1 serves it inline; default
// is a download named {number}.pdf. Both paths share the same bytes.
func GetInvoicePDF(c *fiber.Ctx) error {
	doc, err := findDocument(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}

	settings, err := database.LoadSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not load settings", "error": err.Error()})
	}

	createdBy := doc.CreatedBy
	if createdBy == "" {
		createdBy, _ = c.Locals("userName").(string)
	}

	out, err := pdf.NewRenderer().Render(doc, settings, loadLogo(doc.Company), createdBy)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not render PDF", "error": err.Error()})
	}

	disposition := "attachment"
	if c.Query("preview") == "1" {
		disposition = "inline"
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, pdf.Filename(doc)))
	return c.Send(out)
}
