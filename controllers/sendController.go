package controllers

import (
	"errors"
	"time"

	"invoicehub-backend/database"
	"invoicehub-backend/integrations"
	"invoicehub-backend/models"
	"invoicehub-backend/pdf"
	"invoicehub-backend/reminders"

	"github.com/gofiber/fiber/v2"
)

// loadCustomer resolves the live CRM record behind a document, if any. The
// document snapshot is the fallback everywhere this returns nil.
func loadCustomer(doc *models.Document) *models.Customer {
	if doc.CustomerID == nil || *doc.CustomerID == "" {
		return nil
	}
	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", *doc.CustomerID).Error; err != nil {
		return nil
	}
	return &customer
}

// renderAndBuildPayload produces the full email-send payload for a document:
// PDF render, formatting, customer merge.
func renderAndBuildPayload(c *fiber.Ctx, doc *models.Document, settings *models.AppSettings, notificationType string) (integrations.SendPayload, error) {
	createdBy := doc.CreatedBy
	if createdBy == "" {
		createdBy, _ = c.Locals("userName").(string)
	}
	pdfBytes, err := pdf.NewRenderer().Render(doc, settings, loadLogo(doc.Company), createdBy)
	if err != nil {
		return integrations.SendPayload{}, err
	}
	return integrations.BuildSendPayload(doc, settings, loadCustomer(doc), pdfBytes, notificationType, pdf.Filename(doc), time.Now()), nil
}

// SendInvoice renders the document and posts it to the configured email
// webhook. A missing webhook URL is a client-visible configuration error;
// a refusal from the remote end is a gateway error.
func SendInvoice(c *fiber.Ctx) error {
	doc, err := findDocument(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}
	if doc.CustomerEmail == "" {
		customer := loadCustomer(doc)
		if customer == nil || customer.Email == "" {
			return c.Status(422).JSON(fiber.Map{"message": "Customer has no email address"})
		}
	}

	settings, err := database.LoadSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not load settings", "error": err.Error()})
	}

	notificationType := "Invoice"
	if doc.IsQuote() {
		notificationType = "Quotation"
	}

	payload, err := renderAndBuildPayload(c, doc, settings, notificationType)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not render PDF", "error": err.Error()})
	}

	if err := integrations.NewSender().SendViaWebhook(settings, payload); err != nil {
		if errors.Is(err, integrations.ErrWebhookNotConfigured) {
			return c.Status(400).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Webhook delivery failed", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success"})
}

// SendInvoiceToXero builds the ACCREC payload and posts it to the Xero
// bridge webhook.
func SendInvoiceToXero(c *fiber.Ctx) error {
	doc, err := findDocument(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}
	if doc.IsQuote() {
		return c.Status(400).JSON(fiber.Map{"message": "Quotes cannot be transferred to Xero"})
	}

	settings, err := database.LoadSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not load settings", "error": err.Error()})
	}

	transferredBy, _ := c.Locals("userName").(string)
	payload := integrations.BuildXeroInvoice(doc, loadCustomer(doc), settings, transferredBy, time.Now())

	ok, err := integrations.NewSender().SendToXero(settings, payload)
	if err != nil {
		if errors.Is(err, integrations.ErrXeroNotConfigured) {
			return c.Status(400).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Xero transfer failed", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "transferred": ok})
}

// reminderSendFunc renders and posts the follow-up email for one document.
// Shared by the manual batch and the automation batch.
func reminderSendFunc(c *fiber.Ctx, settings *models.AppSettings) reminders.SendFunc {
	sender := integrations.NewSender()
	return func(doc *models.Document) error {
		payload, err := renderAndBuildPayload(c, doc, settings, "Follow-up / Reminder")
		if err != nil {
			return err
		}
		return sender.SendViaWebhook(settings, payload)
	}
}

// RunReminders executes one manual reminder batch over all documents.
func RunReminders(c *fiber.Ctx) error {
	settings, err := database.LoadSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not load settings", "error": err.Error()})
	}

	dispatcher := reminders.NewDispatcher(
		database.NewDocumentStore(database.DB),
		reminderSendFunc(c, settings),
	)
	result, err := dispatcher.Run()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Reminder run failed", "error": err.Error()})
	}
	return c.JSON(result)
}

// RunAutoReminders executes the background-cadence batch with the daily
// send cap enforced through the persistent counter.
func RunAutoReminders(c *fiber.Ctx) error {
	settings, err := database.LoadSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not load settings", "error": err.Error()})
	}

	runner := reminders.NewAutoRunner(
		database.NewDocumentStore(database.DB),
		database.NewReminderCounterStore(database.DB),
		reminderSendFunc(c, settings),
	)
	result, err := runner.Run()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Reminder run failed", "error": err.Error()})
	}
	return c.JSON(result)
}
