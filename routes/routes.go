package routes

import (
	"github.com/gofiber/fiber/v2"

	"invoicehub-backend/controllers"
	"invoicehub-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard for all mutating calls
	protected.Use(middlewares.Idempotency())

	// Customers (CRM)
	protected.Post("/customer", controllers.CreateCustomer)
	protected.Get("/customers", controllers.GetCustomers)
	protected.Get("/customer/:id", controllers.GetCustomer)
	protected.Put("/customer/:id", controllers.UpdateCustomer)
	protected.Delete("/customer/:id", controllers.DeleteCustomer)

	// Product catalog
	protected.Post("/product", controllers.CreateProducts) // batch create
	protected.Get("/products", controllers.GetProducts)
	protected.Put("/products/:id", controllers.UpdateProduct)
	protected.Delete("/products/:id", controllers.DeleteProduct)

	// Invoices and quotes (shared document model)
	protected.Post("/invoice", controllers.CreateInvoice)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoice/:id", controllers.GetInvoice)
	protected.Put("/invoices/:id", controllers.UpdateInvoice)
	protected.Put("/invoices/:id/convert", controllers.ConvertInvoice)
	protected.Delete("/invoices/:id", controllers.DeleteInvoice)

	// Payments
	protected.Post("/invoices/:id/payments", controllers.CreatePayment)
	protected.Get("/invoices/:id/payments", controllers.ListPayments)

	// Rendering and outbound delivery
	protected.Get("/invoices/:id/pdf", controllers.GetInvoicePDF)
	protected.Post("/invoices/:id/send", controllers.SendInvoice)
	protected.Post("/invoices/:id/xero", controllers.SendInvoiceToXero)

	// Reminder batches
	protected.Post("/reminders/run", controllers.RunReminders)
	protected.Post("/reminders/auto", controllers.RunAutoReminders)

	// Settings singleton
	protected.Get("/settings", controllers.GetSettings)
	protected.Put("/settings", controllers.UpdateSettings)
}
