package controllers

import (
	"invoicehub-backend/database"
	"invoicehub-backend/models"

	"github.com/gofiber/fiber/v2"
)

func GetSettings(c *fiber.Ctx) error {
	settings, err := database.LoadSettings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not load settings", "error": err.Error()})
	}
	return c.JSON(settings)
}

// UpdateSettings replaces the singleton wholesale. Clients send the full
// object back; there is no field-level merge.
func UpdateSettings(c *fiber.Ctx) error {
	var settings models.AppSettings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body", "error": err.Error()})
	}
	if settings.TaxRate < 0 || settings.TaxRate > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Tax rate must be between 0 and 100"})
	}
	if err := database.SaveSettings(&settings); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Could not save settings", "error": err.Error()})
	}
	return c.JSON(settings)
}
