package controllers

import (
	"invoicehub-backend/database"
	"invoicehub-backend/middlewares"
	"invoicehub-backend/models"
	"invoicehub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	Company     string  `json:"company"`
}

// CreateProducts accepts a batch; the CSV import path feeds arrays of
// partial records through here as ordinary creates.
func CreateProducts(c *fiber.Ctx) error {
	var inputs []ProductInput
	if err := c.BodyParser(&inputs); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if len(inputs) == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "No products supplied"})
	}

	products := make([]models.Product, 0, len(inputs))
	for i := range inputs {
		utils.NormalizeDTO(&inputs[i])
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		company := models.CompanyTag(inputs[i].Company)
		if company != models.CompanyMirrorzone {
			company = models.CompanyClonmel
		}
		products = append(products, models.Product{
			Name:        inputs[i].Name,
			Description: inputs[i].Description,
			UnitPrice:   inputs[i].UnitPrice,
			Unit:        inputs[i].Unit,
			Category:    inputs[i].Category,
			Company:     company,
			Active:      true,
		})
	}

	tx := database.DB.Begin()
	if err := tx.Create(&products).Error; err != nil {
		tx.Rollback()
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not create products",
			"error":   err.Error(),
		})
	}
	tx.Commit()

	return c.JSON(products)
}

func GetProducts(c *fiber.Ctx) error {
	var products []models.Product
	database.DB.Where("active = ?", true).Order("name").Find(&products)
	return c.JSON(fiber.Map{
		"products": products,
		"message":  "success",
	})
}

type ProductUpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	UnitPrice   *float64 `json:"unit_price"`
	Unit        *string  `json:"unit"`
	Category    *string  `json:"category"`
	Company     *string  `json:"company"`
}

func UpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var input ProductUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid request body"})
	}
	utils.NormalizePtrDTO(&input)

	updates := utils.UpdatesFromPtrDTO(&input, nil)
	if len(updates) == 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Nothing to update"})
	}

	if err := database.DB.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}

	var product models.Product
	database.DB.First(&product, "id = ?", id)
	return c.JSON(product)
}

// DeleteProduct deactivates rather than removes: historical document lines
// snapshot their product data, but the id may still be cross-referenced.
func DeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := database.DB.Model(&models.Product{}).Where("id = ?", id).Update("active", false).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
