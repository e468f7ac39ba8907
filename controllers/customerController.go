package controllers

import (
	"encoding/json"

	"invoicehub-backend/database"
	"invoicehub-backend/middlewares"
	"invoicehub-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type CustomerInput struct {
	Name         string   `json:"name" validate:"required"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Address      string   `json:"address"`
	AddressLine2 string   `json:"address_line2"`
	City         string   `json:"city"`
	Region       string   `json:"region"`
	PostalCode   string   `json:"postal_code"`
	Country      string   `json:"country"`
	Company      string   `json:"company"`
	Notes        string   `json:"notes"`
	Tags         []string `json:"tags"`
}

func customerFromInput(input *CustomerInput, createdBy string) models.Customer {
	var tags datatypes.JSON
	if len(input.Tags) > 0 {
		if raw, err := json.Marshal(input.Tags); err == nil {
			tags = raw
		}
	}
	return models.Customer{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		Region:       input.Region,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
		Company:      input.Company,
		Notes:        input.Notes,
		Tags:         tags,
		CreatedBy:    createdBy,
	}
}

func CreateCustomer(c *fiber.Ctx) error {
	var input CustomerInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	userID, _ := c.Locals("userID").(string)
	customer := customerFromInput(&input, userID)

	tx := database.DB.Begin()
	if err := tx.Create(&customer).Error; err != nil {
		tx.Rollback()
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not create customer",
			"error":   err.Error(),
		})
	}
	tx.Commit()

	return c.JSON(customer)
}

func GetCustomers(c *fiber.Ctx) error {
	var customers []models.Customer
	database.DB.Order("name").Find(&customers)
	return c.JSON(fiber.Map{
		"customers": customers,
		"message":   "success",
	})
}

func GetCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Customer not found"})
	}
	return c.JSON(customer)
}

func UpdateCustomer(c *fiber.Ctx) error {
	id := c.Params("id")

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Customer not found"})
	}

	var input CustomerInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	updated := customerFromInput(&input, customer.CreatedBy)
	updated.Id = customer.Id
	updated.CreatedAt = customer.CreatedAt

	if err := database.DB.Save(&updated).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not update customer",
			"error":   err.Error(),
		})
	}
	return c.JSON(updated)
}

// DeleteCustomer hard-deletes the CRM record. Documents keep their own
// snapshot, so nothing on a posted invoice changes.
func DeleteCustomer(c *fiber.Ctx) error {
	if err := database.DB.Delete(&models.Customer{}, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Could not delete customer",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "success"})
}
