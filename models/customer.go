package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Customer is the live CRM record. Documents embed their own point-in-time
// customer snapshot; this record may drift from what a posted invoice shows.
type Customer struct {
	Id           string         `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	AddressLine2 string         `json:"address_line2"`
	City         string         `json:"city"`
	Region       string         `json:"region"`
	PostalCode   string         `json:"postal_code"`
	Country      string         `json:"country"`
	Company      string         `json:"company"`
	Notes        string         `json:"notes"`
	Tags         datatypes.JSON `json:"tags" gorm:"type:jsonb"`
	CreatedBy    string         `json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (customer *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	customer.Id = uuid.NewString()
	return
}
