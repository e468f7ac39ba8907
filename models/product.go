package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id          string     `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	UnitPrice   float64    `json:"unit_price" gorm:"type:numeric(12,2)"`
	Unit        string     `json:"unit"` // "sqm", "pcs", or free text
	Category    string     `json:"category"`
	Company     CompanyTag `json:"company" gorm:"type:VARCHAR(20);default:'clonmel'"`
	Active      bool       `json:"-"`
}

func (product *Product) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	product.Id = uuid.NewString()
	return
}
