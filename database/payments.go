package database

import (
	"invoicehub-backend/models"

	"gorm.io/gorm"
)

// SavePayment records a payment row and applies the document's updated
// payment fields in one transaction. Either both land or neither does; a
// payment must never persist against a document that still shows the old
// balance.
func SavePayment(db *gorm.DB, payment *models.Payment, documentID string, patch models.DocumentPatch) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return NewDocumentStore(tx).PatchDocument(documentID, patch)
	})
}
