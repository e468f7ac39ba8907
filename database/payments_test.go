package database

import (
	"testing"
	"time"

	"invoicehub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Document{}, &models.LineItem{}, &models.Payment{}))
	return db
}

func seedInvoice(t *testing.T, db *gorm.DB) *models.Document {
	doc := &models.Document{
		Number:       "INV-123456",
		DocumentType: models.TypeInvoice,
		CustomerName: "Mary O'Brien",
		Total:        100,
		BalanceDue:   100,
		Status:       string(models.Unpaid),
	}
	require.NoError(t, db.Create(doc).Error)
	return doc
}

func TestSavePaymentUpdatesBoth(t *testing.T) {
	db := setupTestDB(t)
	doc := seedInvoice(t, db)

	paid, balance, status := 40.0, 60.0, string(models.PartiallyPaid)
	payment := &models.Payment{DocumentID: doc.Id, Amount: 40, PaidAt: time.Now()}
	patch := models.DocumentPatch{AmountPaid: &paid, BalanceDue: &balance, Status: &status}

	require.NoError(t, SavePayment(db, payment, doc.Id, patch))

	var count int64
	db.Model(&models.Payment{}).Where("document_id = ?", doc.Id).Count(&count)
	assert.Equal(t, int64(1), count)

	var got models.Document
	require.NoError(t, db.First(&got, "id = ?", doc.Id).Error)
	assert.Equal(t, 40.0, got.AmountPaid)
	assert.Equal(t, 60.0, got.BalanceDue)
	assert.Equal(t, string(models.PartiallyPaid), got.Status)
}

func TestSavePaymentRollsBackTogether(t *testing.T) {
	db := setupTestDB(t)
	doc := seedInvoice(t, db)

	// Make the document update fail after the payment insert would have
	// succeeded; the payment row must not survive on its own.
	require.NoError(t, db.Migrator().DropTable(&models.Document{}))

	paid, status := 40.0, string(models.PartiallyPaid)
	payment := &models.Payment{DocumentID: doc.Id, Amount: 40, PaidAt: time.Now()}
	patch := models.DocumentPatch{AmountPaid: &paid, Status: &status}

	err := SavePayment(db, payment, doc.Id, patch)
	require.Error(t, err)

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.Equal(t, int64(0), count, "failed document update must roll the payment back")
}
