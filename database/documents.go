package database

import (
	"fmt"
	"strings"

	"invoicehub-backend/models"
	"invoicehub-backend/reminders"
	"invoicehub-backend/utils"

	"gorm.io/gorm"
)

// DocumentStore implements reminders.Store on top of GORM.
type DocumentStore struct {
	DB *gorm.DB
}

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{DB: db}
}

func (s *DocumentStore) ListDocuments() ([]models.Document, error) {
	var docs []models.Document
	if err := s.DB.Preload("Items").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// PatchDocument applies a partial update built from the explicit patch
// struct. A failure that looks like the reminder column being absent from
// the deployed schema is surfaced as reminders.ErrReminderColumnMissing so
// the batch can degrade instead of aborting.
func (s *DocumentStore) PatchDocument(id string, patch models.DocumentPatch) error {
	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return nil
	}

	err := s.DB.Model(&models.Document{}).Where("id = ?", id).Updates(updates).Error
	if err == nil {
		return nil
	}

	_, touchesReminder := updates["last_reminder_sent"]
	if touchesReminder && isMissingColumn(err) {
		return fmt.Errorf("%w: %v", reminders.ErrReminderColumnMissing, err)
	}
	return err
}

// isMissingColumn matches the Postgres undefined-column failure shape.
func isMissingColumn(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "column") &&
		(strings.Contains(msg, "does not exist") || strings.Contains(msg, "undefined") || strings.Contains(msg, "schema cache"))
}

// ReminderCounterStore implements reminders.CounterStore with the day-keyed
// table. A new day simply reads zero; stale rows are never consulted again.
type ReminderCounterStore struct {
	DB *gorm.DB
}

func NewReminderCounterStore(db *gorm.DB) *ReminderCounterStore {
	return &ReminderCounterStore{DB: db}
}

func (s *ReminderCounterStore) DailyCount(day string) (int, error) {
	var row models.ReminderCounter
	err := s.DB.Where("day = ?", day).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Count, nil
}

func (s *ReminderCounterStore) Increment(day string) error {
	var row models.ReminderCounter
	err := s.DB.Where("day = ?", day).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return s.DB.Create(&models.ReminderCounter{Day: day, Count: 1}).Error
	}
	if err != nil {
		return err
	}
	return s.DB.Model(&row).Update("count", row.Count+1).Error
}
