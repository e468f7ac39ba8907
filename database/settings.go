package database

import (
	"invoicehub-backend/models"
)

// LoadSettings fetches the singleton settings row. Always row 1; SeedSettings
// guarantees it exists.
func LoadSettings() (*models.AppSettings, error) {
	var settings models.AppSettings
	if err := DB.First(&settings, 1).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings replaces the whole settings object. There are no partial
// updates: callers merge their changes into the full struct first.
func SaveSettings(settings *models.AppSettings) error {
	settings.ID = 1
	return DB.Save(settings).Error
}
