package database

import (
	"fmt"
	"log"
	"os"

	"invoicehub-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=5432 sslmode=disable TimeZone=Europe/Dublin",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
}

func AutoMigrate() {
	if err := Migrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}

// SeedSettings makes sure the singleton settings row exists with the fixed
// EUR/23% defaults. Idempotent.
func SeedSettings() error {
	var count int64
	if err := DB.Model(&models.AppSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return DB.Create(&models.AppSettings{ID: 1, TaxRate: 23}).Error
}
