package database

import (
	"fmt"

	"invoicehub-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Indexes (payments, line items, documents)
// - Basic CHECK constraints
// - Idempotency keys table + unique index
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Product{},
			&models.Customer{},
			&models.Document{},
			&models.LineItem{},
			&models.Payment{},
			&models.AppSettings{},
			&models.ReminderCounter{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE products    ALTER COLUMN unit_price  TYPE numeric(12,2)`,
			`ALTER TABLE documents   ALTER COLUMN subtotal    TYPE numeric(12,2)`,
			`ALTER TABLE documents   ALTER COLUMN tax_amount  TYPE numeric(12,2)`,
			`ALTER TABLE documents   ALTER COLUMN total       TYPE numeric(12,2)`,
			`ALTER TABLE documents   ALTER COLUMN amount_paid TYPE numeric(12,2)`,
			`ALTER TABLE documents   ALTER COLUMN balance_due TYPE numeric(12,2)`,
			`ALTER TABLE line_items  ALTER COLUMN unit_price  TYPE numeric(12,2)`,
			`ALTER TABLE line_items  ALTER COLUMN total       TYPE numeric(12,2)`,
			`ALTER TABLE line_items  ALTER COLUMN quantity    TYPE numeric(14,6)`,
			`ALTER TABLE payments    ALTER COLUMN amount      TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_payments_document_paid_at ON payments (document_id, paid_at)`,
			`CREATE INDEX IF NOT EXISTS idx_line_items_document ON line_items (document_id)`,
			`CREATE INDEX IF NOT EXISTS idx_documents_customer ON documents (customer_id)`,
			`CREATE INDEX IF NOT EXISTS idx_documents_due_date ON documents (due_date)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_reminder_counters_day ON reminder_counters (day)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Non-negative product price
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'products'::regclass
					  AND conname  = 'chk_products_unit_price_nonneg'
				) THEN
					ALTER TABLE products
					ADD CONSTRAINT chk_products_unit_price_nonneg
					CHECK (unit_price >= 0);
				END IF;
			END $$;`,
			// Payments.amount > 0
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payments'::regclass
					  AND conname  = 'chk_payments_amount_positive'
				) THEN
					ALTER TABLE payments
					ADD CONSTRAINT chk_payments_amount_positive
					CHECK (amount > 0);
				END IF;
			END $$;`,
			// amount_paid never exceeds total (stored field is clamped)
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'documents'::regclass
					  AND conname  = 'chk_documents_paid_lte_total'
				) THEN
					ALTER TABLE documents
					ADD CONSTRAINT chk_documents_paid_lte_total
					CHECK (amount_paid <= total);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
