package repositories

import (
	"fmt"

	"airmetr/models"

	"gorm.io/gorm"
)

const overlapConstraint = "reservations_no_overlap"

// Migrate creates or updates the schema. On PostgreSQL it also installs the
// exclusion constraint that rejects two reservations of one property sharing
// a calendar date.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.PType{},
		&models.Amenity{},
		&models.Property{},
		&models.PropertyImage{},
		&models.PropertyAmenity{},
		&models.Reservation{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	var count int64
	if err := db.Raw("SELECT COUNT(*) FROM pg_constraint WHERE conname = ?", overlapConstraint).Scan(&count).Error; err != nil {
		return fmt.Errorf("failed to inspect constraints: %w", err)
	}
	if count > 0 {
		return nil
	}

	stmts := []string{
		"CREATE EXTENSION IF NOT EXISTS btree_gist",
		"ALTER TABLE reservations ADD CONSTRAINT reservations_valid_range CHECK (end_date > start_date)",
		"ALTER TABLE reservations ADD CONSTRAINT " + overlapConstraint +
			" EXCLUDE USING gist (property_id WITH =, daterange(start_date, end_date, '[]') WITH &&)",
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range stmts {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to install reservation constraints: %w", err)
			}
		}
		return nil
	})
}
