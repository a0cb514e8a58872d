package repository

import "gorm.io/gorm"

// AutoMigrate creates the schema for all persistence models. On PostgreSQL
// it additionally installs the exclusion constraint that makes the overlap
// invariant hold even if two transactions pass the in-transaction check
// concurrently; its violation is translated to the booking Conflict error
// by the booking service.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&userRoleModel{},
		&propertyModel{},
		&bookingModel{},
		&reviewModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	return db.Exec(`
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings
			ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (
				property_id WITH =,
				daterange(start_date, end_date, '[)') WITH &&
			)
			WHERE (status <> 'cancelled');
	END IF;
END
$$;
`).Error
}
