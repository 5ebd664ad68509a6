package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Yashwin-Sudarshan/BookingWebsiteProject/internal/models"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.UserAccount{},
		&models.Employee{},
		&models.Product{},
		&models.Schedule{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	if err := InstallConstraints(db); err != nil {
		log.Fatalf("failed to install booking constraints: %v", err)
	}

	return db
}

// InstallConstraints adds the exclusion constraint that rejects two blocking
// bookings with overlapping intervals for the same employee. tsrange is
// half-open by default, so back-to-back bookings do not collide.
func InstallConstraints(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}
	return db.Exec(`
		DO $$ BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
				ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
					EXCLUDE USING gist (employee_id WITH =, tsrange(start_time, end_time) WITH &&)
					WHERE (status IN ('pending', 'confirmed'));
			END IF;
		END $$
	`).Error
}
