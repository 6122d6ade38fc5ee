package database

import (
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"

	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB, log *logger.Logger, models ...any) error {
	log.Info("Running migrations for tables... ")

	if err := db.AutoMigrate(models...); err != nil {
		log.Error(err, "Migrating database failed")
		return err
	}

	log.Info("All tables created (or already exist).")
	return nil
}
