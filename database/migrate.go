package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"healthrecord/internal/models"
)

func MigrateDatabase(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.Vitals{},
	)
	if err != nil {
		log.Error("database migration failed", zap.Error(err))
		return err
	}

	log.Info("database migrations completed")
	return nil
}
