package database

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/levelminds/levelminds-backend/internal/models"
)

// Connect opens the postgres database and runs migrations.
// TranslateError is on so unique-index violations come back as
// gorm.ErrDuplicatedKey; the uniqueness races (double application, double
// assessment) are settled by those indexes, not by pre-checks.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Info("database connection established, running migrations")
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates/updates the schema. Exported so tests can run the same
// migrations against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.School{},
		&models.Student{},
		&models.CoreSkill{},
		&models.Category{},
		&models.StudentCoreSkillAssessment{},
		&models.Job{},
		&models.Application{},
		&models.Interview{},
		&models.Notification{},
	)
}
