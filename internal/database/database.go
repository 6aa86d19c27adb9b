// Package database owns the gorm connection and schema migration.
package database

import (
	"fmt"
	"time"

	"github.com/alwasl/core/internal/config"
	"github.com/alwasl/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens a MySQL connection pool.
func Connect(cfg config.Database, dev bool) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if dev {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate applies the schema for every model. It is dialector agnostic so
// tests can run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
		&models.ProfessionalProfile{},
		&models.UserSession{},
		&models.ForumCategoryModel{},
		&models.ForumThreadModel{},
		&models.ForumReplyModel{},
		&models.ForumBanModel{},
		&models.ArticleModel{},
		&models.EventModel{},
		&models.NewsletterModel{},
	)
}
