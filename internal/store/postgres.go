package store

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/geomark/geomark/internal/document"
	"github.com/geomark/geomark/internal/project"
	"github.com/geomark/geomark/pkg/logger"
)

// Connect opens the relational store and migrates the two tables. Retries
// with doubling backoff to tolerate startup races against the database
// container. TranslateError turns unique-index violations into
// gorm.ErrDuplicatedKey, which the document repository relies on.
func Connect(url string, timeout time.Duration) (*gorm.DB, error) {
	const maxAttempts = 5
	backoff := time.Second

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(url), &gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to database: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if err != nil {
		return nil, fmt.Errorf("database connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetConnMaxIdleTime(timeout)

	if err := db.AutoMigrate(&document.Document{}, &project.Project{}); err != nil {
		return nil, fmt.Errorf("database migrate: %w", err)
	}
	return db, nil
}
