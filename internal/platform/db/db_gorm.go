// Package db opens the application's GORM database connection.
package db

import (
	"log"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "timetrack_backend/internal/feature/auth/domain/entity"
	categoryentity "timetrack_backend/internal/feature/category/domain/entity"
	organizationentity "timetrack_backend/internal/feature/organization/domain/entity"
	permissionentity "timetrack_backend/internal/feature/permission/domain/entity"
	timeentryentity "timetrack_backend/internal/feature/timeentry/domain/entity"
	"timetrack_backend/internal/platform/config"
)

// OpenDB connects to Postgres using the configured DSN, retrying for up to
// 60 seconds so the service survives a database that starts slower than it
// does. It fatals when the deadline passes.
func OpenDB(cfg *config.Config) *gorm.DB {
	dsn := cfg.DSN()

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(
			&organizationentity.Organization{},
			&authentity.User{},
			&permissionentity.Permission{},
			&categoryentity.Category{},
			&timeentryentity.TimeEntry{},
			&authentity.VerificationCode{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
