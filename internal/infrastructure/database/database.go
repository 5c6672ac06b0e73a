package database

import (
	"devintel-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open opens a GORM DB from DSN (Supabase/Postgres pooler URL).
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers (e.g. PgBouncer, Supabase, Render).
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
}

// AutoMigrate runs migrations for the serving-store tables: the three
// current-state tables, the append-only history log, and access logs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ProjectMaster{},
		&models.UnitDetail{},
		&models.HouseType{},
		&models.HistoryLog{},
		&models.AccessLog{},
	)
}
