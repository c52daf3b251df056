package config

import (
	"fmt"
	"log"

	"kehadiran-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB membuka koneksi sesuai DB_DRIVER lalu menjalankan AutoMigrate.
func ConnectDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql", "":
		dialector = mysql.Open(cfg.DBDSN)
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("DB_DRIVER tidak dikenali: %s", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke database: %w", err)
	}

	log.Println("Koneksi Database Berhasil!")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	DB = db
	return db, nil
}

// Migrate membuat tabel otomatis berdasarkan struct di folder model
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.LocalBlob{}, &model.HariLibur{}); err != nil {
		return fmt.Errorf("gagal migrasi: %w", err)
	}
	return nil
}
