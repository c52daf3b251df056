package database

import (
	"fmt"
	"testing"

	"kehadiran-backend/config"
	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/repository"
	"kehadiran-backend/internal/security"
	"kehadiran-backend/internal/store"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedAllIsIdempotent(t *testing.T) {
	db := setupTestDB(t, t.Name())
	opts := SeedOptions{
		SuperAdmin:   " boss@sekolah.my",
		Password:     "pertama",
		BcryptCost:   bcrypt.MinCost,
		Tahun:        2026,
		SchoolRadius: 150,
	}
	if err := SeedAll(db, opts); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	blobs := repository.NewBlobRepository(db)
	settings := store.NewSettingsStore(blobs)
	p, _ := settings.Get()
	if p.RadiusMeter != 150 || p.TargetLat != model.DefaultPengaturan().TargetLat {
		t.Fatalf("unexpected seeded settings %+v", p)
	}
	// perubahan admin tidak boleh ditimpa seed berikutnya
	p.RadiusMeter = 500
	if err := settings.Save(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	opts.Password = "kedua"
	if err := SeedAll(db, opts); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	if p, _ := settings.Get(); p.RadiusMeter != 500 {
		t.Fatalf("settings overwritten by reseed: %v", p.RadiusMeter)
	}

	roster, _ := store.NewRosterStore(blobs).All()
	if len(roster) != 1 || roster[0].Email != "boss@sekolah.my" || !roster[0].IsAdmin {
		t.Fatalf("unexpected roster %+v", roster)
	}
	if !security.VerifyPassword("kedua", roster[0].Password) {
		t.Fatalf("admin password should follow the latest seed")
	}

	var count int64
	db.Model(&model.HariLibur{}).Count(&count)
	if int(count) != len(cutiUmumTetap) {
		t.Fatalf("expected %d holidays, got %d", len(cutiUmumTetap), count)
	}
	ok, err := repository.NewHariLiburRepository(db).IsHoliday("2026-08-31")
	if err != nil || !ok {
		t.Fatalf("expected 2026-08-31 to be a holiday")
	}
}
