package database

import (
	"fmt"
	"log"
	"strconv"

	"kehadiran-backend/config"
	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/repository"
	"kehadiran-backend/internal/security"
	"kehadiran-backend/internal/store"

	"gorm.io/gorm"
)

// Cuti umum tetap; tarikh cuti perayaan didaftarkan admin setiap tahun.
var cutiUmumTetap = []struct {
	bulanHari  string
	keterangan string
}{
	{"01-01", "Tahun Baru"},
	{"05-01", "Hari Pekerja"},
	{"05-30", "Pesta Kaamatan"},
	{"05-31", "Pesta Kaamatan (Hari Kedua)"},
	{"08-31", "Hari Kebangsaan"},
	{"09-16", "Hari Malaysia"},
	{"12-25", "Hari Krismas"},
}

type SeedOptions struct {
	SuperAdmin string
	Password   string
	BcryptCost int
	Tahun      int

	// Titik sekolah; nol berarti memakai default
	SchoolLat    float64
	SchoolLon    float64
	SchoolRadius float64
}

// OptionsFromEnv membaca SeedOptions dari environment.
func OptionsFromEnv(cfg config.Config, tahun int) SeedOptions {
	return SeedOptions{
		SuperAdmin:   cfg.SuperAdmin,
		Password:     cfg.AdminPasswd,
		BcryptCost:   cfg.BcryptCost,
		Tahun:        tahun,
		SchoolLat:    config.GetEnvAsFloat("SCHOOL_LAT", 0),
		SchoolLon:    config.GetEnvAsFloat("SCHOOL_LON", 0),
		SchoolRadius: config.GetEnvAsFloat("SCHOOL_RADIUS", 0),
	}
}

// SeedAll aman dijalankan berulang: data yang sudah ada tidak ditimpa,
// kecuali password super admin yang selalu diselaraskan dengan ADMIN_PASSWORD.
func SeedAll(db *gorm.DB, opts SeedOptions) error {
	blobs := repository.NewBlobRepository(db)

	// 1. Pengaturan default
	if _, found, err := blobs.Get(model.BlobPengaturan); err != nil {
		return err
	} else if !found {
		p := model.DefaultPengaturan()
		if opts.SchoolLat != 0 && opts.SchoolLon != 0 {
			p.TargetLat, p.TargetLon = opts.SchoolLat, opts.SchoolLon
		}
		if opts.SchoolRadius > 0 {
			p.RadiusMeter = opts.SchoolRadius
		}
		if err := store.NewSettingsStore(blobs).Save(p); err != nil {
			return fmt.Errorf("seed pengaturan: %w", err)
		}
		log.Println("Seeding Pengaturan berhasil!")
	}

	// 2. Akun super admin
	if opts.SuperAdmin != "" && opts.Password != "" {
		if err := seedSuperAdmin(store.NewRosterStore(blobs), opts); err != nil {
			return err
		}
	}

	// 3. Cuti umum tetap
	if opts.Tahun > 0 {
		holidays := repository.NewHariLiburRepository(db)
		for _, c := range cutiUmumTetap {
			libur := model.HariLibur{Tanggal: fmt.Sprintf("%d-%s", opts.Tahun, c.bulanHari), Keterangan: c.keterangan}
			if err := db.Where(model.HariLibur{Tanggal: libur.Tanggal}).FirstOrCreate(&libur).Error; err != nil {
				return fmt.Errorf("seed hari libur %s: %w", libur.Tanggal, err)
			}
		}
		list, err := holidays.GetAll(strconv.Itoa(opts.Tahun))
		if err != nil {
			return err
		}
		log.Printf("Seeding Hari Libur %d berhasil (%d tanggal)", opts.Tahun, len(list))
	}
	return nil
}

func seedSuperAdmin(roster *store.RosterStore, opts SeedOptions) error {
	hashed, err := security.HashPassword(opts.Password, opts.BcryptCost)
	if err != nil {
		return err
	}

	_, found, err := roster.Get(opts.SuperAdmin)
	if err != nil {
		return err
	}
	if found {
		// Paksa update password agar selalu sinkron dengan ADMIN_PASSWORD
		_, err = roster.Update(opts.SuperAdmin, func(p *model.Pegawai) error {
			p.Password = hashed
			p.IsAdmin = true
			return nil
		})
		return err
	}

	_, err = roster.Insert(model.Pegawai{
		Email:    opts.SuperAdmin,
		Nama:     "PENTADBIR SISTEM",
		Jabatan:  "PENTADBIR",
		Password: hashed,
		IsAdmin:  true,
	})
	if err == nil {
		log.Println("Seeding Admin berhasil!")
	}
	return err
}
