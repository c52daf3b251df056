package main

import (
	"fmt"
	"log"
	"time"

	"kehadiran-backend/config"
	"kehadiran-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🌱 Memulai Database Seeding...")

	// Load .env manual karena ini script terpisah
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}

	cfg := config.Load()
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("🚀 Menjalankan SeedAll...")
	tahun := config.GetEnvAsInt("SEED_YEAR", time.Now().In(cfg.Timezone).Year())
	if err := database.SeedAll(db, database.OptionsFromEnv(cfg, tahun)); err != nil {
		log.Fatalf("Seeding gagal: %v", err)
	}

	fmt.Println("✅ Seeding Selesai!")
}
