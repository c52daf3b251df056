package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Nilai boolean tidak valid untuk %s: %s", key, valueStr)
		return fallback
	}
	return value
}

func GetEnvAsFloat(key string, fallback float64) float64 {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

type Config struct {
	Port     string
	Timezone *time.Location

	DBDriver string
	DBDSN    string

	JWTSecret   string
	JWTTTL      time.Duration
	BcryptCost  int
	SuperAdmin  string
	AdminPasswd string

	// Google Sheet (CSV/XLSX publish) dan Apps Script web app
	AttendanceFeedURL string
	RosterFeedURL     string
	WriteURL          string
	FeedFormat        string
	FeedDelimiter     string

	SyncInterval      string
	RosterInterval    string
	LateCheckInterval string

	ClockInFallback  string
	ClockOutFallback string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
}

// Load membaca semua konfigurasi dari environment (setelah .env dimuat oleh main).
func Load() Config {
	tzName := GetEnv("APP_TIMEZONE", "Asia/Kuching")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("Timezone %s tidak dikenali, memakai Local", tzName)
		loc = time.Local
	}

	return Config{
		Port:     GetEnv("APP_PORT", "3000"),
		Timezone: loc,

		DBDriver: strings.ToLower(GetEnv("DB_DRIVER", "mysql")),
		// Jika pakai XAMPP default, user adalah "root" dan password kosong ""
		DBDSN: GetEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/kehadiran_db?charset=utf8mb4&parseTime=True&loc=Local"),

		JWTSecret:   GetEnv("JWT_SECRET", "rahasia_negara"),
		JWTTTL:      time.Duration(GetEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour,
		BcryptCost:  GetEnvAsInt("BCRYPT_COST", 10),
		SuperAdmin:  GetEnv("SUPER_ADMIN_EMAIL", ""),
		AdminPasswd: GetEnv("ADMIN_PASSWORD", ""),

		AttendanceFeedURL: GetEnv("CLOUD_ATTENDANCE_URL", ""),
		RosterFeedURL:     GetEnv("CLOUD_ROSTER_URL", ""),
		WriteURL:          GetEnv("CLOUD_WRITE_URL", ""),
		FeedFormat:        strings.ToLower(GetEnv("CLOUD_FEED_FORMAT", "csv")),
		FeedDelimiter:     GetEnv("CLOUD_FEED_DELIMITER", ","),

		SyncInterval:      GetEnv("CLOUD_SYNC_INTERVAL", "@every 20s"),
		RosterInterval:    GetEnv("CLOUD_ROSTER_INTERVAL", "@every 5m"),
		LateCheckInterval: GetEnv("LATE_CHECK_INTERVAL", "@every 1m"),

		ClockInFallback:  GetEnv("CLOCK_IN_FALLBACK", "07:30"),
		ClockOutFallback: GetEnv("CLOCK_OUT_FALLBACK", "16:30"),

		SMTPHost:     GetEnv("SMTP_HOST", ""),
		SMTPPort:     GetEnvAsInt("SMTP_PORT", 587),
		SMTPUser:     GetEnv("SMTP_USER", ""),
		SMTPPassword: GetEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     GetEnv("SMTP_FROM", ""),
	}
}
