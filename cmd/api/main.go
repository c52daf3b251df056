package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"kehadiran-backend/config"
	"kehadiran-backend/internal/cloudsync"
	"kehadiran-backend/internal/monitor"
	"kehadiran-backend/internal/repository"
	"kehadiran-backend/internal/routes"
	"kehadiran-backend/internal/schedule"
	"kehadiran-backend/internal/security"
	"kehadiran-backend/internal/store"
	"kehadiran-backend/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("1. Memulai aplikasi... Mencoba load .env...")
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}
	cfg := config.Load()

	fmt.Println("2. Mencoba koneksi ke Database...")
	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("3. Database berhasil terhubung! Menyiapkan komponen...")

	blobs := repository.NewBlobRepository(db)
	holidays := repository.NewHariLiburRepository(db)
	records := store.NewRecordStore(blobs)
	roster := store.NewRosterStore(blobs)
	settings := store.NewSettingsStore(blobs)
	resolver := schedule.NewResolver(cfg.ClockInFallback, cfg.ClockOutFallback)

	transport := cloudsync.NewFiberTransport()
	pusher := cloudsync.NewPusher(transport, cfg.WriteURL)
	syncer := cloudsync.NewSyncer(transport, records, roster, cloudsync.Options{
		AttendanceURL: cfg.AttendanceFeedURL,
		RosterURL:     cfg.RosterFeedURL,
		Format:        cfg.FeedFormat,
		Delimiter:     cfg.FeedDelimiter,
		BcryptCost:    cfg.BcryptCost,
		SuperAdmin:    cfg.SuperAdmin,
		Location:      cfg.Timezone,
	})
	poller := cloudsync.NewPoller(syncer, cfg.SyncInterval, cfg.RosterInterval)

	inbox := monitor.NewInbox()
	lateMonitor := monitor.NewLateMonitor(monitor.Options{
		Records:  records,
		Roster:   roster,
		Settings: settings,
		Holidays: holidays,
		Resolver: resolver,
		Primary: monitor.NewEmailNotifier(monitor.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}),
		Fallback: inbox,
		Location: cfg.Timezone,
		Spec:     cfg.LateCheckInterval,
	})

	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	staff := usecase.NewStaffUsecase(roster, records, tokens, pusher, lateMonitor, syncer, usecase.StaffOptions{
		BcryptCost: cfg.BcryptCost,
		SuperAdmin: cfg.SuperAdmin,
		Location:   cfg.Timezone,
	})
	attendance := usecase.NewAttendanceUsecase(records, roster, settings, resolver, pusher, cfg.Timezone)

	app := routes.NewApp()
	routes.Setup(app, routes.Dependencies{
		Tokens:     tokens,
		Staff:      staff,
		Attendance: attendance,
		Dashboard:  usecase.NewDashboardUsecase(staff),
		Report:     usecase.NewReportUsecase(records),
		Settings:   settings,
		Holidays:   holidays,
		Syncer:     syncer,
		Inbox:      inbox,
		Location:   cfg.Timezone,
	})

	if err := poller.Start(); err != nil {
		log.Fatalf("Gagal menjadwalkan sinkronisasi cloud: %v", err)
	}
	lateMonitor.Start()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		fmt.Println("Mematikan server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	fmt.Printf("4. Server siap! Menunggu request di port :%s\n", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("Server berhenti: %v", err)
	}

	poller.Stop()
	lateMonitor.Stop()
	pusher.Wait()
}
