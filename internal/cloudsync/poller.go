package cloudsync

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// Poller menjadwalkan refresh feed kehadiran dan pegawai.
type Poller struct {
	syncer         *Syncer
	cron           *cron.Cron
	attendanceSpec string
	rosterSpec     string
}

func NewPoller(syncer *Syncer, attendanceSpec, rosterSpec string) *Poller {
	return &Poller{
		syncer:         syncer,
		cron:           cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		attendanceSpec: attendanceSpec,
		rosterSpec:     rosterSpec,
	}
}

// Start mendaftarkan kedua job, menjalankan masing-masing sekali, lalu menyalakan cron.
func (p *Poller) Start() error {
	attendance := func() {
		if res := p.syncer.SyncAttendance(context.Background()); res.OK && res.Count > 0 {
			log.Printf("[SYNC] %d kehadiran cloud dimuat", res.Count)
		}
	}
	roster := func() {
		if res := p.syncer.SyncRoster(context.Background()); res.OK && res.Count > 0 {
			log.Printf("[SYNC] %d pegawai cloud dimuat", res.Count)
		}
	}

	if _, err := p.cron.AddFunc(p.attendanceSpec, attendance); err != nil {
		return err
	}
	if _, err := p.cron.AddFunc(p.rosterSpec, roster); err != nil {
		return err
	}

	go func() {
		roster()
		attendance()
	}()
	p.cron.Start()
	log.Printf("[SYNC] poller started attendance=%q roster=%q", p.attendanceSpec, p.rosterSpec)
	return nil
}

func (p *Poller) Stop() {
	<-p.cron.Stop().Done()
}
