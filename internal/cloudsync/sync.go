package cloudsync

import (
	"context"
	"log"
	"sync"
	"time"

	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/security"
	"kehadiran-backend/internal/store"
)

// Result adalah hasil satu putaran sinkronisasi. OK=false berarti feed tidak terbaca
// dan store tidak disentuh.
type Result struct {
	OK    bool `json:"success"`
	Count int  `json:"count"`
}

type Options struct {
	AttendanceURL string
	RosterURL     string
	Format        string
	Delimiter     string
	BcryptCost    int
	SuperAdmin    string
	Location      *time.Location
}

// Syncer menarik snapshot feed cloud lalu menggabungkannya ke store lokal.
type Syncer struct {
	transport Transport
	records   *store.RecordStore
	roster    *store.RosterStore
	opts      Options
	now       func() time.Time

	attendanceMu sync.Mutex
	rosterMu     sync.Mutex
}

func NewSyncer(transport Transport, records *store.RecordStore, roster *store.RosterStore, opts Options) *Syncer {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Syncer{
		transport: transport,
		records:   records,
		roster:    roster,
		opts:      opts,
		now:       time.Now,
	}
}

func (s *Syncer) fetchRows(ctx context.Context, url string) ([][]string, bool) {
	if url == "" {
		return nil, false
	}
	body, err := s.transport.Fetch(ctx, url)
	if err != nil {
		log.Printf("[SYNC] Gagal mengambil feed: %v", err)
		return nil, false
	}
	rows, err := DecodeTable(body, s.opts.Format, s.opts.Delimiter)
	if err != nil {
		log.Printf("[SYNC] Gagal membaca feed: %v", err)
		return nil, false
	}
	return rows, true
}

// SyncAttendance mengganti semua record cloud dengan isi feed kehadiran terbaru.
func (s *Syncer) SyncAttendance(ctx context.Context) Result {
	s.attendanceMu.Lock()
	defer s.attendanceMu.Unlock()

	rows, ok := s.fetchRows(ctx, s.opts.AttendanceURL)
	if !ok {
		return Result{}
	}
	fresh := ParseAttendanceRows(rows, s.now().In(s.opts.Location))
	if len(fresh) == 0 {
		return Result{OK: true}
	}
	n, err := s.records.ReplaceCloud(fresh)
	if err != nil {
		log.Printf("[SYNC] Gagal menyimpan kehadiran cloud: %v", err)
		return Result{}
	}
	return Result{OK: true, Count: n}
}

// SyncRoster menggabungkan feed pegawai ke daftar lokal tanpa menghapus pegawai.
func (s *Syncer) SyncRoster(ctx context.Context) Result {
	s.rosterMu.Lock()
	defer s.rosterMu.Unlock()

	rows, ok := s.fetchRows(ctx, s.opts.RosterURL)
	if !ok {
		return Result{}
	}
	cloudRows := ParseRosterRows(rows)
	if len(cloudRows) == 0 {
		return Result{OK: true}
	}

	for i := range cloudRows {
		if err := s.hashPassword(&cloudRows[i]); err != nil {
			log.Printf("[SYNC] Gagal hash password %s: %v", cloudRows[i].Email, err)
			return Result{}
		}
		if s.opts.SuperAdmin != "" && cloudRows[i].Email == store.NormalizeEmail(s.opts.SuperAdmin) {
			cloudRows[i].IsAdmin = true
		}
	}

	n, err := s.roster.MergeCloud(cloudRows)
	if err != nil {
		log.Printf("[SYNC] Gagal menyimpan pegawai cloud: %v", err)
		return Result{}
	}
	return Result{OK: true, Count: n}
}

// hashPassword mengganti password plaintext dari feed dengan hash. Hash lama dipakai
// lagi jika password belum berubah.
func (s *Syncer) hashPassword(p *model.Pegawai) error {
	existing, found, err := s.roster.Get(p.Email)
	if err != nil {
		return err
	}
	if found && security.VerifyPassword(p.Password, existing.Password) {
		p.Password = existing.Password
		return nil
	}
	hashed, err := security.HashPassword(p.Password, s.opts.BcryptCost)
	if err != nil {
		return err
	}
	p.Password = hashed
	return nil
}

// SyncAll dipakai saat login dan trigger manual admin: pegawai dulu, lalu kehadiran.
func (s *Syncer) SyncAll(ctx context.Context) (roster, attendance Result) {
	roster = s.SyncRoster(ctx)
	attendance = s.SyncAttendance(ctx)
	return roster, attendance
}
