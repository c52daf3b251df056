package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"kehadiran-backend/internal/repository"
	"kehadiran-backend/internal/schedule"
	"kehadiran-backend/internal/store"

	"github.com/robfig/cron/v3"
)

const LateMessage = "SILA CLOCK IN SEKARANG, ANDA TELAH LEWAT"

type marker struct {
	email string
	date  string
}

type session struct {
	entry cron.EntryID
	until time.Time
}

// LateMonitor mengingatkan pegawai yang sudah login tetapi belum clock in
// setelah jam masuknya lewat. Paling banyak satu peringatan per pegawai per hari.
type LateMonitor struct {
	records  *store.RecordStore
	roster   *store.RosterStore
	settings *store.SettingsStore
	holidays repository.HariLiburRepository
	resolver schedule.Resolver
	primary  Notifier
	fallback Notifier
	loc      *time.Location
	now      func() time.Time

	spec string
	cron *cron.Cron

	checkMu  sync.Mutex
	mu       sync.Mutex
	notified map[marker]struct{}
	sessions map[string]session
}

type Options struct {
	Records  *store.RecordStore
	Roster   *store.RosterStore
	Settings *store.SettingsStore
	Holidays repository.HariLiburRepository
	Resolver schedule.Resolver
	Primary  Notifier
	Fallback Notifier
	Location *time.Location
	Spec     string
}

func NewLateMonitor(opts Options) *LateMonitor {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Fallback == nil {
		opts.Fallback = NewInbox()
	}
	if opts.Spec == "" {
		opts.Spec = "@every 1m"
	}
	return &LateMonitor{
		records:  opts.Records,
		roster:   opts.Roster,
		settings: opts.Settings,
		holidays: opts.Holidays,
		resolver: opts.Resolver,
		primary:  opts.Primary,
		fallback: opts.Fallback,
		loc:      opts.Location,
		now:      time.Now,
		spec:     opts.Spec,
		cron:     cron.New(cron.WithLocation(opts.Location)),
		notified: make(map[marker]struct{}),
		sessions: make(map[string]session),
	}
}

func (m *LateMonitor) Start() {
	m.cron.Start()
}

// Stop menghentikan cron dan membuang semua sesi.
func (m *LateMonitor) Stop() {
	<-m.cron.Stop().Done()
	m.mu.Lock()
	defer m.mu.Unlock()
	for email, s := range m.sessions {
		m.cron.Remove(s.entry)
		delete(m.sessions, email)
	}
}

// StartSession memasang pemeriksaan berkala untuk email sampai until, lalu memeriksa sekali.
func (m *LateMonitor) StartSession(email string, until time.Time) {
	m.mu.Lock()
	if old, ok := m.sessions[email]; ok {
		m.cron.Remove(old.entry)
	}
	id, err := m.cron.AddFunc(m.spec, func() { m.tick(email) })
	if err != nil {
		m.mu.Unlock()
		log.Printf("[MONITOR] Gagal menjadwalkan %s: %v", email, err)
		return
	}
	m.sessions[email] = session{entry: id, until: until}
	m.mu.Unlock()

	go m.tick(email)
}

func (m *LateMonitor) StopSession(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[email]; ok {
		m.cron.Remove(s.entry)
		delete(m.sessions, email)
	}
}

func (m *LateMonitor) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *LateMonitor) tick(email string) {
	m.mu.Lock()
	s, ok := m.sessions[email]
	m.mu.Unlock()
	if !ok {
		return
	}
	if m.now().After(s.until) {
		m.StopSession(email)
		return
	}
	if _, err := m.Check(context.Background(), email); err != nil {
		log.Printf("[MONITOR] Pemeriksaan %s gagal: %v", email, err)
	}
}

// pruneMarkers membuang penanda hari-hari sebelumnya.
func (m *LateMonitor) pruneMarkers(today string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.notified {
		if k.date != today {
			delete(m.notified, k)
		}
	}
}

func (m *LateMonitor) isNotified(k marker) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.notified[k]
	return ok
}

// Check menjalankan satu pemeriksaan. true berarti peringatan baru saja dikirim.
func (m *LateMonitor) Check(ctx context.Context, email string) (bool, error) {
	m.checkMu.Lock()
	defer m.checkMu.Unlock()

	now := m.now().In(m.loc)
	date := now.Format(schedule.DateLayout)
	key := marker{email: store.NormalizeEmail(email), date: date}
	m.pruneMarkers(date)

	// 1. Hujung minggu
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false, nil
	}

	// 2. Mod cuti sekolah
	settings, err := m.settings.Get()
	if err != nil {
		return false, err
	}
	if settings.ModCutiSekolah {
		return false, nil
	}

	// 3. Hari libur bertanggal
	if m.holidays != nil {
		holiday, err := m.holidays.IsHoliday(date)
		if err != nil {
			return false, err
		}
		if holiday {
			return false, nil
		}
	}

	// 4. Sudah diingatkan hari ini
	if m.isNotified(key) {
		return false, nil
	}

	// 5. Sudah ada record apa pun hari ini
	_, found, err := m.records.ByOwnerAndDate(key.email, date)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}

	p, found, err := m.roster.Get(key.email)
	if err != nil || !found {
		return false, err
	}
	late, err := schedule.IsLate(now, m.resolver.ClockIn(p, settings))
	if err != nil || !late {
		return false, err
	}

	if err := m.deliver(ctx, key.email); err != nil {
		return false, err
	}

	m.mu.Lock()
	m.notified[key] = struct{}{}
	m.mu.Unlock()
	log.Printf("[MONITOR] Peringatan lewat dihantar ke %s", key.email)
	return true, nil
}

func (m *LateMonitor) deliver(ctx context.Context, email string) error {
	if m.primary != nil && m.primary.Available() {
		err := m.primary.Notify(ctx, email, LateMessage)
		if err == nil {
			return nil
		}
		log.Printf("[MONITOR] Notifikasi utama gagal untuk %s: %v", email, err)
	}
	return m.fallback.Notify(ctx, email, LateMessage)
}
