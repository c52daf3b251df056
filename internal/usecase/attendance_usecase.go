package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"kehadiran-backend/internal/cloudsync"
	"kehadiran-backend/internal/geofence"
	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/schedule"
	"kehadiran-backend/internal/store"
)

// Pusher dipenuhi oleh *cloudsync.Pusher.
type Pusher interface {
	Push(action cloudsync.Action, payload map[string]any)
}

type SubmitInput struct {
	Email  string
	Status model.Status

	Position *geofence.Position
	Alasan   string

	JenisLuar    model.OutstationType
	KategoriLuar string

	JenisCuti      string
	TanggalMulai   string
	TanggalSelesai string

	Dokumen   string
	Perangkat string
}

// Outcome.Created=false berarti record hari ini sudah ada dan dikembalikan apa adanya.
type Outcome struct {
	Record  model.Kehadiran `json:"record"`
	Created bool            `json:"created"`
}

// TodayView dipakai layar clock in: keadaan hari, jadwal, dan geofence.
type TodayView struct {
	DayView
	Tanggal        string  `json:"tanggal"`
	JamMasuk       string  `json:"jam_masuk"`
	JamKeluar      string  `json:"jam_keluar"`
	Lewat          bool    `json:"lewat"`
	ElapsedSeconds int64   `json:"elapsed_seconds"`
	TargetLat      float64 `json:"target_lat"`
	TargetLon      float64 `json:"target_lon"`
	RadiusMeter    float64 `json:"radius_meter"`

	JenisCuti           []string `json:"jenis_cuti"`
	JenisLuarRasmi      []string `json:"jenis_luar_rasmi"`
	JenisLuarTidakRasmi []string `json:"jenis_luar_tidak_rasmi"`
}

// Riwayat adalah record dengan penanda tampilan.
type Riwayat struct {
	model.Kehadiran
	Koordinat  string `json:"koordinat,omitempty"`
	Lewat      bool   `json:"lewat"`
	KeluarAwal bool   `json:"keluar_awal"`
}

type AttendanceUsecase struct {
	records  *store.RecordStore
	roster   *store.RosterStore
	settings *store.SettingsStore
	resolver schedule.Resolver
	pusher   Pusher
	loc      *time.Location
	now      func() time.Time
}

func NewAttendanceUsecase(records *store.RecordStore, roster *store.RosterStore, settings *store.SettingsStore,
	resolver schedule.Resolver, pusher Pusher, loc *time.Location) *AttendanceUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceUsecase{
		records:  records,
		roster:   roster,
		settings: settings,
		resolver: resolver,
		pusher:   pusher,
		loc:      loc,
		now:      time.Now,
	}
}

func (u *AttendanceUsecase) clock() time.Time {
	return u.now().In(u.loc)
}

func (u *AttendanceUsecase) pegawai(email string) (model.Pegawai, error) {
	p, found, err := u.roster.Get(email)
	if err != nil {
		return model.Pegawai{}, err
	}
	if !found {
		return model.Pegawai{}, ErrStaffNotFound
	}
	return p, nil
}

// Submit mencatat kehadiran hari ini. Jika sudah ada record untuk hari ini,
// record itu dikembalikan tanpa validasi ulang.
func (u *AttendanceUsecase) Submit(ctx context.Context, in SubmitInput) (Outcome, error) {
	now := u.clock()
	date := now.Format(schedule.DateLayout)

	// 1. Pegawai harus terdaftar
	p, err := u.pegawai(in.Email)
	if err != nil {
		return Outcome{}, err
	}

	// 2. Sudah ada record hari ini -> pakai yang ada
	existing, found, err := u.records.ByOwnerAndDate(p.Email, date)
	if err != nil {
		return Outcome{}, err
	}
	if found {
		return Outcome{Record: existing}, nil
	}

	settings, err := u.settings.Get()
	if err != nil {
		return Outcome{}, err
	}

	rec := model.Kehadiran{
		Email:       p.Email,
		Nama:        p.Nama,
		Tanggal:     date,
		Status:      in.Status,
		JamMasuk:    schedule.FormatClock(now),
		Dokumen:     in.Dokumen,
		Perangkat:   in.Perangkat,
		Asal:        model.OriginLocal,
		DikirimPada: now,
	}
	if in.Position != nil {
		lat, lon := in.Position.Latitude, in.Position.Longitude
		rec.Latitude, rec.Longitude = &lat, &lon
	}

	// 3. Validasi per status
	switch in.Status {
	case model.StatusWorking:
		if err := u.validateWorking(p, settings, in, now); err != nil {
			return Outcome{}, err
		}
		rec.Alasan = strings.TrimSpace(in.Alasan)
	case model.StatusOutstation:
		if !contains(settings.KosakataLuar(p.RoleKey(), in.JenisLuar), in.KategoriLuar) {
			return Outcome{}, ErrCategoryRequired
		}
		rec.JenisLuar = in.JenisLuar
		rec.KategoriLuar = in.KategoriLuar
		rec.Alasan = strings.TrimSpace(in.Alasan)
	case model.StatusLeave:
		if !contains(settings.KosakataCuti(p.RoleKey()), in.JenisCuti) {
			return Outcome{}, ErrLeaveTypeRequired
		}
		start, end, err := leaveRange(in.TanggalMulai, in.TanggalSelesai, date)
		if err != nil {
			return Outcome{}, err
		}
		rec.JenisCuti = in.JenisCuti
		rec.TanggalMulai, rec.TanggalSelesai = start, end
	default:
		return Outcome{}, ErrInvalidStatus
	}

	// 4. Simpan hanya jika belum ada (dua submit bersamaan tetap satu record)
	saved, created, err := u.records.AppendIfAbsent(rec)
	if err != nil {
		return Outcome{}, err
	}
	if created {
		u.pusher.Push(cloudsync.ActionClockIn, clockInPayload(saved))
	}
	return Outcome{Record: saved, Created: created}, nil
}

func (u *AttendanceUsecase) validateWorking(p model.Pegawai, s model.Pengaturan, in SubmitInput, now time.Time) error {
	center := geofence.Position{Latitude: s.TargetLat, Longitude: s.TargetLon}
	switch geofence.Evaluate(in.Position, center, s.RadiusMeter).Verdict {
	case geofence.Undetermined:
		return ErrPositionUnknown
	case geofence.Outside:
		return ErrOutsideGeofence
	}

	target := u.resolver.ClockIn(p, s)
	late, err := schedule.IsLate(now, target)
	if err != nil {
		log.Printf("[KEHADIRAN] Jam masuk %q untuk %s tidak terbaca: %v", target, p.Email, err)
		return nil
	}
	if late && strings.TrimSpace(in.Alasan) == "" {
		return ErrLateReasonRequired
	}
	return nil
}

func leaveRange(start, end, today string) (string, string, error) {
	if start == "" {
		start = today
	}
	if end == "" {
		end = start
	}
	s, errS := time.Parse(schedule.DateLayout, start)
	e, errE := time.Parse(schedule.DateLayout, end)
	if errS != nil || errE != nil || e.Before(s) {
		return "", "", ErrLeaveRangeInvalid
	}
	return start, end, nil
}

func contains(list []string, v string) bool {
	if v == "" {
		return false
	}
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// ClockOut menandai jam keluar pada record BEKERJA hari ini. Tidak ada cek geofence.
func (u *AttendanceUsecase) ClockOut(ctx context.Context, email string) (model.Kehadiran, error) {
	now := u.clock()
	date := now.Format(schedule.DateLayout)

	rec, found, err := u.records.ByOwnerAndDate(store.NormalizeEmail(email), date)
	if err != nil {
		return model.Kehadiran{}, err
	}
	if !found || rec.Status != model.StatusWorking || rec.JamKeluar != "" {
		return model.Kehadiran{}, ErrCannotClockOut
	}

	out := schedule.FormatClock(now)
	updated, err := u.records.Patch(rec.ID, model.KehadiranPatch{JamKeluar: &out})
	if err != nil {
		return model.Kehadiran{}, err
	}
	u.pusher.Push(cloudsync.ActionClockOut, map[string]any{
		"email":   updated.Email,
		"date":    updated.Tanggal,
		"timeIn":  updated.JamMasuk,
		"timeOut": updated.JamKeluar,
	})
	return updated, nil
}

func (u *AttendanceUsecase) Today(ctx context.Context, email string) (TodayView, error) {
	now := u.clock()
	date := now.Format(schedule.DateLayout)

	p, err := u.pegawai(email)
	if err != nil {
		return TodayView{}, err
	}
	settings, err := u.settings.Get()
	if err != nil {
		return TodayView{}, err
	}
	mine, err := u.records.ByOwner(p.Email)
	if err != nil {
		return TodayView{}, err
	}

	role := p.RoleKey()
	view := TodayView{
		DayView:             ProjectDay(mine, p.Email, date, now),
		Tanggal:             date,
		JamMasuk:            u.resolver.ClockIn(p, settings),
		JamKeluar:           u.resolver.ClockOut(p, settings),
		TargetLat:           settings.TargetLat,
		TargetLon:           settings.TargetLon,
		RadiusMeter:         settings.RadiusMeter,
		JenisCuti:           settings.KosakataCuti(role),
		JenisLuarRasmi:      settings.KosakataLuar(role, model.OutstationOfficial),
		JenisLuarTidakRasmi: settings.KosakataLuar(role, model.OutstationUnofficial),
	}
	view.Lewat, _ = schedule.IsLate(now, view.JamMasuk)
	view.ElapsedSeconds = int64(view.Elapsed / time.Second)
	return view, nil
}

// CheckLocation hanya mengevaluasi geofence, tanpa menulis apa pun.
func (u *AttendanceUsecase) CheckLocation(pos *geofence.Position) (geofence.Result, error) {
	s, err := u.settings.Get()
	if err != nil {
		return geofence.Result{}, err
	}
	center := geofence.Position{Latitude: s.TargetLat, Longitude: s.TargetLon}
	return geofence.Evaluate(pos, center, s.RadiusMeter), nil
}

// RiwayatFilter: field kosong berarti tidak disaring. Dari/Hingga inklusif (YYYY-MM-DD),
// Cari dicocokkan sebagai substring tanggal.
type RiwayatFilter struct {
	Status model.Status
	Dari   string
	Hingga string
	Cari   string
}

func (f RiwayatFilter) match(r Riwayat) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.Dari != "" && r.Tanggal < f.Dari {
		return false
	}
	if f.Hingga != "" && r.Tanggal > f.Hingga {
		return false
	}
	return f.Cari == "" || strings.Contains(r.Tanggal, f.Cari)
}

// Ringkasan dihitung dari seluruh riwayat, bukan hasil saringan.
type Ringkasan struct {
	Bekerja int `json:"bekerja"`
	Luar    int `json:"luar"`
	Cuti    int `json:"cuti"`
	Lewat   int `json:"lewat"`
}

type RiwayatPegawai struct {
	Ringkasan Ringkasan `json:"ringkasan"`
	Data      []Riwayat `json:"data"`
}

// History mengembalikan riwayat pegawai, satu record per tanggal, terbaru dulu.
func (u *AttendanceUsecase) History(ctx context.Context, email string, f RiwayatFilter) (RiwayatPegawai, error) {
	list, err := u.records.ByOwner(store.NormalizeEmail(email))
	if err != nil {
		return RiwayatPegawai{}, err
	}
	all, err := u.annotate(store.Deduplicate(list))
	if err != nil {
		return RiwayatPegawai{}, err
	}

	out := RiwayatPegawai{Data: make([]Riwayat, 0, len(all))}
	for _, r := range all {
		switch r.Status {
		case model.StatusWorking:
			out.Ringkasan.Bekerja++
			if r.Lewat {
				out.Ringkasan.Lewat++
			}
		case model.StatusOutstation:
			out.Ringkasan.Luar++
		case model.StatusLeave:
			out.Ringkasan.Cuti++
		}
		if f.match(r) {
			out.Data = append(out.Data, r)
		}
	}
	return out, nil
}

// AllHistory untuk admin: semua pegawai.
func (u *AttendanceUsecase) AllHistory(ctx context.Context) ([]Riwayat, error) {
	list, err := u.records.All()
	if err != nil {
		return nil, err
	}
	return u.annotate(store.Deduplicate(list))
}

func (u *AttendanceUsecase) annotate(list []model.Kehadiran) ([]Riwayat, error) {
	settings, err := u.settings.Get()
	if err != nil {
		return nil, err
	}
	staff, err := u.roster.All()
	if err != nil {
		return nil, err
	}
	byEmail := make(map[string]model.Pegawai, len(staff))
	for _, p := range staff {
		byEmail[p.Email] = p
	}

	out := make([]Riwayat, 0, len(list))
	for _, rec := range list {
		r := Riwayat{Kehadiran: rec, Koordinat: rec.Koordinat()}
		if rec.Status == model.StatusWorking {
			p, ok := byEmail[rec.Email]
			if !ok {
				p = model.Pegawai{Email: rec.Email}
			}
			r.Lewat, _ = schedule.LateAt(rec.JamMasuk, u.resolver.ClockIn(p, settings))
			if rec.JamKeluar != "" {
				r.KeluarAwal, _ = schedule.LeftEarly(rec.JamKeluar, u.resolver.ClockOut(p, settings))
			}
		}
		out = append(out, r)
	}
	return out, nil
}

// DurationTicker mengirim lama bekerja sejak start setiap detik sampai ctx selesai.
// Tidak ada penulisan ke store.
func DurationTicker(ctx context.Context, start time.Time, now func() time.Time) <-chan time.Duration {
	ch := make(chan time.Duration, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			d := now().Sub(start)
			if d < 0 {
				d = 0
			}
			select {
			case ch <- d:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// WorkingSince mengembalikan titik mulai hitungan durasi untuk pegawai yang sedang bekerja.
func (u *AttendanceUsecase) WorkingSince(ctx context.Context, email string) (time.Time, bool, error) {
	now := u.clock()
	rec, found, err := u.records.ByOwnerAndDate(store.NormalizeEmail(email), now.Format(schedule.DateLayout))
	if err != nil || !found {
		return time.Time{}, false, err
	}
	if rec.Status != model.StatusWorking || rec.JamKeluar != "" {
		return time.Time{}, false, nil
	}
	start, err := schedule.At(rec.Tanggal, rec.JamMasuk, u.loc)
	if err != nil {
		return time.Time{}, false, nil
	}
	return start, true, nil
}

func (u *AttendanceUsecase) Now() time.Time {
	return u.clock()
}

func clockInPayload(rec model.Kehadiran) map[string]any {
	payload := map[string]any{
		"email":    rec.Email,
		"name":     rec.Nama,
		"status":   string(rec.Status),
		"timeIn":   rec.JamMasuk,
		"timeOut":  "",
		"reason":   rec.Alasan,
		"document": rec.Dokumen,
	}
	if rec.Latitude != nil && rec.Longitude != nil {
		payload["lat"] = *rec.Latitude
		payload["lon"] = *rec.Longitude
	}
	switch rec.Status {
	case model.StatusOutstation:
		payload["outstationType"] = string(rec.JenisLuar)
		payload["outstationCategory"] = rec.KategoriLuar
	case model.StatusLeave:
		payload["leaveType"] = rec.JenisCuti
		payload["startDate"] = rec.TanggalMulai
		payload["endDate"] = rec.TanggalSelesai
	}
	return payload
}
