package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"kehadiran-backend/internal/model"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "3:04 PM"
)

// Resolver menentukan waktu masuk/keluar yang berlaku untuk seorang pegawai.
// FallbackIn/FallbackOut dipakai jika pengaturan tidak punya nilai sama sekali.
type Resolver struct {
	FallbackIn  string
	FallbackOut string
}

func NewResolver(fallbackIn, fallbackOut string) Resolver {
	return Resolver{FallbackIn: fallbackIn, FallbackOut: fallbackOut}
}

// ClockIn: waktu individu -> waktu jabatan -> waktu GURU -> waktu global -> fallback.
func (r Resolver) ClockIn(p model.Pegawai, s model.Pengaturan) string {
	return firstNonEmpty(
		p.JamMasukKhusus,
		s.JamMasukPeranan[p.RoleKey()],
		s.JamMasukPeranan[model.DefaultRole],
		s.JamMasuk,
		r.FallbackIn,
	)
}

func (r Resolver) ClockOut(p model.Pegawai, s model.Pengaturan) string {
	return firstNonEmpty(
		p.JamKeluarKhusus,
		s.JamKeluarPeranan[p.RoleKey()],
		s.JamKeluarPeranan[model.DefaultRole],
		s.JamKeluar,
		r.FallbackOut,
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// ParseClock menerima "07:30", "07:30:15", "7:30 AM", "12:05 pm".
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, 0, fmt.Errorf("jam kosong")
	}

	modifier := ""
	for _, m := range []string{"AM", "PM"} {
		if strings.HasSuffix(s, m) {
			modifier = m
			s = strings.TrimSpace(strings.TrimSuffix(s, m))
			break
		}
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, fmt.Errorf("format jam tidak valid: %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("format jam tidak valid: %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("format menit tidak valid: %q", s)
	}

	switch modifier {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("jam di luar jangkauan: %q", s)
	}
	return hour, minute, nil
}

// Minutes mengubah jam menjadi menit sejak tengah malam.
func Minutes(clock string) (int, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

func MinutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// IsLate: lewat jika menit sekarang > menit target (tanpa toleransi).
func IsLate(now time.Time, target string) (bool, error) {
	limit, err := Minutes(target)
	if err != nil {
		return false, err
	}
	return MinutesOf(now) > limit, nil
}

// LeftEarly hanya untuk pewarnaan riwayat, tidak pernah memblokir aksi.
func LeftEarly(actual, target string) (bool, error) {
	a, err := Minutes(actual)
	if err != nil {
		return false, err
	}
	limit, err := Minutes(target)
	if err != nil {
		return false, err
	}
	return a < limit, nil
}

// LateAt membandingkan jam masuk yang tercatat (bukan jam sekarang) dengan target.
func LateAt(actual, target string) (bool, error) {
	a, err := Minutes(actual)
	if err != nil {
		return false, err
	}
	limit, err := Minutes(target)
	if err != nil {
		return false, err
	}
	return a > limit, nil
}

func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// At menggabungkan tanggal "YYYY-MM-DD" dan jam menjadi time.Time di lokasi loc.
func At(date, clock string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, err
	}
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, loc), nil
}
