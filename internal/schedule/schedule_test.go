package schedule

import (
	"testing"
	"time"

	"kehadiran-backend/internal/model"
)

func settings() model.Pengaturan {
	return model.Pengaturan{
		JamMasuk:  "07:45",
		JamKeluar: "14:00",
		JamMasukPeranan: map[string]string{
			"GURU":       "07:30",
			"GURU BESAR": "08:30",
		},
		JamKeluarPeranan: map[string]string{
			"GURU":       "14:30",
			"GURU BESAR": "16:00",
		},
	}
}

func TestClockInFallsBackToGuru(t *testing.T) {
	r := NewResolver("07:30", "16:30")
	got := r.ClockIn(model.Pegawai{Role: "AKP"}, settings())
	if got != "07:30" {
		t.Fatalf("expected 07:30 for AKP got %s", got)
	}
}

func TestClockInChain(t *testing.T) {
	r := NewResolver("06:00", "18:00")
	s := settings()

	if got := r.ClockIn(model.Pegawai{Jabatan: "GURU BESAR"}, s); got != "08:30" {
		t.Fatalf("expected role time from position, got %s", got)
	}
	if got := r.ClockIn(model.Pegawai{Jabatan: "GURU BESAR", JamMasukKhusus: "09:00"}, s); got != "09:00" {
		t.Fatalf("expected personal override, got %s", got)
	}
	if got := r.ClockIn(model.Pegawai{Role: "AKP", Jabatan: "GURU BESAR"}, s); got != "07:30" {
		t.Fatalf("expected explicit role to win over position, got %s", got)
	}

	s.JamMasukPeranan = map[string]string{"AKP": ""}
	if got := r.ClockIn(model.Pegawai{Role: "AKP"}, s); got != "07:45" {
		t.Fatalf("expected global settings time, got %s", got)
	}

	s.JamMasuk = ""
	if got := r.ClockIn(model.Pegawai{}, s); got != "06:00" {
		t.Fatalf("expected configured fallback, got %s", got)
	}
}

func TestClockOutChain(t *testing.T) {
	r := NewResolver("07:30", "16:30")
	if got := r.ClockOut(model.Pegawai{Role: "AKP"}, settings()); got != "14:30" {
		t.Fatalf("expected GURU clock-out got %s", got)
	}
	if got := r.ClockOut(model.Pegawai{}, model.Pengaturan{}); got != "16:30" {
		t.Fatalf("expected fallback clock-out got %s", got)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		h, m int
	}{
		{"07:30", 7, 30},
		{"7:05 AM", 7, 5},
		{"12:10 AM", 0, 10},
		{"12:10 PM", 12, 10},
		{"1:45 pm", 13, 45},
		{"16:30:59", 16, 30},
	}
	for _, c := range cases {
		h, m, err := ParseClock(c.in)
		if err != nil {
			t.Fatalf("parse %q: %v", c.in, err)
		}
		if h != c.h || m != c.m {
			t.Fatalf("parse %q: expected %d:%d got %d:%d", c.in, c.h, c.m, h, m)
		}
	}
	for _, bad := range []string{"", "abc", "25:00", "7"} {
		if _, _, err := ParseClock(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestIsLateStrict(t *testing.T) {
	day := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	onTime := day.Add(7*time.Hour + 30*time.Minute + 59*time.Second)
	late := day.Add(7*time.Hour + 31*time.Minute)

	if got, _ := IsLate(onTime, "07:30"); got {
		t.Fatalf("07:30 should not be late")
	}
	if got, _ := IsLate(late, "07:30"); !got {
		t.Fatalf("07:31 should be late")
	}
	if _, err := IsLate(late, "bukan jam"); err == nil {
		t.Fatalf("expected error for bad target")
	}
}

func TestLeftEarly(t *testing.T) {
	if early, _ := LeftEarly("1:00 PM", "14:30"); !early {
		t.Fatalf("1:00 PM should be early for 14:30")
	}
	if early, _ := LeftEarly("2:30 PM", "14:30"); early {
		t.Fatalf("2:30 PM should not be early for 14:30")
	}
}

func TestAt(t *testing.T) {
	got, err := At("2026-10-14", "7:45 AM", time.UTC)
	if err != nil {
		t.Fatalf("at: %v", err)
	}
	want := time.Date(2026, 10, 14, 7, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}
