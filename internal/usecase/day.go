package usecase

import (
	"time"

	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/schedule"
	"kehadiran-backend/internal/store"
)

type DayState string

const (
	StateNoRecord   DayState = "TIADA_REKOD"
	StateWorking    DayState = "BEKERJA"
	StateClockedOut DayState = "SELESAI"
	StateOther      DayState = "LAIN" // cuti atau urusan luar, hari sudah selesai
)

// DayView adalah keadaan hari seorang pegawai, selalu dihitung ulang dari record.
type DayView struct {
	State   DayState         `json:"state"`
	Record  *model.Kehadiran `json:"record,omitempty"`
	Elapsed time.Duration    `json:"-"`
}

// ProjectDay menurunkan keadaan hari dari koleksi record. Fungsi murni.
func ProjectDay(records []model.Kehadiran, email, date string, now time.Time) DayView {
	var mine []model.Kehadiran
	for _, rec := range records {
		if rec.Email == email && rec.Tanggal == date {
			mine = append(mine, rec)
		}
	}
	rec, ok := store.SelectAuthoritative(mine)
	if !ok {
		return DayView{State: StateNoRecord}
	}

	view := DayView{Record: &rec}
	switch {
	case rec.Status != model.StatusWorking:
		view.State = StateOther
	case rec.JamKeluar != "":
		view.State = StateClockedOut
	default:
		view.State = StateWorking
		view.Elapsed = elapsedSince(rec, now)
	}
	return view
}

func elapsedSince(rec model.Kehadiran, now time.Time) time.Duration {
	start, err := schedule.At(rec.Tanggal, rec.JamMasuk, now.Location())
	if err != nil {
		return 0
	}
	if d := now.Sub(start); d > 0 {
		return d
	}
	return 0
}
