package model

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusWorking    Status = "BEKERJA"
	StatusOutstation Status = "URUSAN LUAR"
	StatusLeave      Status = "CUTI"
	StatusNone       Status = "BELUM LOGIN" // hanya untuk tampilan direktori, tidak pernah disimpan
)

func (s Status) Valid() bool {
	switch s {
	case StatusWorking, StatusOutstation, StatusLeave:
		return true
	}
	return false
}

type OutstationType string

const (
	OutstationOfficial   OutstationType = "RASMI"
	OutstationUnofficial OutstationType = "TIDAK_RASMI"
)

// Origin membedakan record hasil import feed cloud dengan record yang dibuat di server ini.
type Origin string

const (
	OriginLocal Origin = "LOCAL"
	OriginCloud Origin = "CLOUD"
)

// Kehadiran adalah status satu pegawai untuk satu tanggal.
type Kehadiran struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Nama    string `json:"nama"` // salinan nama saat record dibuat
	Tanggal string `json:"tanggal"`
	Status  Status `json:"status"`

	JamMasuk  string `json:"jam_masuk"`            // "7:45 AM"
	JamKeluar string `json:"jam_keluar,omitempty"` // diisi sekali saat clock out
	Alasan    string `json:"alasan,omitempty"`     // wajib jika lewat

	JenisLuar      OutstationType `json:"jenis_luar,omitempty"`
	KategoriLuar   string         `json:"kategori_luar,omitempty"`
	JenisCuti      string         `json:"jenis_cuti,omitempty"`
	TanggalMulai   string         `json:"tanggal_mulai,omitempty"`
	TanggalSelesai string         `json:"tanggal_selesai,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Dokumen   string   `json:"dokumen,omitempty"`
	Perangkat string   `json:"perangkat,omitempty"`

	Asal        Origin    `json:"asal"`
	DikirimPada time.Time `json:"dikirim_pada"`
}

func (k Kehadiran) IsCloud() bool {
	return k.Asal == OriginCloud
}

// Koordinat mengembalikan "lat, lon" dengan 4 desimal, atau "" jika tidak ada.
func (k Kehadiran) Koordinat() string {
	if k.Latitude == nil || k.Longitude == nil {
		return ""
	}
	return fmt.Sprintf("%.4f, %.4f", *k.Latitude, *k.Longitude)
}

// KehadiranPatch hanya dipakai untuk menandai jam keluar.
type KehadiranPatch struct {
	JamKeluar *string
}
