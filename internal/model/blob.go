package model

import "time"

// LocalBlob menyimpan satu koleksi JSON utuh per key (roster, riwayat, pengaturan).
type LocalBlob struct {
	Key       string `gorm:"primaryKey;column:blob_key;size:64"`
	Value     []byte
	UpdatedAt time.Time
}

const (
	BlobPegawai    = "skpk_users"
	BlobKehadiran  = "skpk_history"
	BlobPengaturan = "skpk_settings"
)
