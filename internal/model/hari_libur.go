package model

import "gorm.io/gorm"

type HariLibur struct {
	gorm.Model
	Tanggal    string `json:"tanggal" gorm:"unique;not null;size:10"` // Format YYYY-MM-DD
	Keterangan string `json:"keterangan"`
}
