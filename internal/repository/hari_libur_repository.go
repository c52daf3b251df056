package repository

import (
	"kehadiran-backend/internal/model"

	"gorm.io/gorm"
)

type HariLiburRepository interface {
	GetAll(tahun string) ([]model.HariLibur, error)
	GetUpcoming(fromDate string, limit int) ([]model.HariLibur, error)
	Create(libur *model.HariLibur) error
	Delete(id uint) error
	IsHoliday(date string) (bool, error)
	GetByID(id uint) (*model.HariLibur, error)
	Update(libur *model.HariLibur) error
}

type hariLiburRepository struct {
	db *gorm.DB
}

func NewHariLiburRepository(db *gorm.DB) HariLiburRepository {
	return &hariLiburRepository{db}
}

func (r *hariLiburRepository) GetAll(tahun string) ([]model.HariLibur, error) {
	var liburs []model.HariLibur
	query := r.db.Order("tanggal desc")
	if tahun != "" {
		// Filter tahun menggunakan pattern "YYYY-%"
		query = query.Where("tanggal LIKE ?", tahun+"-%")
	}
	err := query.Find(&liburs).Error
	return liburs, err
}

func (r *hariLiburRepository) GetUpcoming(fromDate string, limit int) ([]model.HariLibur, error) {
	var liburs []model.HariLibur
	err := r.db.Where("tanggal >= ?", fromDate).Order("tanggal asc").Limit(limit).Find(&liburs).Error
	return liburs, err
}

func (r *hariLiburRepository) Create(libur *model.HariLibur) error {
	return r.db.Create(libur).Error
}

func (r *hariLiburRepository) Delete(id uint) error {
	// Hapus permanen supaya tanggal yang sama bisa didaftarkan lagi
	return r.db.Unscoped().Delete(&model.HariLibur{}, id).Error
}

// IsHoliday dipakai monitor keterlambatan: tanggal libur tidak memicu notifikasi.
func (r *hariLiburRepository) IsHoliday(date string) (bool, error) {
	var count int64
	err := r.db.Model(&model.HariLibur{}).Where("tanggal = ?", date).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *hariLiburRepository) GetByID(id uint) (*model.HariLibur, error) {
	var libur model.HariLibur
	err := r.db.First(&libur, id).Error
	return &libur, err
}

func (r *hariLiburRepository) Update(libur *model.HariLibur) error {
	return r.db.Save(libur).Error
}
