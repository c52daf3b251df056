package repository

import (
	"errors"

	"kehadiran-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlobRepository interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

type blobRepository struct {
	db *gorm.DB
}

func NewBlobRepository(db *gorm.DB) BlobRepository {
	return &blobRepository{db}
}

func (r *blobRepository) Get(key string) ([]byte, bool, error) {
	var blob model.LocalBlob
	err := r.db.Where("blob_key = ?", key).Limit(1).Find(&blob).Error
	if err != nil {
		return nil, false, err
	}
	if blob.Key == "" {
		return nil, false, nil
	}
	return blob.Value, true, nil
}

func (r *blobRepository) Put(key string, value []byte) error {
	blob := model.LocalBlob{Key: key, Value: value}
	// Upsert: satu baris per key, selalu ditimpa utuh
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}

func (r *blobRepository) Delete(key string) error {
	err := r.db.Where("blob_key = ?", key).Delete(&model.LocalBlob{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
