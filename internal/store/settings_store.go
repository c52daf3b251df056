package store

import (
	"sync"

	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/repository"
)

type SettingsStore struct {
	mu    sync.Mutex
	codec blobCodec
}

func NewSettingsStore(repo repository.BlobRepository) *SettingsStore {
	return &SettingsStore{codec: blobCodec{repo: repo}}
}

// Get mengembalikan pengaturan tersimpan, atau default jika belum ada / rusak.
func (s *SettingsStore) Get() (model.Pengaturan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p model.Pengaturan
	found, err := s.codec.load(model.BlobPengaturan, &p)
	if err != nil {
		return model.DefaultPengaturan(), err
	}
	if !found {
		return model.DefaultPengaturan(), nil
	}
	return p, nil
}

// Save menimpa seluruh pengaturan.
func (s *SettingsStore) Save(p model.Pengaturan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codec.save(model.BlobPengaturan, p)
}
