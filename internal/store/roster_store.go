package store

import (
	"errors"
	"strings"
	"sync"

	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/repository"
)

var ErrEmailTaken = errors.New("emel telah didaftarkan")

// RosterStore menyimpan daftar pegawai, unik per email (case-insensitive).
type RosterStore struct {
	mu    sync.Mutex
	codec blobCodec
}

func NewRosterStore(repo repository.BlobRepository) *RosterStore {
	return &RosterStore{codec: blobCodec{repo: repo}}
}

func (s *RosterStore) loadLocked() ([]model.Pegawai, error) {
	var list []model.Pegawai
	if _, err := s.codec.load(model.BlobPegawai, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// NormalizeEmail hanya membuang spasi; email dibandingkan persis (case-sensitive).
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func indexOf(list []model.Pegawai, email string) int {
	email = NormalizeEmail(email)
	for i := range list {
		if NormalizeEmail(list[i].Email) == email {
			return i
		}
	}
	return -1
}

func (s *RosterStore) All() ([]model.Pegawai, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *RosterStore) Get(email string) (model.Pegawai, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked()
	if err != nil {
		return model.Pegawai{}, false, err
	}
	if i := indexOf(list, email); i >= 0 {
		return list[i], true, nil
	}
	return model.Pegawai{}, false, nil
}

// Insert menambah pegawai baru. Pegawai pertama di daftar kosong otomatis jadi admin.
func (s *RosterStore) Insert(p model.Pegawai) (model.Pegawai, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked()
	if err != nil {
		return model.Pegawai{}, err
	}
	p.Email = NormalizeEmail(p.Email)
	if indexOf(list, p.Email) >= 0 {
		return model.Pegawai{}, ErrEmailTaken
	}
	if len(list) == 0 {
		p.IsAdmin = true
	}
	if err := s.codec.save(model.BlobPegawai, append(list, p)); err != nil {
		return model.Pegawai{}, err
	}
	return p, nil
}

// Update menjalankan fn pada salinan pegawai lalu menyimpannya. Email tidak bisa diubah.
func (s *RosterStore) Update(email string, fn func(p *model.Pegawai) error) (model.Pegawai, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked()
	if err != nil {
		return model.Pegawai{}, err
	}
	i := indexOf(list, email)
	if i < 0 {
		return model.Pegawai{}, ErrNotFound
	}
	updated := list[i]
	if err := fn(&updated); err != nil {
		return model.Pegawai{}, err
	}
	updated.Email = list[i].Email
	list[i] = updated
	if err := s.codec.save(model.BlobPegawai, list); err != nil {
		return model.Pegawai{}, err
	}
	return updated, nil
}

func (s *RosterStore) Delete(email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked()
	if err != nil {
		return false, err
	}
	i := indexOf(list, email)
	if i < 0 {
		return false, nil
	}
	list = append(list[:i], list[i+1:]...)
	return true, s.codec.save(model.BlobPegawai, list)
}

// MergeCloud menimpa data pegawai dengan baris dari feed. Foto, role dan tarikh
// lantikan lokal dipertahankan karena tidak ada di feed. Pegawai baru ditambah di akhir.
// Pegawai yang hanya ada di lokal tidak dihapus.
func (s *RosterStore) MergeCloud(rows []model.Pegawai) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked()
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		row.Email = NormalizeEmail(row.Email)
		if row.Email == "" {
			continue
		}
		i := indexOf(list, row.Email)
		if i < 0 {
			list = append(list, row)
			continue
		}
		existing := list[i]
		row.Foto = pick(existing.Foto, row.Foto)
		row.Role = pick(existing.Role, row.Role)
		row.TarikhLantikan = pick(existing.TarikhLantikan, row.TarikhLantikan)
		if row.Password == "" {
			row.Password = existing.Password
		}
		list[i] = row
	}
	if err := s.codec.save(model.BlobPegawai, list); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func pick(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}
