package store

import (
	"sort"
	"sync"
	"time"

	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/repository"

	"github.com/google/uuid"
)

// RecordStore menyimpan seluruh riwayat kehadiran sebagai satu koleksi,
// urutan terbaru di depan. Setiap operasi adalah load -> ubah -> save di bawah lock,
// jadi baca-setelah-tulis selalu konsisten.
type RecordStore struct {
	mu    sync.Mutex
	codec blobCodec
	newID func() string
}

func NewRecordStore(repo repository.BlobRepository) *RecordStore {
	return &RecordStore{
		codec: blobCodec{repo: repo},
		newID: uuid.NewString,
	}
}

func (s *RecordStore) loadLocked() ([]model.Kehadiran, error) {
	var list []model.Kehadiran
	if _, err := s.codec.load(model.BlobKehadiran, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *RecordStore) saveLocked(list []model.Kehadiran) error {
	return s.codec.save(model.BlobKehadiran, list)
}

// All mengembalikan semua record, tanggal terbaru dulu.
func (s *RecordStore) All() ([]model.Kehadiran, error) {
	s.mu.Lock()
	list, err := s.loadLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	sortByDateDesc(list)
	return list, nil
}

// Append memberi ID baru lalu menaruh record di depan koleksi.
func (s *RecordStore) Append(rec model.Kehadiran) (model.Kehadiran, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked()
	if err != nil {
		return model.Kehadiran{}, err
	}
	rec = s.prepare(rec)
	if err := s.saveLocked(append([]model.Kehadiran{rec}, list...)); err != nil {
		return model.Kehadiran{}, err
	}
	return rec, nil
}

// AppendIfAbsent hanya menambah jika belum ada record untuk (email, tanggal) yang sama.
// Jika sudah ada, record yang berlaku dikembalikan dengan created=false.
func (s *RecordStore) AppendIfAbsent(rec model.Kehadiran) (model.Kehadiran, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked()
	if err != nil {
		return model.Kehadiran{}, false, err
	}
	if existing, ok := SelectAuthoritative(filterOwnerDate(list, rec.Email, rec.Tanggal)); ok {
		return existing, false, nil
	}
	rec = s.prepare(rec)
	if err := s.saveLocked(append([]model.Kehadiran{rec}, list...)); err != nil {
		return model.Kehadiran{}, false, err
	}
	return rec, true, nil
}

func (s *RecordStore) prepare(rec model.Kehadiran) model.Kehadiran {
	rec.ID = s.newID()
	if rec.Asal == "" {
		rec.Asal = model.OriginLocal
	}
	if rec.DikirimPada.IsZero() {
		rec.DikirimPada = time.Now()
	}
	return rec
}

// Patch menggabungkan field parsial ke record dengan ID tersebut.
func (s *RecordStore) Patch(id string, patch model.KehadiranPatch) (model.Kehadiran, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked()
	if err != nil {
		return model.Kehadiran{}, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		if patch.JamKeluar != nil {
			list[i].JamKeluar = *patch.JamKeluar
		}
		if err := s.saveLocked(list); err != nil {
			return model.Kehadiran{}, err
		}
		return list[i], nil
	}
	return model.Kehadiran{}, ErrNotFound
}

func (s *RecordStore) ByOwner(email string) ([]model.Kehadiran, error) {
	s.mu.Lock()
	list, err := s.loadLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var out []model.Kehadiran
	for _, rec := range list {
		if rec.Email == email {
			out = append(out, rec)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

// ByOwnerAndDate mengembalikan satu record yang berlaku untuk (email, tanggal).
func (s *RecordStore) ByOwnerAndDate(email, date string) (model.Kehadiran, bool, error) {
	s.mu.Lock()
	list, err := s.loadLocked()
	s.mu.Unlock()
	if err != nil {
		return model.Kehadiran{}, false, err
	}
	rec, ok := SelectAuthoritative(filterOwnerDate(list, email, date))
	return rec, ok, nil
}

func (s *RecordStore) DeleteByOwner(email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked()
	if err != nil {
		return 0, err
	}
	kept := list[:0:0]
	for _, rec := range list {
		if rec.Email != email {
			kept = append(kept, rec)
		}
	}
	removed := len(list) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.saveLocked(kept)
}

// ReplaceCloud mengganti seluruh record bertanda cloud dengan snapshot baru,
// record lokal tidak disentuh. Snapshot kosong tidak mengubah apa pun.
func (s *RecordStore) ReplaceCloud(fresh []model.Kehadiran) (int, error) {
	if len(fresh) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.loadLocked()
	if err != nil {
		return 0, err
	}
	merged := make([]model.Kehadiran, 0, len(fresh)+len(list))
	for _, rec := range fresh {
		rec.Asal = model.OriginCloud
		merged = append(merged, rec)
	}
	for _, rec := range list {
		if !rec.IsCloud() {
			merged = append(merged, rec)
		}
	}
	sortByDateDesc(merged)
	if err := s.saveLocked(merged); err != nil {
		return 0, err
	}
	return len(fresh), nil
}

func filterOwnerDate(list []model.Kehadiran, email, date string) []model.Kehadiran {
	var out []model.Kehadiran
	for _, rec := range list {
		if rec.Email == email && rec.Tanggal == date {
			out = append(out, rec)
		}
	}
	return out
}

func sortByDateDesc(list []model.Kehadiran) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Tanggal > list[j].Tanggal
	})
}
