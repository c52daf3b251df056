package store

import (
	"errors"
	"fmt"
	"log"

	"kehadiran-backend/internal/repository"

	"github.com/bytedance/sonic"
)

var ErrNotFound = errors.New("data tidak ditemukan")

// blobCodec membaca/menulis satu koleksi JSON per key.
type blobCodec struct {
	repo repository.BlobRepository
}

// load mengisi out dari blob key. Blob yang tidak bisa didekode dianggap rusak:
// dihapus lalu dilaporkan sebagai kosong (found=false). Error hanya untuk kegagalan baca DB.
func (c blobCodec) load(key string, out any) (bool, error) {
	data, found, err := c.repo.Get(key)
	if err != nil {
		return false, fmt.Errorf("baca %s: %w", key, err)
	}
	if !found || len(data) == 0 {
		return false, nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		log.Printf("[STORE] Data rusak untuk %s, reset: %v", key, err)
		if delErr := c.repo.Delete(key); delErr != nil {
			log.Printf("[STORE] Gagal menghapus data rusak %s: %v", key, delErr)
		}
		return false, nil
	}
	return true, nil
}

func (c blobCodec) save(key string, v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.repo.Put(key, data); err != nil {
		return fmt.Errorf("simpan %s: %w", key, err)
	}
	return nil
}
