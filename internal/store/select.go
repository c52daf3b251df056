package store

import "kehadiran-backend/internal/model"

// SelectAuthoritative memilih satu record dari kandidat (email, tanggal) yang sama:
// lokal menang atas cloud, lalu DikirimPada terbaru, lalu posisi paling depan.
func SelectAuthoritative(candidates []model.Kehadiran) (model.Kehadiran, bool) {
	if len(candidates) == 0 {
		return model.Kehadiran{}, false
	}
	best := 0
	for i := 1; i < len(candidates); i++ {
		if beats(candidates[i], candidates[best]) {
			best = i
		}
	}
	return candidates[best], true
}

func beats(a, b model.Kehadiran) bool {
	if a.IsCloud() != b.IsCloud() {
		return !a.IsCloud()
	}
	return a.DikirimPada.After(b.DikirimPada)
}

type ownerDate struct {
	email   string
	tanggal string
}

// Deduplicate menyisakan satu record per (email, tanggal) dengan urutan asal dipertahankan.
func Deduplicate(list []model.Kehadiran) []model.Kehadiran {
	winner := make(map[ownerDate]int, len(list))
	for i, rec := range list {
		key := ownerDate{rec.Email, rec.Tanggal}
		if cur, ok := winner[key]; !ok || beats(rec, list[cur]) {
			winner[key] = i
		}
	}
	out := make([]model.Kehadiran, 0, len(winner))
	for i, rec := range list {
		if winner[ownerDate{rec.Email, rec.Tanggal}] == i {
			out = append(out, rec)
		}
	}
	return out
}
