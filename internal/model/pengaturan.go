package model

// Pengaturan adalah singleton pengaturan sistem. Disimpan utuh (replace), tidak di-merge per field.
type Pengaturan struct {
	TargetLat   float64 `json:"target_lat"`
	TargetLon   float64 `json:"target_lon"`
	RadiusMeter float64 `json:"radius_meter"`

	JamMasuk  string `json:"jam_masuk"`
	JamKeluar string `json:"jam_keluar"`

	ModCutiSekolah bool `json:"mod_cuti_sekolah"`

	JenisCuti           []string `json:"jenis_cuti"`
	JenisLuarRasmi      []string `json:"jenis_luar_rasmi"`
	JenisLuarTidakRasmi []string `json:"jenis_luar_tidak_rasmi"`

	// Opsional: kosakata khusus per jabatan, menimpa daftar global (cuti, urusan rasmi)
	JenisCutiPeranan map[string][]string `json:"jenis_cuti_peranan,omitempty"`
	JenisLuarPeranan map[string][]string `json:"jenis_luar_peranan,omitempty"`

	JamMasukPeranan  map[string]string `json:"jam_masuk_peranan"`
	JamKeluarPeranan map[string]string `json:"jam_keluar_peranan"`
}

func DefaultPengaturan() Pengaturan {
	return Pengaturan{
		TargetLat:   5.614738,
		TargetLon:   115.889279,
		RadiusMeter: 300,
		JamMasuk:    "07:30",
		JamKeluar:   "14:00",
		JenisCuti: []string{
			"CUTI REHAT KHAS", "CUTI REHAT", "CUTI SAKIT", "CUTI BERSALIN",
			"CUTI BERPANTANG", "CUTI KUARANTIN", "CUTI UMRAH", "CUTI HAJI", "CUTI TANPA REKOD",
		},
		JenisLuarRasmi: []string{
			"MESYUARAT", "KURSUS", "SEMINAR", "BENGKEL", "TAKLIMAT",
			"PERKHEMAHAN", "PLC", "LADAP", "URUSAN GURU BESAR",
		},
		JenisLuarTidakRasmi: []string{
			"RAWATAN DOKTOR", "KECEMASAN KELUARGA", "URUSAN BANK", "TEMUJANJI KHAS",
			"MENGANTAR ANAK", "URUSAN PERIBADI", "LAIN-LAIN",
		},
		JamMasukPeranan: map[string]string{
			"GURU BESAR": "08:30",
			"GURU":       "07:30",
			"AKP":        "08:30",
		},
		JamKeluarPeranan: map[string]string{
			"GURU BESAR": "16:00",
			"GURU":       "14:30",
			"AKP":        "17:00",
		},
	}
}

// KosakataCuti mengembalikan daftar jenis cuti yang berlaku untuk jabatan tersebut.
func (p Pengaturan) KosakataCuti(role string) []string {
	if list, ok := p.JenisCutiPeranan[role]; ok && len(list) > 0 {
		return list
	}
	return p.JenisCuti
}

// KosakataLuar mengembalikan kategori urusan luar untuk jenis (rasmi/tidak rasmi) dan jabatan.
func (p Pengaturan) KosakataLuar(role string, jenis OutstationType) []string {
	if jenis == OutstationOfficial {
		if list, ok := p.JenisLuarPeranan[role]; ok && len(list) > 0 {
			return list
		}
		return p.JenisLuarRasmi
	}
	if jenis == OutstationUnofficial {
		return p.JenisLuarTidakRasmi
	}
	return nil
}
