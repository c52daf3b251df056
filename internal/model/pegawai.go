package model

type Pegawai struct {
	Email          string `json:"email"`
	Nama           string `json:"nama"`
	Jabatan        string `json:"jabatan"`
	Role           string `json:"role,omitempty"`
	Gred           string `json:"gred,omitempty"`
	TarikhLantikan string `json:"tarikh_lantikan,omitempty"`
	IsAdmin        bool   `json:"is_admin"`
	Foto           string `json:"foto"`
	NoHP           string `json:"no_hp,omitempty"`
	Password       string `json:"password,omitempty"` // hash bcrypt, jangan dikirim ke client

	// Waktu kerja individu, menimpa waktu per jabatan
	JamMasukKhusus  string `json:"jam_masuk_khusus,omitempty"`
	JamKeluarKhusus string `json:"jam_keluar_khusus,omitempty"`
}

// RoleKey adalah kunci jadwal: role eksplisit, lalu jabatan, lalu "GURU".
func (p Pegawai) RoleKey() string {
	if p.Role != "" {
		return p.Role
	}
	if p.Jabatan != "" {
		return p.Jabatan
	}
	return DefaultRole
}

const DefaultRole = "GURU"

type PegawaiResponse struct {
	Email           string `json:"email"`
	Nama            string `json:"nama"`
	Jabatan         string `json:"jabatan"`
	Role            string `json:"role"`
	Gred            string `json:"gred,omitempty"`
	TarikhLantikan  string `json:"tarikh_lantikan,omitempty"`
	IsAdmin         bool   `json:"is_admin"`
	Foto            string `json:"foto"`
	NoHP            string `json:"no_hp,omitempty"`
	JamMasukKhusus  string `json:"jam_masuk_khusus,omitempty"`
	JamKeluarKhusus string `json:"jam_keluar_khusus,omitempty"`
}

func (p Pegawai) ToResponse() PegawaiResponse {
	return PegawaiResponse{
		Email:           p.Email,
		Nama:            p.Nama,
		Jabatan:         p.Jabatan,
		Role:            p.RoleKey(),
		Gred:            p.Gred,
		TarikhLantikan:  p.TarikhLantikan,
		IsAdmin:         p.IsAdmin,
		Foto:            p.Foto,
		NoHP:            p.NoHP,
		JamMasukKhusus:  p.JamMasukKhusus,
		JamKeluarKhusus: p.JamKeluarKhusus,
	}
}

// StafHariIni dipakai direktori & dashboard: pegawai + status hari ini.
type StafHariIni struct {
	PegawaiResponse
	Status    Status         `json:"status"`
	JenisLuar OutstationType `json:"jenis_luar,omitempty"`
	JenisCuti string         `json:"jenis_cuti,omitempty"`
}
