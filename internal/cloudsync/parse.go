package cloudsync

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/schedule"
)

const (
	DeviceCloudImport = "Cloud Import"
	DefaultPassword   = "123456"

	leaveKeyword      = "CUTI"
	outstationKeyword = "LUAR"
	adminFlag         = "YES"
	defaultTimeIn     = "00:00"
)

// cell mengambil kolom i yang sudah di-trim dan dibersihkan dari tanda kutip, "" jika tidak ada.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(row[i], `"`, ""))
}

// classify menebak status dari teks bebas. Lossy: "CUTI LUAR NEGARA" jadi URUSAN LUAR.
func classify(raw string) model.Status {
	raw = strings.ToUpper(raw)
	status := model.StatusWorking
	if strings.Contains(raw, leaveKeyword) {
		status = model.StatusLeave
	}
	if strings.Contains(raw, outstationKeyword) {
		status = model.StatusOutstation
	}
	return status
}

// feedDate mengubah "D/M/Y[ jam]" menjadi "YYYY-MM-DD". ok=false jika bentuknya lain.
func feedDate(timestamp string) (string, bool) {
	datePart, _, _ := strings.Cut(timestamp, " ")
	if !strings.Contains(datePart, "/") {
		return "", false
	}
	parts := strings.Split(datePart, "/")
	if len(parts) != 3 {
		return "", false
	}
	d, errD := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	y, errY := strconv.Atoi(parts[2])
	if errD != nil || errM != nil || errY != nil {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}

var timestampLayouts = []string{"2/1/2006 15:04:05", "2/1/2006 15:04", "2/1/2006"}

func feedTime(timestamp string, loc *time.Location) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, timestamp, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseAttendanceRows membaca feed kehadiran (header di baris pertama).
// Tanggal yang tidak terbaca diganti tanggal hari ini menurut now.
func ParseAttendanceRows(rows [][]string, now time.Time) []model.Kehadiran {
	today := now.Format(schedule.DateLayout)
	var out []model.Kehadiran

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 3 {
			continue
		}

		timestamp := cell(row, 0)
		date, ok := feedDate(timestamp)
		if !ok {
			date = today
		}

		timeIn := cell(row, 4)
		if timeIn == "" {
			timeIn = defaultTimeIn
		}

		rec := model.Kehadiran{
			ID:          fmt.Sprintf("cloud-%d-%s", i, date),
			Email:       cell(row, 1),
			Nama:        cell(row, 2),
			Tanggal:     date,
			Status:      classify(cell(row, 3)),
			JamMasuk:    timeIn,
			JamKeluar:   cell(row, 5),
			Alasan:      cell(row, 6),
			Dokumen:     cell(row, 9),
			Perangkat:   DeviceCloudImport,
			Asal:        model.OriginCloud,
			DikirimPada: feedTime(timestamp, now.Location()),
		}

		lat, errLat := strconv.ParseFloat(cell(row, 7), 64)
		lon, errLon := strconv.ParseFloat(cell(row, 8), 64)
		if errLat == nil && errLon == nil {
			rec.Latitude, rec.Longitude = &lat, &lon
		}

		out = append(out, rec)
	}
	return out
}

// ParseRosterRows membaca feed pegawai. Password dikembalikan apa adanya (plaintext),
// hashing dilakukan oleh Syncer.
func ParseRosterRows(rows [][]string) []model.Pegawai {
	var out []model.Pegawai

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}
		email := cell(row, 0)
		if !strings.Contains(email, "@") {
			continue
		}

		name := cell(row, 1)
		p := model.Pegawai{
			Email:           email,
			Nama:            name,
			Jabatan:         cell(row, 2),
			Gred:            cell(row, 3),
			NoHP:            cell(row, 4),
			IsAdmin:         strings.ToUpper(cell(row, 5)) == adminFlag,
			Password:        cell(row, 6),
			Foto:            DefaultAvatar(name),
			JamMasukKhusus:  cell(row, 7),
			JamKeluarKhusus: cell(row, 8),
		}
		if p.Jabatan == "" {
			p.Jabatan = model.DefaultRole
		}
		if p.Password == "" {
			p.Password = DefaultPassword
		}
		out = append(out, p)
	}
	return out
}

func DefaultAvatar(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
