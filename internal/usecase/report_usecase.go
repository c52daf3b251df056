package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/store"

	"github.com/xuri/excelize/v2"
)

type ReportFilter struct {
	Nama    string // substring, case-insensitive
	Bulan   string // "01".."12"
	Tanggal string // "YYYY-MM-DD"
}

type ReportRow struct {
	No        int    `json:"no"`
	Tanggal   string `json:"tanggal"`
	Nama      string `json:"nama"`
	JamMasuk  string `json:"jam_masuk"`
	JamKeluar string `json:"jam_keluar"`
	Status    string `json:"status"`
}

type ReportUsecase struct {
	records *store.RecordStore
}

func NewReportUsecase(records *store.RecordStore) *ReportUsecase {
	return &ReportUsecase{records: records}
}

// Report menyusun laporan kehadiran (satu baris per pegawai per tanggal), terbaru dulu.
func (u *ReportUsecase) Report(ctx context.Context, f ReportFilter) ([]ReportRow, error) {
	list, err := u.records.All()
	if err != nil {
		return nil, err
	}
	if len(f.Bulan) == 1 {
		f.Bulan = "0" + f.Bulan
	}
	nama := strings.ToLower(f.Nama)

	rows := []ReportRow{}
	for _, rec := range store.Deduplicate(list) {
		if nama != "" && !strings.Contains(strings.ToLower(rec.Nama), nama) {
			continue
		}
		if f.Bulan != "" && (len(rec.Tanggal) < 7 || rec.Tanggal[5:7] != f.Bulan) {
			continue
		}
		if f.Tanggal != "" && rec.Tanggal != f.Tanggal {
			continue
		}

		row := ReportRow{No: len(rows) + 1, Tanggal: rec.Tanggal, Nama: rec.Nama, JamMasuk: "--", JamKeluar: "--", Status: statusDetail(rec)}
		if rec.Status == model.StatusWorking {
			row.JamMasuk = rec.JamMasuk
			if rec.JamKeluar != "" {
				row.JamKeluar = rec.JamKeluar
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func statusDetail(rec model.Kehadiran) string {
	switch rec.Status {
	case model.StatusWorking:
		return "HADIR BERTUGAS"
	case model.StatusOutstation:
		detail := rec.KategoriLuar
		if detail == "" {
			detail = string(model.StatusOutstation)
		}
		if rec.Alasan != "" {
			detail += " (" + rec.Alasan + ")"
		}
		return detail
	case model.StatusLeave:
		if rec.JenisCuti != "" {
			return rec.JenisCuti
		}
		return "CUTI BERREKOD"
	}
	return string(rec.Status)
}

var reportHeader = []any{"BIL", "TARIKH", "NAMA", "MASUK", "KELUAR", "STATUS"}

// WriteXLSX menulis laporan ke satu sheet "Laporan".
func WriteXLSX(rows []ReportRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Laporan"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &reportHeader); err != nil {
		return nil, err
	}
	for i, r := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []any{r.No, r.Tanggal, r.Nama, r.JamMasuk, r.JamKeluar, r.Status}
		if err := f.SetSheetRow(sheet, cellRef, &values); err != nil {
			return nil, fmt.Errorf("baris %d: %w", i+1, err)
		}
	}
	return f.WriteToBuffer()
}
