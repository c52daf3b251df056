package usecase

import (
	"bytes"
	"context"
	"testing"

	"kehadiran-backend/internal/model"

	"github.com/xuri/excelize/v2"
)

func TestReportFiltersAndExports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.att.Submit(ctx, working("ali@sekolah.my", &school))
	f.att.Submit(ctx, SubmitInput{Email: "siti@sekolah.my", Status: model.StatusOutstation, JenisLuar: model.OutstationOfficial, KategoriLuar: "KURSUS", Alasan: "PPD"})
	f.records.ReplaceCloud([]model.Kehadiran{
		{ID: "cloud-1-2026-09-30", Email: "ali@sekolah.my", Nama: "ALI", Tanggal: "2026-09-30", Status: model.StatusLeave},
	})

	uc := NewReportUsecase(f.records)
	rows, err := uc.Report(ctx, ReportFilter{Bulan: "10"})
	if err != nil || len(rows) != 2 {
		t.Fatalf("report: %+v err=%v", rows, err)
	}
	rows, _ = uc.Report(ctx, ReportFilter{Nama: "sit"})
	if len(rows) != 1 || rows[0].Status != "KURSUS (PPD)" || rows[0].JamMasuk != "--" {
		t.Fatalf("unexpected outstation row %+v", rows)
	}
	rows, _ = uc.Report(ctx, ReportFilter{Bulan: "9"})
	if len(rows) != 1 || rows[0].Status != "CUTI BERREKOD" {
		t.Fatalf("unexpected leave row %+v", rows)
	}

	all, _ := uc.Report(ctx, ReportFilter{})
	buf, err := WriteXLSX(all)
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	x, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer x.Close()
	got, err := x.GetRows("Laporan")
	if err != nil || len(got) != 4 || got[0][0] != "BIL" {
		t.Fatalf("unexpected sheet %v err=%v", got, err)
	}
}
