package handler

import (
	"kehadiran-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// GetLaporan: ?nama=&bulan=10&tanggal=2026-10-14, tambah format=xlsx untuk unduhan Excel.
func (h *ReportHandler) GetLaporan(c *fiber.Ctx) error {
	rows, err := h.uc.Report(c.UserContext(), usecase.ReportFilter{
		Nama:    c.Query("nama"),
		Bulan:   c.Query("bulan"),
		Tanggal: c.Query("tanggal"),
	})
	if err != nil {
		return errorResponse(c, err)
	}

	if c.Query("format") != "xlsx" {
		return c.JSON(fiber.Map{"data": rows})
	}

	buf, err := usecase.WriteXLSX(rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menjana laporan"})
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment("laporan-kehadiran.xlsx")
	return c.Send(buf.Bytes())
}
