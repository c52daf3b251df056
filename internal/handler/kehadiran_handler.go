package handler

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"kehadiran-backend/internal/geofence"
	"kehadiran-backend/internal/middleware"
	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/usecase"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type KehadiranHandler struct {
	uc *usecase.AttendanceUsecase
}

func NewKehadiranHandler(uc *usecase.AttendanceUsecase) *KehadiranHandler {
	return &KehadiranHandler{uc: uc}
}

type SubmitRequest struct {
	Status    model.Status `json:"status" validate:"required,oneof=BEKERJA 'URUSAN LUAR' CUTI"`
	Latitude  *float64     `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64     `json:"longitude" validate:"omitempty,longitude"`
	Alasan    string       `json:"alasan"`

	JenisLuar    model.OutstationType `json:"jenis_luar" validate:"omitempty,oneof=RASMI TIDAK_RASMI"`
	KategoriLuar string               `json:"kategori_luar"`

	JenisCuti      string `json:"jenis_cuti"`
	TanggalMulai   string `json:"tanggal_mulai" validate:"omitempty,datetime=2006-01-02"`
	TanggalSelesai string `json:"tanggal_selesai" validate:"omitempty,datetime=2006-01-02"`

	Dokumen   string `json:"dokumen"`
	Perangkat string `json:"perangkat"`
}

// HistoryQuery: ?status=BEKERJA&dari=2026-10-01&hingga=2026-10-31&cari=10-1
type HistoryQuery struct {
	Status model.Status `query:"status" validate:"omitempty,oneof=BEKERJA 'URUSAN LUAR' CUTI"`
	Dari   string       `query:"dari" validate:"omitempty,datetime=2006-01-02"`
	Hingga string       `query:"hingga" validate:"omitempty,datetime=2006-01-02"`
	Cari   string       `query:"cari"`
}

type LokasiRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

func position(lat, lon *float64) *geofence.Position {
	if lat == nil || lon == nil {
		return nil
	}
	return &geofence.Position{Latitude: *lat, Longitude: *lon}
}

func (h *KehadiranHandler) Today(c *fiber.Ctx) error {
	view, err := h.uc.Today(c.UserContext(), middleware.CurrentEmail(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": view})
}

func (h *KehadiranHandler) Submit(c *fiber.Ctx) error {
	var req SubmitRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	perangkat := req.Perangkat
	if perangkat == "" {
		perangkat = c.Get(fiber.HeaderUserAgent)
	}

	out, err := h.uc.Submit(c.UserContext(), usecase.SubmitInput{
		Email:          middleware.CurrentEmail(c),
		Status:         req.Status,
		Position:       position(req.Latitude, req.Longitude),
		Alasan:         req.Alasan,
		JenisLuar:      req.JenisLuar,
		KategoriLuar:   req.KategoriLuar,
		JenisCuti:      req.JenisCuti,
		TanggalMulai:   req.TanggalMulai,
		TanggalSelesai: req.TanggalSelesai,
		Dokumen:        req.Dokumen,
		Perangkat:      perangkat,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	if !out.Created {
		return c.JSON(fiber.Map{"message": "Kehadiran hari ini sudah direkodkan", "data": out})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Kehadiran berjaya direkodkan", "data": out})
}

func (h *KehadiranHandler) ClockOut(c *fiber.Ctx) error {
	rec, err := h.uc.ClockOut(c.UserContext(), middleware.CurrentEmail(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Clock out berjaya", "data": rec})
}

func (h *KehadiranHandler) GetHistory(c *fiber.Ctx) error {
	var q HistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Format data salah")
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Parameter riwayat tidak sah")
	}

	res, err := h.uc.History(c.UserContext(), middleware.CurrentEmail(c), usecase.RiwayatFilter{
		Status: q.Status,
		Dari:   q.Dari,
		Hingga: q.Hingga,
		Cari:   q.Cari,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": res.Data, "ringkasan": res.Ringkasan})
}

// CekLokasi hanya menghitung jarak ke sekolah, tidak menyimpan apa pun.
func (h *KehadiranHandler) CekLokasi(c *fiber.Ctx) error {
	var req LokasiRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.uc.CheckLocation(position(req.Latitude, req.Longitude))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"status": res.Verdict.String(),
		"jarak":  res.Distance,
	}})
}

// Durasi mengalirkan lama bekerja (SSE) setiap detik selama client tersambung.
func (h *KehadiranHandler) Durasi(c *fiber.Ctx) error {
	start, ok, err := h.uc.WorkingSince(c.UserContext(), middleware.CurrentEmail(c))
	if err != nil {
		return errorResponse(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Tiada sesi bekerja aktif hari ini"})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	now := h.uc.Now
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		for d := range usecase.DurationTicker(ctx, start, now) {
			payload, _ := sonic.Marshal(fiber.Map{
				"elapsed_seconds": int64(d / time.Second),
				"label":           formatDuration(d),
			})
			fmt.Fprintf(w, "data: %s\n\n", payload)
			// client terputus
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}

func formatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
