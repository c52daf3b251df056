package handler

import (
	"strconv"
	"time"

	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/repository"
	"kehadiran-backend/internal/schedule"

	"github.com/gofiber/fiber/v2"
)

type HariLiburHandler struct {
	repo repository.HariLiburRepository
	loc  *time.Location
	now  func() time.Time
}

func NewHariLiburHandler(repo repository.HariLiburRepository, loc *time.Location) *HariLiburHandler {
	if loc == nil {
		loc = time.Local
	}
	return &HariLiburHandler{repo: repo, loc: loc, now: time.Now}
}

type HariLiburRequest struct {
	Tanggal    string `json:"tanggal" validate:"required,datetime=2006-01-02"`
	Keterangan string `json:"keterangan" validate:"required"`
}

// GetAll menerima ?tahun=2026 untuk filter per tahun.
func (h *HariLiburHandler) GetAll(c *fiber.Ctx) error {
	data, err := h.repo.GetAll(c.Query("tahun"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data"})
	}
	return c.JSON(fiber.Map{"data": data})
}

// GetUpcoming: ?dari=YYYY-MM-DD (default hari ini) &limit=5
func (h *HariLiburHandler) GetUpcoming(c *fiber.Ctx) error {
	from := c.Query("dari")
	if from == "" {
		from = h.now().In(h.loc).Format(schedule.DateLayout)
	} else if _, err := time.Parse(schedule.DateLayout, from); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Format tarikh dari tidak sah")
	}
	data, err := h.repo.GetUpcoming(from, c.QueryInt("limit", 5))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data"})
	}
	return c.JSON(fiber.Map{"data": data})
}

func (h *HariLiburHandler) Create(c *fiber.Ctx) error {
	var req HariLiburRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	libur := model.HariLibur{Tanggal: req.Tanggal, Keterangan: req.Keterangan}
	if err := h.repo.Create(&libur); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan data"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Hari libur berhasil ditambahkan", "data": libur})
}

func (h *HariLiburHandler) Update(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var req HariLiburRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	libur, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Data tidak ditemukan"})
	}

	libur.Tanggal = req.Tanggal
	libur.Keterangan = req.Keterangan

	if err := h.repo.Update(libur); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal update data"})
	}
	return c.JSON(fiber.Map{"message": "Data berhasil diupdate", "data": libur})
}

func (h *HariLiburHandler) Delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghapus data"})
	}
	return c.JSON(fiber.Map{"message": "Data berhasil dihapus"})
}
