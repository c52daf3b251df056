package handler

import (
	"kehadiran-backend/internal/model"
	"kehadiran-backend/internal/schedule"
	"kehadiran-backend/internal/store"
	"kehadiran-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	staff      *usecase.StaffUsecase
	attendance *usecase.AttendanceUsecase
	settings   *store.SettingsStore
}

func NewAdminHandler(staff *usecase.StaffUsecase, attendance *usecase.AttendanceUsecase, settings *store.SettingsStore) *AdminHandler {
	return &AdminHandler{staff: staff, attendance: attendance, settings: settings}
}

type PengaturanRequest struct {
	TargetLat      float64 `json:"target_lat" validate:"latitude"`
	TargetLon      float64 `json:"target_lon" validate:"longitude"`
	RadiusMeter    float64 `json:"radius_meter" validate:"gt=0"`
	JamMasuk       string  `json:"jam_masuk" validate:"required"`
	JamKeluar      string  `json:"jam_keluar" validate:"required"`
	ModCutiSekolah bool    `json:"mod_cuti_sekolah"`

	JenisCuti           []string `json:"jenis_cuti" validate:"min=1,dive,required"`
	JenisLuarRasmi      []string `json:"jenis_luar_rasmi" validate:"min=1,dive,required"`
	JenisLuarTidakRasmi []string `json:"jenis_luar_tidak_rasmi" validate:"min=1,dive,required"`

	JenisCutiPeranan map[string][]string `json:"jenis_cuti_peranan"`
	JenisLuarPeranan map[string][]string `json:"jenis_luar_peranan"`
	JamMasukPeranan  map[string]string   `json:"jam_masuk_peranan"`
	JamKeluarPeranan map[string]string   `json:"jam_keluar_peranan"`
}

func (r PengaturanRequest) clocks() []string {
	out := []string{r.JamMasuk, r.JamKeluar}
	for _, v := range r.JamMasukPeranan {
		out = append(out, v)
	}
	for _, v := range r.JamKeluarPeranan {
		out = append(out, v)
	}
	return out
}

func (h *AdminHandler) GetAllHistory(c *fiber.Ctx) error {
	list, err := h.attendance.AllHistory(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *AdminHandler) UpdatePegawai(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.staff.AdminUpdate(c.UserContext(), c.Params("email"), req.toInput())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Data pegawai dikemaskini", "data": p.ToResponse()})
}

func (h *AdminHandler) DeletePegawai(c *fiber.Ctx) error {
	if err := h.staff.Delete(c.UserContext(), c.Params("email")); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Pegawai berjaya dipadam"})
}

func (h *AdminHandler) GetPengaturan(c *fiber.Ctx) error {
	s, err := h.settings.Get()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": s})
}

// SavePengaturan menimpa seluruh pengaturan (bukan merge per field).
func (h *AdminHandler) SavePengaturan(c *fiber.Ctx) error {
	var req PengaturanRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}
	for _, clock := range req.clocks() {
		if clock == "" {
			continue
		}
		if _, _, err := schedule.ParseClock(clock); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format masa tidak sah: " + clock})
		}
	}

	s := model.Pengaturan{
		TargetLat:           req.TargetLat,
		TargetLon:           req.TargetLon,
		RadiusMeter:         req.RadiusMeter,
		JamMasuk:            req.JamMasuk,
		JamKeluar:           req.JamKeluar,
		ModCutiSekolah:      req.ModCutiSekolah,
		JenisCuti:           req.JenisCuti,
		JenisLuarRasmi:      req.JenisLuarRasmi,
		JenisLuarTidakRasmi: req.JenisLuarTidakRasmi,
		JenisCutiPeranan:    req.JenisCutiPeranan,
		JenisLuarPeranan:    req.JenisLuarPeranan,
		JamMasukPeranan:     req.JamMasukPeranan,
		JamKeluarPeranan:    req.JamKeluarPeranan,
	}
	if err := h.settings.Save(s); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Pengaturan disimpan", "data": s})
}
