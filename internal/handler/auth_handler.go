package handler

import (
	"kehadiran-backend/internal/middleware"
	"kehadiran-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	staff *usecase.StaffUsecase
}

func NewAuthHandler(staff *usecase.StaffUsecase) *AuthHandler {
	return &AuthHandler{staff: staff}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Nama     string `json:"nama" validate:"required"`
	Jabatan  string `json:"jabatan"`
	Gred     string `json:"gred"`
	NoHP     string `json:"no_hp"`
	Password string `json:"password" validate:"omitempty,min=4"`
	Foto     string `json:"foto"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ProfileRequest struct {
	Nama            *string `json:"nama"`
	Jabatan         *string `json:"jabatan"`
	Role            *string `json:"role"`
	Gred            *string `json:"gred"`
	TarikhLantikan  *string `json:"tarikh_lantikan"`
	NoHP            *string `json:"no_hp"`
	Foto            *string `json:"foto"`
	Password        *string `json:"password" validate:"omitempty,min=4"`
	IsAdmin         *bool   `json:"is_admin"`
	JamMasukKhusus  *string `json:"jam_masuk_khusus"`
	JamKeluarKhusus *string `json:"jam_keluar_khusus"`
}

func (r ProfileRequest) toInput() usecase.ProfileInput {
	return usecase.ProfileInput{
		Nama:            r.Nama,
		Jabatan:         r.Jabatan,
		Role:            r.Role,
		Gred:            r.Gred,
		TarikhLantikan:  r.TarikhLantikan,
		NoHP:            r.NoHP,
		Foto:            r.Foto,
		Password:        r.Password,
		IsAdmin:         r.IsAdmin,
		JamMasukKhusus:  r.JamMasukKhusus,
		JamKeluarKhusus: r.JamKeluarKhusus,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.staff.Register(c.UserContext(), usecase.RegisterInput{
		Email:    req.Email,
		Nama:     req.Nama,
		Jabatan:  req.Jabatan,
		Gred:     req.Gred,
		NoHP:     req.NoHP,
		Password: req.Password,
		Foto:     req.Foto,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Pendaftaran berjaya", "data": p.ToResponse()})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.staff.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Login berhasil", "data": res})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.staff.Logout(middleware.CurrentEmail(c))
	return c.JSON(fiber.Map{"message": "Log keluar berjaya"})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	p, err := h.staff.Profile(middleware.CurrentEmail(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": p.ToResponse()})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.staff.UpdateProfile(c.UserContext(), middleware.CurrentEmail(c), req.toInput())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profil dikemaskini", "data": p.ToResponse()})
}

// Directory menampilkan semua pegawai beserta status hari ini.
func (h *AuthHandler) Directory(c *fiber.Ctx) error {
	rows, err := h.staff.Directory(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": rows})
}
