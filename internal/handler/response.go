package handler

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"kehadiran-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseAndValidate membaca body JSON ke req lalu menjalankan tag `validate`.
// Error yang dikembalikan adalah *fiber.Error 400, dirender oleh ErrorHandler.
func parseAndValidate(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Format data salah")
	}
	if err := validate.Struct(req); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			names := make([]string, 0, len(fields))
			for _, f := range fields {
				names = append(names, fmt.Sprintf("%s (%s)", f.Field(), f.Tag()))
			}
			return fiber.NewError(fiber.StatusBadRequest, "Data tidak valid: "+strings.Join(names, ", "))
		}
		return fiber.NewError(fiber.StatusBadRequest, "Data tidak valid")
	}
	return nil
}

// errorResponse memetakan error usecase ke status HTTP.
func errorResponse(c *fiber.Ctx, err error) error {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Message, "code": ve.Code})
	case errors.Is(err, usecase.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Emel telah didaftarkan."})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Emel atau kata laluan salah."})
	case errors.Is(err, usecase.ErrStaffNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pegawai tidak ditemui"})
	case errors.Is(err, usecase.ErrProtectedAccount):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}
	log.Printf("[HTTP] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan pada server"})
}

// ErrorHandler merender error yang lolos dari handler sebagai JSON {"error": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Terjadi kesalahan pada server"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Printf("[HTTP] %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
