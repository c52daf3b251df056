package middleware

import (
	"strings"

	"kehadiran-backend/internal/security"

	"github.com/gofiber/fiber/v2"
)

// Auth memvalidasi token Bearer lalu menyimpan email & flag admin ke Locals.
func Auth(tokens *security.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Ambil token dari Header Authorization
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak ditemukan"})
		}

		// Format header biasanya: "Bearer <token>"
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// 2. Parse dan Validasi Token
		claims, err := tokens.Parse(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token tidak valid atau kadaluwarsa"})
		}

		// 3. Simpan data user ke Context agar bisa dipakai di Handler
		c.Locals("email", claims.Email)
		c.Locals("is_admin", claims.IsAdmin)

		return c.Next()
	}
}

// CurrentEmail mengambil email pegawai yang sedang login.
func CurrentEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}
