package middleware

import "github.com/gofiber/fiber/v2"

// AdminOnly harus dipasang setelah Auth.
func AdminOnly(c *fiber.Ctx) error {
	isAdmin, ok := c.Locals("is_admin").(bool)
	if !ok || !isAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: Anda bukan Admin"})
	}
	return c.Next()
}
