package middleware

import "github.com/gofiber/fiber/v2"

// NoStore marks responses as not cacheable. Catalogue records are fetched live and may change
// upstream at any time.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
