package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS для JSON API. origins - список через запятую или "*";
// с "*" cookie сессии не передаются.
func CORS(origins string) fiber.Handler {
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	allow := strings.Join(parts, ",")

	return cors.New(cors.Config{
		AllowOrigins:     allow,
		AllowMethods:     strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions}, ","),
		AllowHeaders:     "Content-Type,Accept",
		AllowCredentials: allow != "*",
		MaxAge:           600,
	})
}
