package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	apimodels "recruit-portal/models/api"
)

// WithBodyLimit отсекает анкету с резюме по Content-Length до разбора multipart
func WithBodyLimit(limit int64) fiber.Handler {
	message := fmt.Sprintf("Request body too large. Maximum allowed: %d bytes", limit)
	return func(c *fiber.Ctx) error {
		// -1 и -2 у fasthttp: длина неизвестна (chunked), тогда ограничивает BodyLimit сервера
		size := int64(c.Request().Header.ContentLength())
		if size > limit {
			log.WithFields(log.Fields{
				"client_id": GetClientID(c),
				"size":      size,
				"limit":     limit,
			}).Warn("превышен размер тела запроса")
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(apimodels.NewError(message))
		}
		return c.Next()
	}
}
