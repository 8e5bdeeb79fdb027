package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"recruit-portal/fiberlog"
	sessionstore "recruit-portal/lib/session/store"
	"time"
)

const clientCookieTTL = 365 * 24 * time.Hour

// ClientID выдает браузеру идентификатор клиента, по нему хранится вся клиентская сессия
func ClientID(cookieName string, secure bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// id ключ клиентских карт, поэтому копируется из буфера запроса
		clientID := utils.CopyString(ctx.Cookies(cookieName))
		if _, err := uuid.Parse(clientID); err != nil {
			clientID = uuid.NewString()
			ctx.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    clientID,
				Path:     "/",
				Expires:  time.Now().Add(clientCookieTTL),
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		ctx.Locals(fiberlog.TagClientID, clientID)
		return ctx.Next()
	}
}

func GetClientID(ctx *fiber.Ctx) string {
	clientID, _ := ctx.Locals(fiberlog.TagClientID).(string)
	return clientID
}

// GetCache кэш сессии текущего клиента
func GetCache(ctx *fiber.Ctx) *sessionstore.Cache {
	return sessionstore.NewCache(sessionstore.Instance, GetClientID(ctx))
}
