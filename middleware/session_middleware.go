package middleware

import (
	"github.com/gofiber/fiber/v2"
	sessionguard "recruit-portal/lib/session/guard"
	apimodels "recruit-portal/models/api"
	authapimodels "recruit-portal/models/api/auth"
	"strings"
)

const sessionUserKey = "sessionUser"

const SessionRequiredMessage = "Please log in to continue"

// SessionRequired проверка сессии для админских маршрутов
func SessionRequired(loginRoute string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		result := sessionguard.Instance.Evaluate(ctx.UserContext(), GetCache(ctx))
		if !result.Authenticated {
			if wantsHTML(ctx) {
				return ctx.Redirect(loginRoute, fiber.StatusFound)
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewRedirect(SessionRequiredMessage, loginRoute))
		}
		ctx.Locals(sessionUserKey, result.User)
		return ctx.Next()
	}
}

func GetSessionUser(ctx *fiber.Ctx) *authapimodels.SessionUser {
	user, _ := ctx.Locals(sessionUserKey).(*authapimodels.SessionUser)
	return user
}

// GetAccessToken токен из кэша сессии клиента
func GetAccessToken(ctx *fiber.Ctx) string {
	return GetCache(ctx).AccessToken()
}

// wantsHTML переход браузера по ссылке, а не запрос приложения
func wantsHTML(ctx *fiber.Ctx) bool {
	if ctx.Method() != fiber.MethodGet {
		return false
	}
	if ctx.XHR() {
		return false
	}
	return strings.Contains(ctx.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}
