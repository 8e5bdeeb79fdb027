package middleware

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
)

const SuperAdminOnlyMessage = "Only Super Admins can manage other admins."

// RoleRequired ставится после SessionRequired, allowed проверяет роль пользователя сессии
func RoleRequired(allowed func(role models.UserRole) bool, message string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := GetSessionUser(ctx)
		if user == nil || !allowed(user.Role) {
			logger := log.WithField("client_id", GetClientID(ctx))
			if user != nil {
				logger = logger.WithField("role", user.Role)
			}
			logger.Warn("недостаточно прав")
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(message))
		}
		return ctx.Next()
	}
}

// SuperAdminRole управление администраторами
func SuperAdminRole() fiber.Handler {
	return RoleRequired(models.UserRole.CanManageAdmins, SuperAdminOnlyMessage)
}
