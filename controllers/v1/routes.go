package apiv1

import (
	"fmt"
	"github.com/gofiber/fiber/v2"
	"recruit-portal/config"
	"recruit-portal/lib/backend/client"
	candidateshandler "recruit-portal/lib/candidates"
	statusworkflow "recruit-portal/lib/candidates/workflow"
	"time"
)

const defaultPreviewTimeout = 10 * time.Second

func loginRoute() string {
	if config.Conf == nil {
		return "/login"
	}
	return config.Conf.App.LoginRoute
}

func previewTimeout() time.Duration {
	if config.Conf == nil || config.Conf.Backend.TimeoutSec <= 0 {
		return defaultPreviewTimeout
	}
	return config.Conf.BackendTimeout()
}

func sendFile(ctx *fiber.Ctx, file *client.File) error {
	contentType := file.ContentType
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
	return ctx.Status(fiber.StatusOK).Send(file.Content)
}

// dropClientState после выхода список кандидатов и окно смены статуса клиента не нужны
func dropClientState(clientID string) {
	if candidateshandler.Instance != nil {
		candidateshandler.Instance.DropClient(clientID)
	}
	if statusworkflow.Instance != nil {
		statusworkflow.Instance.Drop(clientID)
	}
}
