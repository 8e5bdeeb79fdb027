package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"recruit-portal/fiberlog"
	"recruit-portal/lib/backend/client"
	apimodels "recruit-portal/models/api"
	"strings"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("Failed to read request data")
	}
	return nil
}

// GetParam копия параметра пути: без Immutable fiber отдает строку поверх буфера запроса,
// который переиспользуется после ответа
func (c *BaseAPIController) GetParam(ctx *fiber.Ctx, name string) string {
	return utils.CopyString(strings.TrimSpace(ctx.Params(name)))
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := c.GetParam(ctx, "id")
	if id == "" {
		return "", errors.New("Record id is required")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	clientID, _ := ctx.Locals(fiberlog.TagClientID).(string)
	return log.
		WithField("client_id", clientID).
		WithField("path", ctx.Path())
}

// SendError ответ бэкенда пробрасывается с его кодом и текстом, остальное отдается как 500 с fallback
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, fallback string) error {
	var formErrors apimodels.FormErrors
	if errors.As(err, &formErrors) {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.Response{
			Status:  "fail",
			Message: formErrors.Error(),
			Data:    formErrors,
		})
	}
	if errors.Is(err, client.ErrNoResponse) {
		logger.WithError(err).Warn(fallback)
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(client.NoResponseMessage))
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		logger.WithError(err).Warn(fallback)
		status := apiErr.StatusCode
		if status < fiber.StatusBadRequest {
			status = fiber.StatusBadGateway
		}
		resp := apimodels.NewError(client.UserMessage(err, fallback))
		if apiErr.SuperAdminEmail != "" {
			resp.Data = fiber.Map{"superAdminEmail": apiErr.SuperAdminEmail}
		}
		return ctx.Status(status).JSON(resp)
	}
	logger.WithError(err).Error(fallback)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(fallback))
}

// SendValidationError ошибка проверки формы до запроса к бэкенду, ошибки полей уходят в data
func (c *BaseAPIController) SendValidationError(ctx *fiber.Ctx, err error) error {
	resp := apimodels.NewError(err.Error())
	var formErrors apimodels.FormErrors
	if errors.As(err, &formErrors) {
		resp.Data = formErrors
	}
	return ctx.Status(fiber.StatusBadRequest).JSON(resp)
}
