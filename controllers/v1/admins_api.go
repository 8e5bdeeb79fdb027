package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruit-portal/controllers"
	adminshandler "recruit-portal/lib/admins"
	"recruit-portal/middleware"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
	adminapimodels "recruit-portal/models/api/admin"
)

type adminsApiController struct {
	controllers.BaseAPIController
}

func InitAdminsApiRouters(app *fiber.App) {
	controller := adminsApiController{}
	app.Route("admins", func(router fiber.Router) {
		router.Use(middleware.SuperAdminRole())

		router.Get("", controller.list)
		router.Post("", controller.add)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Put("toggle-status", controller.toggleStatus)
			idRoute.Delete("", controller.remove)
		})
	})
}

// @Summary Список администраторов
// @Tags Администраторы
// @Description Доступно только super_admin
// @Success 200 {object} apimodels.Response{data=[]adminapimodels.Admin}
// @Failure 403 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/admin/admins [get]
func (c *adminsApiController) list(ctx *fiber.Ctx) error {
	resp, err := adminshandler.Instance.List(ctx.UserContext(), middleware.GetAccessToken(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, adminshandler.AdminsFailedMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Добавить администратора
// @Tags Администраторы
// @Description Роль по умолчанию admin
// @Param	body body	 adminapimodels.AddAdminRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @router /api/v1/admin/admins [post]
func (c *adminsApiController) add(ctx *fiber.Ctx) error {
	var payload adminapimodels.AddAdminRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.Role == "" {
		payload.Role = models.UserRoleAdmin
	}

	if err := payload.Validate(); err != nil {
		return c.SendValidationError(ctx, err)
	}
	msg, err := adminshandler.Instance.Add(ctx.UserContext(), middleware.GetAccessToken(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, adminshandler.AdminAddFailed)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(msg))
}

// @Summary Сменить статус администратора
// @Tags Администраторы
// @Description Переводит администратора из текущего статуса в противоположный
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 adminapimodels.ToggleStatusRequest	true	"текущий статус"
// @Success 200 {object} apimodels.Response{data=adminapimodels.ToggleStatusRequest}
// @Failure 403 {object} apimodels.Response
// @router /api/v1/admin/admins/{id}/toggle-status [put]
func (c *adminsApiController) toggleStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload adminapimodels.ToggleStatusRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	next, err := adminshandler.Instance.ToggleStatus(ctx.UserContext(), middleware.GetAccessToken(ctx), id, payload.Status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, adminshandler.AdminToggleFailed)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(adminapimodels.ToggleStatusRequest{Status: next}))
}

// @Summary Удалить администратора
// @Tags Администраторы
// @Description Удаление администратора
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @router /api/v1/admin/admins/{id} [delete]
func (c *adminsApiController) remove(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = adminshandler.Instance.Remove(ctx.UserContext(), middleware.GetAccessToken(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, adminshandler.AdminRemoveFailed)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
