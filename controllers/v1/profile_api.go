package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruit-portal/controllers"
	adminshandler "recruit-portal/lib/admins"
	"recruit-portal/middleware"
	apimodels "recruit-portal/models/api"
	adminapimodels "recruit-portal/models/api/admin"
)

type profileApiController struct {
	controllers.BaseAPIController
}

func InitProfileApiRouters(app *fiber.App) {
	controller := profileApiController{}
	app.Route("profile", func(router fiber.Router) {
		router.Get("", controller.me)
		router.Post("test-password", controller.testPassword)
		router.Put("password", controller.updatePassword)
		router.Put("email", controller.updateEmail)
	})
}

// @Summary Текущий администратор
// @Tags Профиль
// @Description Пользователь из сессии клиента
// @Success 200 {object} apimodels.Response{data=authapimodels.SessionUser}
// @Failure 401 {object} apimodels.Response
// @router /api/v1/admin/profile [get]
func (c *profileApiController) me(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(middleware.GetSessionUser(ctx)))
}

// @Summary Проверка текущего пароля
// @Tags Профиль
// @Description Проверка текущего пароля
// @Param	body body	 adminapimodels.TestPasswordRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=adminapimodels.TestPasswordResponse}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/admin/profile/test-password [post]
func (c *profileApiController) testPassword(ctx *fiber.Ctx) error {
	var payload adminapimodels.TestPasswordRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.SendValidationError(ctx, err)
	}
	valid, err := adminshandler.Instance.TestPassword(ctx.UserContext(), middleware.GetAccessToken(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, adminshandler.PasswordUpdateFailed)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(adminapimodels.TestPasswordResponse{PasswordValid: valid}))
}

// @Summary Смена пароля
// @Tags Профиль
// @Description Текущий пароль проверяется перед сменой
// @Param	body body	 adminapimodels.UpdatePasswordRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/admin/profile/password [put]
func (c *profileApiController) updatePassword(ctx *fiber.Ctx) error {
	var payload adminapimodels.UpdatePasswordRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.SendValidationError(ctx, err)
	}
	msg, err := adminshandler.Instance.UpdatePassword(ctx.UserContext(), middleware.GetAccessToken(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, adminshandler.PasswordUpdateFailed)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(msg))
}

// @Summary Смена email
// @Tags Профиль
// @Description После смены email обновляется пользователь в сессии клиента
// @Param	body body	 adminapimodels.UpdateEmailRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/admin/profile/email [put]
func (c *profileApiController) updateEmail(ctx *fiber.Ctx) error {
	var payload adminapimodels.UpdateEmailRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.SendValidationError(ctx, err)
	}
	msg, err := adminshandler.Instance.UpdateEmail(ctx.UserContext(), middleware.GetCache(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, adminshandler.EmailUpdateFailed)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(msg))
}
