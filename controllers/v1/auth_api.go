package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruit-portal/controllers"
	authhandler "recruit-portal/lib/auth"
	sessionguard "recruit-portal/lib/session/guard"
	"recruit-portal/middleware"
	apimodels "recruit-portal/models/api"
	authapimodels "recruit-portal/models/api/auth"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		router.Post("login", controller.login)
		router.Post("forgot-password", controller.forgotPassword)
		router.Post("change-temporary-password", controller.changeTemporaryPassword)
		router.Post("logout", controller.logout)
		router.Get("session", controller.session)
	})
}

// @Summary Вход администратора
// @Tags Аутентификация
// @Description Вход администратора, токен и пользователь сохраняются в сессии клиента
// @Param	body				body		authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.LoginResult}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.SendValidationError(ctx, err)
	}
	resp, err := authhandler.Instance.Login(ctx.UserContext(), middleware.GetCache(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, authhandler.LoginFailedMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Запрос временного пароля
// @Tags Аутентификация
// @Description Бэкенд отправляет временный пароль на почту
// @Param	body				body		authapimodels.ForgotPasswordRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/auth/forgot-password [post]
func (c *authApiController) forgotPassword(ctx *fiber.Ctx) error {
	var payload authapimodels.ForgotPasswordRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.SendValidationError(ctx, err)
	}
	msg, err := authhandler.Instance.ForgotPassword(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, authhandler.ForgotFailedRetryMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(msg))
}

// @Summary Смена временного пароля
// @Tags Аутентификация
// @Description Смена временного пароля на постоянный
// @Param	body				body		authapimodels.ChangeTemporaryPasswordRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=apimodels.RedirectData}
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/auth/change-temporary-password [post]
func (c *authApiController) changeTemporaryPassword(ctx *fiber.Ctx) error {
	var payload authapimodels.ChangeTemporaryPasswordRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return c.SendValidationError(ctx, err)
	}
	msg, err := authhandler.Instance.ChangeTemporaryPassword(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, authhandler.ChangeFailedRetryMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.Response{
		Status:  "success",
		Message: msg,
		Data:    apimodels.RedirectData{Redirect: loginRoute()},
	})
}

// @Summary Выход
// @Tags Аутентификация
// @Description Очищает сессию клиента и отменяет таймер автовыхода, повторный вызов безопасен
// @Success 200 {object} apimodels.Response{data=apimodels.RedirectData}
// @router /api/v1/auth/logout [post]
func (c *authApiController) logout(ctx *fiber.Ctx) error {
	cache := middleware.GetCache(ctx)
	route := authhandler.Instance.Logout(cache)
	dropClientState(cache.ClientID())
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(apimodels.RedirectData{Redirect: route}))
}

// @Summary Состояние сессии
// @Tags Аутентификация
// @Description Решение проверки сессии для текущего клиента
// @Success 200 {object} apimodels.Response{data=authapimodels.SessionView}
// @router /api/v1/auth/session [get]
func (c *authApiController) session(ctx *fiber.Ctx) error {
	result := sessionguard.Instance.Evaluate(ctx.UserContext(), middleware.GetCache(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result.View()))
}
