package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"recruit-portal/controllers"
	layoutshell "recruit-portal/lib/session/layout"
	statspoller "recruit-portal/lib/stats"
	"recruit-portal/middleware"
	apimodels "recruit-portal/models/api"
)

type dashboardApiController struct {
	controllers.BaseAPIController
}

// InitLayoutApiRouters каркас админки проверяется без SessionRequired, иначе деактивированный пользователь не увидит предупреждение
func InitLayoutApiRouters(app *fiber.App) {
	controller := dashboardApiController{}
	app.Get("layout", controller.layout)
}

func InitDashboardApiRouters(app *fiber.App) {
	controller := dashboardApiController{}
	app.Route("dashboard", func(router fiber.Router) {
		router.Get("stats", controller.stats)
	})
}

// @Summary Каркас админки
// @Tags Админка
// @Description Пользователь, меню и предупреждение о деактивации с таймером автовыхода
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.ShellView}
// @router /api/v1/admin/layout [get]
func (c *dashboardApiController) layout(ctx *fiber.Ctx) error {
	view := layoutshell.Instance.Observe(middleware.GetCache(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Статистика дашборда
// @Tags Админка
// @Description Последний снимок периодического обновления
// @Success 200 {object} apimodels.Response{data=dashboardapimodels.StatsSnapshot}
// @Failure 503 {object} apimodels.Response
// @router /api/v1/admin/dashboard/stats [get]
func (c *dashboardApiController) stats(ctx *fiber.Ctx) error {
	resp, err := statspoller.Instance.Snapshot(ctx.UserContext(), middleware.GetAccessToken(ctx))
	if err != nil {
		if errors.Is(err, statspoller.ErrNoSnapshot) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, statspoller.ErrNoSnapshot.Error())
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
