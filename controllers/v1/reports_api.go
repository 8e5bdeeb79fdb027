package apiv1

import (
	"context"
	"github.com/gofiber/fiber/v2"
	"recruit-portal/controllers"
	"recruit-portal/lib/backend/client"
	candidateshandler "recruit-portal/lib/candidates"
	reportshandler "recruit-portal/lib/reports"
	"recruit-portal/middleware"
	apimodels "recruit-portal/models/api"
)

type reportsApiController struct {
	controllers.BaseAPIController
}

func InitReportsApiRouters(app *fiber.App) {
	controller := reportsApiController{}
	app.Route("reports", func(router fiber.Router) {
		router.Get("candidate-stats", controller.candidateStats)
		router.Get("jobs.csv", controller.export(reportshandler.Provider.JobsCSV))
		router.Get("candidates.csv", controller.export(reportshandler.Provider.CandidatesCSV))
		router.Get("candidates.xlsx", controller.export(reportshandler.Provider.CandidatesXLSX))
		router.Get("candidates.pdf", controller.export(reportshandler.Provider.CandidatesPDF))
	})
}

// @Summary Статистика кандидатов
// @Tags Отчеты
// @Description Количество кандидатов по статусам и отделам
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateStats}
// @Failure 502 {object} apimodels.Response
// @router /api/v1/admin/reports/candidate-stats [get]
func (c *reportsApiController) candidateStats(ctx *fiber.Ctx) error {
	resp, err := reportshandler.Instance.CandidateStats(ctx.UserContext(), middleware.GetAccessToken(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, candidateshandler.CandidateStatsFailedMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выгрузка отчета
// @Tags Отчеты
// @Description jobs.csv и candidates.csv формирует бэкенд, candidates.xlsx и candidates.pdf собираются порталом
// @Success 200 {file} file
// @Failure 502 {object} apimodels.Response
// @router /api/v1/admin/reports/{file} [get]
func (c *reportsApiController) export(build func(p reportshandler.Provider, ctx context.Context, accessToken string) (*client.File, error)) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		file, err := build(reportshandler.Instance, ctx.UserContext(), middleware.GetAccessToken(ctx))
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, reportshandler.ExportFailedMessage)
		}
		return sendFile(ctx, file)
	}
}
