package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"recruit-portal/controllers"
	jobshandler "recruit-portal/lib/jobs"
	"recruit-portal/middleware"
	apimodels "recruit-portal/models/api"
	jobapimodels "recruit-portal/models/api/job"
	"time"
)

type jobsApiController struct {
	controllers.BaseAPIController
}

func InitJobsApiRouters(app *fiber.App) {
	controller := jobsApiController{}
	app.Route("jobs", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get("stats", controller.stats)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("toggle-status", controller.toggleStatus)
		})
	})
}

// @Summary Список вакансий
// @Tags Управление вакансиями
// @Description Все вакансии, включая неактивные
// @Param   department		query	string	false	"department"
// @Param   location		query	string	false	"location"
// @Param   employmentType	query	string	false	"employment type"
// @Param   search			query	string	false	"search"
// @Param   isActive		query	bool	false	"active only"
// @Success 200 {object} apimodels.Response{data=[]jobapimodels.Job}
// @Failure 401 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/admin/jobs [get]
func (c *jobsApiController) list(ctx *fiber.Ctx) error {
	var filter jobapimodels.JobFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobshandler.Instance.List(ctx.UserContext(), middleware.GetAccessToken(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, jobshandler.JobsFailedMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создание
// @Tags Управление вакансиями
// @Description Создание вакансии
// @Param	body body	 jobapimodels.JobForm	true	"request body"
// @Success 200 {object} apimodels.Response{data=jobapimodels.Job}
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/admin/jobs [post]
func (c *jobsApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobForm
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(time.Now()); err != nil {
		return c.SendValidationError(ctx, err)
	}
	resp, err := jobshandler.Instance.Create(ctx.UserContext(), middleware.GetAccessToken(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, jobshandler.JobSaveFailed)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение по ИД
// @Tags Управление вакансиями
// @Description Получение по ИД
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.Job}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/admin/jobs/{id} [get]
func (c *jobsApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobshandler.Instance.Get(ctx.UserContext(), middleware.GetAccessToken(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, jobshandler.JobNotFoundMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Управление вакансиями
// @Description Обновление вакансии
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 jobapimodels.JobForm	true	"request body"
// @Success 200 {object} apimodels.Response{data=jobapimodels.Job}
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/admin/jobs/{id} [put]
func (c *jobsApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload jobapimodels.JobForm
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(time.Now()); err != nil {
		return c.SendValidationError(ctx, err)
	}
	resp, err := jobshandler.Instance.Update(ctx.UserContext(), middleware.GetAccessToken(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, jobshandler.JobSaveFailed)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление
// @Tags Управление вакансиями
// @Description Удаление вакансии
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/admin/jobs/{id} [delete]
func (c *jobsApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = jobshandler.Instance.Delete(ctx.UserContext(), middleware.GetAccessToken(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, jobshandler.JobDeleteFailed)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена активности
// @Tags Управление вакансиями
// @Description Активная вакансия становится неактивной и наоборот
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.Job}
// @Failure 502 {object} apimodels.Response
// @router /api/v1/admin/jobs/{id}/toggle-status [put]
func (c *jobsApiController) toggleStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobshandler.Instance.ToggleStatus(ctx.UserContext(), middleware.GetAccessToken(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, jobshandler.JobToggleFailed)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Статистика вакансий
// @Tags Управление вакансиями
// @Description Статистика вакансий с бэкенда
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobStats}
// @Failure 502 {object} apimodels.Response
// @router /api/v1/admin/jobs/stats [get]
func (c *jobsApiController) stats(ctx *fiber.Ctx) error {
	resp, err := jobshandler.Instance.Stats(ctx.UserContext(), middleware.GetAccessToken(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, jobshandler.JobStatsFailed)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
