package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"recruit-portal/controllers"
	applicationhandler "recruit-portal/lib/applications"
	jobshandler "recruit-portal/lib/jobs"
	"recruit-portal/middleware"
	apimodels "recruit-portal/models/api"
	candidateapimodels "recruit-portal/models/api/candidate"
	jobapimodels "recruit-portal/models/api/job"
)

const resumeFormField = "resume"

type publicJobsApiController struct {
	controllers.BaseAPIController
}

func InitPublicJobsApiRouters(app *fiber.App, resumeBodyLimit int64) {
	controller := publicJobsApiController{}
	app.Route("jobs", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":id", controller.get)
	})
	app.Route("applications", func(router fiber.Router) {
		router.Post("", middleware.WithBodyLimit(resumeBodyLimit), controller.submit)
		router.Get("check", controller.check)
	})
}

// @Summary Публичный список вакансий
// @Tags Вакансии
// @Description Только активные вакансии, отмечены те, на которые клиент уже откликнулся
// @Param   department		query	string	false	"department"
// @Param   location		query	string	false	"location"
// @Param   employmentType	query	string	false	"employment type"
// @Param   search			query	string	false	"search"
// @Success 200 {object} apimodels.Response{data=[]jobapimodels.PublicJob}
// @Failure 502 {object} apimodels.Response
// @router /api/v1/jobs [get]
func (c *publicJobsApiController) list(ctx *fiber.Ctx) error {
	var filter jobapimodels.JobFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userEmail := applicationhandler.Instance.RememberedEmail(middleware.GetCache(ctx))
	resp, err := jobshandler.Instance.PublicList(ctx.UserContext(), filter, userEmail)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, jobshandler.JobsFailedMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Публичная вакансия
// @Tags Вакансии
// @Description Активная вакансия по ИД
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.Job}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/jobs/{id} [get]
func (c *publicJobsApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := jobshandler.Instance.PublicGet(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, jobshandler.JobNotFoundMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отклик на вакансию
// @Tags Отклики
// @Description Анкета кандидата, файл резюме в поле resume либо ссылка resumeLink
// @Accept multipart/form-data
// @Param	body	formData	candidateapimodels.ApplicationForm	true	"application form"
// @Param	resume	formData	file	false	"resume file"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.Candidate}
// @Failure 400 {object} apimodels.Response{data=apimodels.FormErrors}
// @Failure 409 {object} apimodels.Response
// @Failure 413 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/applications [post]
func (c *publicJobsApiController) submit(ctx *fiber.Ctx) error {
	var payload candidateapimodels.ApplicationForm
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var resume *applicationhandler.Resume
	fileHeader, err := ctx.FormFile(resumeFormField)
	if err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, applicationhandler.UploadFailedMessage)
		}
		defer file.Close()
		resume = &applicationhandler.Resume{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
			Size:        fileHeader.Size,
			Content:     file,
		}
	}

	resp, err := applicationhandler.Instance.Submit(ctx.UserContext(), middleware.GetCache(ctx), payload, resume)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, applicationhandler.SubmitFailedMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.Response{
		Status:  "success",
		Message: applicationhandler.SubmitSuccessMessage,
		Data:    resp,
	})
}

type applicationCheckView struct {
	Email      string `json:"email,omitempty"`
	HasApplied bool   `json:"hasApplied"`
}

// @Summary Проверка отклика
// @Tags Отклики
// @Description Откликался ли клиент на вакансию с запомненного email
// @Param   jobTitle		query	string	true	"job title"
// @Success 200 {object} apimodels.Response{data=applicationCheckView}
// @router /api/v1/applications/check [get]
func (c *publicJobsApiController) check(ctx *fiber.Ctx) error {
	email := applicationhandler.Instance.RememberedEmail(middleware.GetCache(ctx))
	view := applicationCheckView{Email: email}
	if jobTitle := utils.CopyString(ctx.Query("jobTitle")); jobTitle != "" {
		view.HasApplied = applicationhandler.Instance.HasApplied(ctx.UserContext(), email, jobTitle)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
