package apiv1

import (
	"context"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"recruit-portal/controllers"
	"recruit-portal/lib/backend/client"
	candidateshandler "recruit-portal/lib/candidates"
	statusworkflow "recruit-portal/lib/candidates/workflow"
	"recruit-portal/middleware"
	apimodels "recruit-portal/models/api"
	candidateapimodels "recruit-portal/models/api/candidate"
)

const CandidateNotInListMessage = "Candidate is not in the loaded list. Please refresh the list."

type candidatesApiController struct {
	controllers.BaseAPIController
}

func InitCandidatesApiRouters(app *fiber.App) {
	controller := candidatesApiController{}
	app.Route("candidates", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("page", controller.page)
		router.Get("resume/:name", controller.downloadResume)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Post("status-change", controller.initiateStatusChange)
		})
	})
	app.Route("status-change", func(router fiber.Router) {
		router.Get("", controller.statusChangeView)
		router.Patch("", controller.editStatusChange)
		router.Post("confirm", controller.confirmStatusChange)
		router.Delete("", controller.cancelStatusChange)
	})
}

// @Summary Список кандидатов
// @Tags Кандидаты
// @Description Загружает кандидатов по фильтру и возвращает страницу
// @Param   department		query	string	false	"department"
// @Param   status			query	string	false	"status"
// @Param   search			query	string	false	"search"
// @Param   appliedDate		query	string	false	"applied date"
// @Param   page			query	int		false	"page"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidatePage}
// @Failure 401 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/admin/candidates [get]
func (c *candidatesApiController) list(ctx *fiber.Ctx) error {
	var filter candidateapimodels.CandidateFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var pagination apimodels.Pagination
	if err := ctx.QueryParser(&pagination); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidateshandler.Instance.Fetch(ctx.UserContext(), middleware.GetClientID(ctx), middleware.GetAccessToken(ctx), filter, pagination.GetPage())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, candidateshandler.CandidatesFailedMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Страница загруженного списка
// @Tags Кандидаты
// @Description Страница уже загруженного списка без обращения к бэкенду
// @Param   page			query	int		false	"page"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidatePage}
// @router /api/v1/admin/candidates/page [get]
func (c *candidatesApiController) page(ctx *fiber.Ctx) error {
	var pagination apimodels.Pagination
	if err := ctx.QueryParser(&pagination); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp := candidateshandler.Instance.Page(middleware.GetClientID(ctx), pagination.GetPage())
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Кандидат
// @Tags Кандидаты
// @Description Карточка кандидата по ИД
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.Candidate}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/admin/candidates/{id} [get]
func (c *candidatesApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := candidateshandler.Instance.Get(ctx.UserContext(), middleware.GetAccessToken(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, candidateshandler.CandidateNotFoundMessage)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Скачать резюме
// @Tags Кандидаты
// @Description Файл резюме кандидата
// @Param   name          		path    string  				    	true         "file name"
// @Success 200 {file} file
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/admin/candidates/resume/{name} [get]
func (c *candidatesApiController) downloadResume(ctx *fiber.Ctx) error {
	name := c.GetParam(ctx, "name")
	if name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(candidateshandler.ResumeNotFoundMessage))
	}
	file, err := candidateshandler.Instance.DownloadResume(ctx.UserContext(), middleware.GetAccessToken(ctx), name)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, candidateshandler.ResumeFailedMessage)
	}
	return sendFile(ctx, file)
}

// @Summary Начать смену статуса
// @Tags Смена статуса
// @Description Открывает окно смены статуса, превью письма загружается в фоне
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 candidateapimodels.InitiateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=statusworkflow.View}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/admin/candidates/{id}/status-change [post]
func (c *candidatesApiController) initiateStatusChange(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.InitiateRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return c.SendValidationError(ctx, err)
	}

	workflow := statusworkflow.Instance.Get(middleware.GetClientID(ctx))
	ticket, opened, err := workflow.Initiate(id, payload.NewStatus)
	if err != nil {
		return c.sendWorkflowError(ctx, err)
	}
	if !opened {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(CandidateNotInListMessage))
	}

	logger := c.GetLogger(ctx)
	go func() {
		previewCtx, cancel := context.WithTimeout(context.Background(), previewTimeout())
		defer cancel()
		if err := workflow.LoadPreview(previewCtx, ticket); err != nil && !errors.Is(err, statusworkflow.ErrStalePreview) {
			logger.WithError(err).Warn("ошибка загрузки превью письма")
		}
	}()
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(workflow.View()))
}

// @Summary Окно смены статуса
// @Tags Смена статуса
// @Description Текущее состояние окна смены статуса клиента
// @Success 200 {object} apimodels.Response{data=statusworkflow.View}
// @router /api/v1/admin/status-change [get]
func (c *candidatesApiController) statusChangeView(ctx *fiber.Ctx) error {
	workflow := statusworkflow.Instance.Get(middleware.GetClientID(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(workflow.View()))
}

// @Summary Правка письма
// @Tags Смена статуса
// @Description Правка текста, получателя или темы письма
// @Param	body body	 candidateapimodels.EditEmailRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=statusworkflow.View}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/admin/status-change [patch]
func (c *candidatesApiController) editStatusChange(ctx *fiber.Ctx) error {
	var payload candidateapimodels.EditEmailRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return c.SendValidationError(ctx, err)
	}

	workflow := statusworkflow.Instance.Get(middleware.GetClientID(ctx))
	view := workflow.View()
	if payload.Content != nil {
		if err := workflow.EditContent(*payload.Content); err != nil {
			return c.sendWorkflowError(ctx, err)
		}
	}
	if payload.RecipientEmail != nil || payload.RecipientName != nil {
		email := view.EmailDetails.RecipientEmail
		if payload.RecipientEmail != nil {
			email = *payload.RecipientEmail
		}
		name := view.EmailDetails.RecipientName
		if payload.RecipientName != nil {
			name = *payload.RecipientName
		}
		if err := workflow.EditRecipient(email, name); err != nil {
			return c.sendWorkflowError(ctx, err)
		}
	}
	if payload.Subject != nil {
		if err := workflow.EditSubject(*payload.Subject); err != nil {
			return c.sendWorkflowError(ctx, err)
		}
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(workflow.View()))
}

// @Summary Подтвердить смену статуса
// @Tags Смена статуса
// @Description Отправляет смену статуса с письмом, повторное подтверждение во время отправки отклоняется
// @Success 200 {object} apimodels.Response{data=candidateapimodels.Candidate}
// @Failure 400 {object} apimodels.Response{data=statusworkflow.View}
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response{data=statusworkflow.View}
// @router /api/v1/admin/status-change/confirm [post]
func (c *candidatesApiController) confirmStatusChange(ctx *fiber.Ctx) error {
	workflow := statusworkflow.Instance.Get(middleware.GetClientID(ctx))
	resp, err := workflow.ConfirmCommit(ctx.UserContext())
	if err != nil {
		if errors.Is(err, statusworkflow.ErrCommitInFlight) || errors.Is(err, statusworkflow.ErrNotOpen) {
			return c.sendWorkflowError(ctx, err)
		}
		view := workflow.View()
		c.GetLogger(ctx).WithError(err).Warn("смена статуса не выполнена")
		return ctx.Status(commitErrorStatus(err)).JSON(apimodels.Response{
			Status:  "fail",
			Message: view.Error,
			Data:    view,
		})
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.Response{
		Status:  "success",
		Message: statusworkflow.CommitSuccessMessage,
		Data:    resp,
	})
}

// @Summary Отменить смену статуса
// @Tags Смена статуса
// @Description Закрывает окно без обращения к бэкенду
// @Success 200 {object} apimodels.Response{data=statusworkflow.View}
// @Failure 409 {object} apimodels.Response
// @router /api/v1/admin/status-change [delete]
func (c *candidatesApiController) cancelStatusChange(ctx *fiber.Ctx) error {
	workflow := statusworkflow.Instance.Get(middleware.GetClientID(ctx))
	if err := workflow.Cancel(); err != nil {
		return c.sendWorkflowError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(workflow.View()))
}

func (c *candidatesApiController) sendWorkflowError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, statusworkflow.ErrCommitInFlight), errors.Is(err, statusworkflow.ErrNotOpen):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(errors.Cause(err).Error()))
	case errors.Is(err, statusworkflow.ErrInvalidStatus):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, statusworkflow.CommitFailedMessage)
}

// commitErrorStatus ошибка валидации письма до запроса дает 400, ошибка бэкенда его код
func commitErrorStatus(err error) int {
	if errors.Is(err, client.ErrNoResponse) {
		return fiber.StatusBadGateway
	}
	code := client.StatusCode(err)
	switch {
	case code >= fiber.StatusBadRequest:
		return code
	case code != 0:
		return fiber.StatusBadGateway
	}
	return fiber.StatusBadRequest
}
