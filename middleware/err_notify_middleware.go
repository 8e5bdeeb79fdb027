package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	apimodels "recruit-portal/models/api"
)

var notifyClient = &http.Client{Timeout: 5 * time.Second}

type errNotification struct {
	Code      int    `json:"code"`
	Method    string `json:"method"`
	Route     string `json:"route"`
	ClientID  string `json:"client_id"`
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
}

// ErrNotify отправляет ответы 5xx на внешний адрес оповещений, тело запроса не передается
func ErrNotify(addr string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		code := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
		}
		if code < fiber.StatusInternalServerError {
			return err
		}
		notification := errNotification{
			Code:      code,
			Method:    c.Method(),
			Route:     c.OriginalURL(),
			ClientID:  GetClientID(c),
			RequestID: c.GetRespHeader(fiber.HeaderXRequestID),
			Error:     responseMessage(c.Response().Body(), err),
		}
		if r := c.Route(); r != nil {
			notification.Route = r.Path
		}
		go sendNotification(addr, notification)
		return err
	}
}

func responseMessage(body []byte, err error) string {
	var response apimodels.Response
	if jsonErr := json.Unmarshal(body, &response); jsonErr == nil && response.Message != "" {
		return response.Message
	}
	if err != nil {
		return err.Error()
	}
	return string(body)
}

func sendNotification(addr string, notification errNotification) {
	logger := log.WithField("client_id", notification.ClientID)
	payload, err := json.Marshal(notification)
	if err != nil {
		logger.WithError(err).Warn("ошибка формирования оповещения об ошибке")
		return
	}
	resp, err := notifyClient.Post(addr, fiber.MIMEApplicationJSON, bytes.NewReader(payload))
	if err != nil {
		logger.WithError(err).Warn("ошибка отправки оповещения об ошибке")
		return
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		logger.WithField("status", resp.StatusCode).Warn("сервис оповещений отклонил сообщение")
	}
}
