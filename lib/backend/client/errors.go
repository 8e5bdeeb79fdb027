package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
	"net/http"
	"strings"
)

// ErrNoResponse бэкенд не ответил (сеть, таймаут, отмена запроса)
var ErrNoResponse = errors.New("no response received from server")

const NoResponseMessage = "No response received from server. Please check your connection."

// APIError бэкенд ответил ошибкой
type APIError struct {
	StatusCode      int
	Message         string
	SuperAdminEmail string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend responded with status %v", e.StatusCode)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

type errorBody struct {
	Message         json.RawMessage `json:"message"`
	Error           json.RawMessage `json:"error"`
	SuperAdminEmail string          `json:"superAdminEmail"`
}

// newAPIError сообщение берется из message, затем из error, иначе тело ответа целиком
func newAPIError(statusCode int, body []byte) *APIError {
	result := &APIError{StatusCode: statusCode}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return result
	}
	parsed := errorBody{}
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		var text string
		if json.Unmarshal(trimmed, &text) == nil {
			result.Message = text
		} else if trimmed[0] != '{' && trimmed[0] != '[' {
			result.Message = string(trimmed)
		}
		return result
	}
	result.SuperAdminEmail = parsed.SuperAdminEmail
	if message := rawMessage(parsed.Message); message != "" {
		result.Message = message
	} else {
		result.Message = rawMessage(parsed.Error)
	}
	return result
}

func rawMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return ""
}

// UserMessage текст для пользователя: сетевая ошибка, сообщение бэкенда или fallback
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoResponse) {
		return NoResponseMessage
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusCode код ответа бэкенда, 0 если ответа не было
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
