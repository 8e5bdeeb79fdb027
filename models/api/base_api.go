package apimodels

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Response struct {
	Status  string      `json:"status"`            //результат обработки fail/success
	Message string      `json:"message,omitempty"` //сообщение ошибки
	Data    interface{} `json:"data,omitempty"`    //данные ответа
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

// NewRedirect ответ для запросов, которым нужна повторная авторизация
func NewRedirect(message, location string) Response {
	return Response{
		Status:  "fail",
		Message: message,
		Data:    RedirectData{Redirect: location},
	}
}

type RedirectData struct {
	Redirect string `json:"redirect"`
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

// Pagination страницы списков в портале фиксированного размера
type Pagination struct {
	Page int `json:"page" query:"page"` // Страница (1,2,3..)
}

func (r Pagination) GetPage() int {
	if r.Page > 0 {
		return r.Page
	}
	return 1
}

// ID идентификатор записи бэкенда, приходит как строкой, так и числом
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

func (id ID) IsEmpty() bool {
	return strings.TrimSpace(string(id)) == ""
}
