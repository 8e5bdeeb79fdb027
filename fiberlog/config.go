package fiberlog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Config настройки логирования запросов
type Config struct {
	// Next пропускает запрос без записи в лог
	Next func(c *fiber.Ctx) bool

	// SkipPaths служебные пути, которые не логируются (/metrics, /health)
	SkipPaths []string

	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault настройки по умолчанию
var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		TagClientID,
	},
}

func (c Config) skip(ctx *fiber.Ctx) bool {
	if ctx.Method() == fiber.MethodOptions {
		return true
	}
	if c.Next != nil && c.Next(ctx) {
		return true
	}
	path := ctx.Path()
	for _, p := range c.SkipPaths {
		if p == path {
			return true
		}
	}
	return false
}
