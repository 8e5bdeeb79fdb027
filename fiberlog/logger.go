package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields вычисляет значения тегов, пустые строки не попадают в запись
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields, len(ftm))
	for k, ft := range ftm {
		value := ft(c, d)
		if strValue, ok := value.(string); ok && strValue == "" {
			continue
		}
		f[k] = value
	}
	return f
}

// New middleware логирования запросов портала
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		if cfg.skip(c) {
			return c.Next()
		}
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()

		entry := logger.WithFields(getLogrusFields(ftm, c, d))
		if err != nil {
			entry = entry.WithError(err)
		}
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		message := getMessage(c)
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error(message)
		case status >= fiber.StatusBadRequest:
			entry.Warn(message)
		default:
			entry.Info(message)
		}
		return err
	}
}

func getMessage(c *fiber.Ctx) string {
	if c.Get(fiber.HeaderUpgrade) != "" {
		return "запрос ws"
	}
	return "запрос api"
}
