package middleware

import (
	"github.com/gofiber/fiber/v2"
	"recruit-portal/lib/metrics"
	"strconv"
	"time"
)

// Metrics счетчики запросов по шаблону маршрута, а не по фактическому пути
func Metrics() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		route := "unmatched"
		if r := ctx.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		status := ctx.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		metrics.HTTPRequestsTotal.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
