package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid      = "pid"
	TagLatency  = "latency"
	TagStatus   = "status"
	TagMethod   = "method"
	TagPath     = "path"
	TagRoute    = "route"
	TagIP       = "ip"
	TagBody     = "body"
	TagResBody  = "resBody"
	TagClientID = "client_id"
	RequestID   = "request_id"
)

// FuncTag значение тега для записи лога
type FuncTag func(c *fiber.Ctx, d *data) interface{}

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

var funcTags = map[string]FuncTag{
	TagPid: func(_ *fiber.Ctx, d *data) interface{} {
		return d.pid
	},
	TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
		return d.end.Sub(d.start).String()
	},
	TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Response().StatusCode()
	},
	TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Method()
	},
	TagPath: func(c *fiber.Ctx, _ *data) interface{} {
		return c.Path()
	},
	TagRoute: func(c *fiber.Ctx, _ *data) interface{} {
		if r := c.Route(); r != nil {
			return r.Path
		}
		return ""
	},
	TagIP: func(c *fiber.Ctx, _ *data) interface{} {
		return c.IP()
	},
	TagBody: func(c *fiber.Ctx, _ *data) interface{} {
		return string(c.Body())
	},
	TagResBody: func(c *fiber.Ctx, _ *data) interface{} {
		return string(c.Response().Body())
	},
	TagClientID: func(c *fiber.Ctx, _ *data) interface{} {
		clientID, _ := c.Locals(TagClientID).(string)
		return clientID
	},
	RequestID: func(c *fiber.Ctx, _ *data) interface{} {
		return c.GetRespHeader(fiber.HeaderXRequestID, c.Get(fiber.HeaderXRequestID))
	},
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := funcTags[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}
