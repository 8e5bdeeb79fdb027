package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	wsclient "recruit-portal/lib/ws/client"
	connectionhub "recruit-portal/lib/ws/hub/connection-hub"
	"recruit-portal/middleware"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("clientID", middleware.GetClientID(ctx))
		return ctx.Next()
	})
	app.Get("/", websocket.New(eventsHandler))
}

// @Summary События портала
// @Tags Websocket
// @Description Смена статуса кандидата, изменения вакансий, деактивация и выход из сессии
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 426
// @router /ws [get]
func eventsHandler(c *websocket.Conn) {
	clientID, _ := c.Locals("clientID").(string)
	client := wsclient.NewClient(clientID, c)
	connectionhub.Instance.AddClient(clientID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(clientID, c)
	}()
	client.Dispatch()
}
