package wsclient

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	// клиент ничего не присылает кроме pong и служебных сообщений
	maxMessageSize = 1024
	// ping отправляет хаб каждые 30 секунд
	pongWait = 70 * time.Second
)

// WsClient входящая сторона соединения с событиями портала
type WsClient struct {
	conn     *websocket.Conn
	clientID string
	logger   *log.Entry
}

func NewClient(clientID string, c *websocket.Conn) *WsClient {
	return &WsClient{
		conn:     c,
		clientID: clientID,
		logger:   log.WithField("client_id", clientID),
	}
}

// Dispatch держит соединение до закрытия, входящие сообщения портал не обрабатывает
func (c *WsClient) Dispatch() {
	if c.conn == nil {
		return
	}
	c.conn.SetReadLimit(maxMessageSize)
	c.extendDeadline()
	c.conn.SetPongHandler(func(string) error {
		c.extendDeadline()
		return nil
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				c.logger.WithError(err).Warn("соединение закрыто с ошибкой")
			}
			return
		}
		c.extendDeadline()
		c.logger.WithField("size", len(data)).Debug("входящее ws сообщение пропущено")
	}
}

func (c *WsClient) extendDeadline() {
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.WithError(err).Debug("ошибка установки read deadline")
	}
}
