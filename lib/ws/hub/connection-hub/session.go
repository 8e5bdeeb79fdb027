package connectionhub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	sendBuffer   = 8
	writeTimeout = 5 * time.Second
	pingInterval = 30 * time.Second
)

// clientSession исходящий поток событий одного клиента портала
type clientSession struct {
	clientID string
	conn     *websocket.Conn
	sendCh   chan any
	ctx      context.Context
	stop     func()
}

func newSession(clientID string, conn *websocket.Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		clientID: clientID,
		conn:     conn,
		sendCh:   make(chan any, sendBuffer),
		ctx:      ctx,
		stop:     cancelFn,
	}
	go sess.startSend()
	return sess
}

func (s *clientSession) connected() bool {
	return s.conn != nil && s.conn.Conn != nil
}

func (s *clientSession) push(msg any) {
	select {
	case <-s.ctx.Done():
	case s.sendCh <- msg:
	}
}

func (s *clientSession) startSend() {
	logger := log.WithField("client_id", s.clientID)
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			s.close(logger)
			return
		case <-ticker.C:
			if !s.connected() {
				continue
			}
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			if err != nil {
				logger.WithError(err).Debug("ping не доставлен")
			}
		case msg := <-s.sendCh:
			if err := s.send(msg); err != nil {
				logger.WithError(err).Error("ошибка отправки события")
				continue
			}
			logger.Debugf("отправлено событие: %+v", msg)
		}
	}
}

func (s *clientSession) send(msg any) error {
	if !s.connected() {
		return nil
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(msg)
}

func (s *clientSession) close(logger *log.Entry) {
	if !s.connected() {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		logger.WithError(err).Debug("соединение уже закрыто")
	}
}
