package connectionhub

import (
	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	wsmodels "recruit-portal/models/ws"
	"sync"
	"time"
)

// сколько событий храним для клиента без активного соединения
const maxPending = 20

type Provider interface {
	AddClient(clientID string, conn *websocket.Conn)
	DeleteClient(clientID string, conn *websocket.Conn)
	SendMessage(msg wsmodels.ServerMessage)
	Broadcast(msg wsmodels.ServerMessage)
	IsConnected(clientID string) bool
}

var Instance Provider

func Init() {
	Instance = New()
}

func New() Provider {
	return &impl{
		clients: map[string]*clientSession{},
		pending: map[string][]wsmodels.ServerMessage{},
	}
}

type impl struct {
	mu      sync.Mutex
	clients map[string]*clientSession           //map[clientID]
	pending map[string][]wsmodels.ServerMessage //map[clientID]
}

// DeleteClient сессия удаляется только вместе со своим соединением: после переподключения
// клиент уже живет в новой сессии
func (i *impl) DeleteClient(clientID string, conn *websocket.Conn) {
	i.mu.Lock()
	sess, ok := i.clients[clientID]
	ok = ok && sess.conn == conn
	if ok {
		delete(i.clients, clientID)
	}
	i.mu.Unlock()
	if ok {
		sess.stop()
	}
}

func (i *impl) AddClient(clientID string, conn *websocket.Conn) {
	i.mu.Lock()
	oldSess, ok := i.clients[clientID]
	sess := newSession(clientID, conn)
	i.clients[clientID] = sess
	delayed := i.pending[clientID]
	delete(i.pending, clientID)
	i.mu.Unlock()
	if ok {
		oldSess.stop()
	}
	if len(delayed) > 0 {
		go i.sendDelayedMessages(clientID, delayed)
	}
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	if msg.Time == "" {
		msg.Time = time.Now().Format("02.01.2006 15:04:05")
	}
	i.mu.Lock()
	sess, ok := i.clients[msg.ToClientID]
	if !ok {
		list := append(i.pending[msg.ToClientID], msg)
		if len(list) > maxPending {
			list = list[len(list)-maxPending:]
		}
		i.pending[msg.ToClientID] = list
		i.mu.Unlock()
		return
	}
	i.mu.Unlock()
	sess.push(msg)
}

// Broadcast только подключенным клиентам, без отложенной доставки
func (i *impl) Broadcast(msg wsmodels.ServerMessage) {
	if msg.Time == "" {
		msg.Time = time.Now().Format("02.01.2006 15:04:05")
	}
	i.mu.Lock()
	sessions := make([]*clientSession, 0, len(i.clients))
	for _, sess := range i.clients {
		sessions = append(sessions, sess)
	}
	i.mu.Unlock()
	for _, sess := range sessions {
		sess.push(msg)
	}
}

func (i *impl) IsConnected(clientID string) bool {
	i.mu.Lock()
	sess, ok := i.clients[clientID]
	i.mu.Unlock()
	return ok && sess.connected()
}

func (i *impl) sendDelayedMessages(clientID string, list []wsmodels.ServerMessage) {
	logger := log.WithField("client_id", clientID)
	for _, msg := range list {
		if !i.IsConnected(clientID) {
			logger.Warn("клиент отключился, отложенные события не доставлены")
			return
		}
		i.SendMessage(msg)
	}
}
