package layoutshell

import (
	"encoding/json"
	"fmt"
	log "github.com/sirupsen/logrus"
	sessionstore "recruit-portal/lib/session/store"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
	authapimodels "recruit-portal/models/api/auth"
	dashboardapimodels "recruit-portal/models/api/dashboard"
	wsmodels "recruit-portal/models/ws"
	"sync"
	"time"
)

const deactivatedWarningTpl = "Your account has been deactivated. You will be logged out automatically in %d seconds."

var navItems = []dashboardapimodels.NavItem{
	{Path: "/admin/dashboard", Name: "Dashboard"},
	{Path: "/admin/jobs", Name: "Manage Jobs"},
	{Path: "/admin/candidates", Name: "Candidates"},
	{Path: "/admin/reports", Name: "Reports"},
	{Path: "/admin/admins", Name: "Manage Admins"},
	{Path: "/admin/settings", Name: "Settings"},
	{Path: "/admin/profile", Name: "My Profile"},
}

type Notifier interface {
	SendMessage(msg wsmodels.ServerMessage)
}

type SessionTerminator interface {
	Logout(cache *sessionstore.Cache)
}

type Provider interface {
	// Observe при деактивированном пользователе запускает таймер автовыхода, один на клиента
	Observe(cache *sessionstore.Cache) dashboardapimodels.ShellView
	Cancel(clientID string)
	Pending(clientID string) bool
	Shutdown()
}

var Instance Provider

func NewHandler(terminator SessionTerminator, notifier Notifier, delay time.Duration, publicRoute string) {
	Instance = New(terminator, notifier, delay, publicRoute)
}

func New(terminator SessionTerminator, notifier Notifier, delay time.Duration, publicRoute string) Provider {
	return &impl{
		terminator:  terminator,
		notifier:    notifier,
		delay:       delay,
		publicRoute: publicRoute,
		timers:      map[string]*time.Timer{},
	}
}

type impl struct {
	terminator  SessionTerminator
	notifier    Notifier
	delay       time.Duration
	publicRoute string

	mu     sync.Mutex
	timers map[string]*time.Timer //map[clientID]
}

func (i *impl) Observe(cache *sessionstore.Cache) dashboardapimodels.ShellView {
	view := dashboardapimodels.ShellView{
		NavItems: append([]dashboardapimodels.NavItem(nil), navItems...),
	}
	raw, found, err := cache.Get(models.SessionKeyUser)
	if err != nil || !found {
		return view
	}
	user := authapimodels.SessionUser{}
	if err = json.Unmarshal([]byte(raw), &user); err != nil {
		return view
	}
	view.User = &user
	if user.IsActive() {
		return view
	}

	seconds := int(i.delay.Round(time.Second) / time.Second)
	view.Warning = fmt.Sprintf(deactivatedWarningTpl, seconds)
	view.LogoutInSeconds = seconds
	if i.schedule(cache) {
		log.
			WithField("client_id", cache.ClientID()).
			WithField("status", user.Status).
			Info("пользователь деактивирован, запланирован автовыход")
		i.notify(cache.ClientID(), wsmodels.EventSessionDeactivated, view.Warning)
	}
	return view
}

func (i *impl) schedule(cache *sessionstore.Cache) bool {
	clientID := cache.ClientID()
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.timers[clientID]; ok {
		return false
	}
	i.timers[clientID] = time.AfterFunc(i.delay, func() {
		i.fire(cache)
	})
	return true
}

func (i *impl) fire(cache *sessionstore.Cache) {
	clientID := cache.ClientID()
	i.mu.Lock()
	_, ok := i.timers[clientID]
	delete(i.timers, clientID)
	i.mu.Unlock()
	if !ok {
		return
	}
	i.terminator.Logout(cache)
	log.WithField("client_id", clientID).Info("выполнен автовыход деактивированного пользователя")
	i.notify(clientID, wsmodels.EventSessionLoggedOut, "")
}

func (i *impl) notify(clientID string, code wsmodels.EventCode, msg string) {
	if i.notifier == nil {
		return
	}
	i.notifier.SendMessage(wsmodels.ServerMessage{
		ToClientID: clientID,
		Code:       code,
		Msg:        msg,
		Data:       apimodels.RedirectData{Redirect: i.publicRoute},
	})
}

func (i *impl) Cancel(clientID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if timer, ok := i.timers[clientID]; ok {
		timer.Stop()
		delete(i.timers, clientID)
	}
}

func (i *impl) Pending(clientID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.timers[clientID]
	return ok
}

func (i *impl) Shutdown() {
	i.mu.Lock()
	defer i.mu.Unlock()
	for clientID, timer := range i.timers {
		timer.Stop()
		delete(i.timers, clientID)
	}
}
