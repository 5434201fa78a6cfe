package handlers

import (
	"sync"

	"github.com/akolanti/DocDesk/internal/session"
	"github.com/akolanti/DocDesk/pkg/logger_i"
)

var (
	handlerInstance *SessionHandler //private singleton
	once            sync.Once
	logSH           *logger_i.Logger
	logRH           *logger_i.Logger
)

type SessionHandler struct {
	registry *session.Registry
}

func InitSessionHandler(registry *session.Registry) {
	once.Do(func() {
		handlerInstance = &SessionHandler{registry: registry}

		logSH = logger_i.NewLogger("SessionHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logSH.Info("Starting session handler")
	})
}

func CreateSession() *session.Controller {
	id := newSessionId()
	return handlerInstance.registry.Create(id)
}

func LookupSession(id string) (*session.Controller, bool) {
	if handlerInstance == nil || id == "" {
		return nil, false
	}
	return handlerInstance.registry.Get(id)
}

func RemoveSession(id string) bool {
	if handlerInstance == nil {
		return false
	}
	return handlerInstance.registry.Remove(id)
}
