package session

import (
	"sync"

	"github.com/akolanti/DocDesk/internal/ai"
	"github.com/akolanti/DocDesk/internal/document"
	"github.com/akolanti/DocDesk/internal/metrics"
	"github.com/akolanti/DocDesk/pkg/logger_i"
)

// Registry owns every live controller. Nothing else holds a writable
// reference to session state; handlers go through here by id.
type Registry struct {
	mu        sync.RWMutex
	sessions  map[string]*Controller
	renderer  document.Renderer
	responder ai.Responder
	events    chan<- NavigationEvent
	logger    *logger_i.Logger
}

func NewRegistry(renderer document.Renderer, responder ai.Responder, events chan<- NavigationEvent) *Registry {
	return &Registry{
		sessions:  make(map[string]*Controller),
		renderer:  renderer,
		responder: responder,
		events:    events,
		logger:    logger_i.NewLogger("Session Registry"),
	}
}

func (r *Registry) Create(id string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctrl := NewController(id, r.renderer, r.responder, r.events)
	r.sessions[id] = ctrl
	metrics.IncrementActiveSessions()
	r.logger.Info("Created session", "sessionId", id)
	return ctrl
}

func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctrl, found := r.sessions[id]
	return ctrl, found
}

// Remove closes the controller and forgets it. Idempotent.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	ctrl, found := r.sessions[id]
	if found {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !found {
		return false
	}
	ctrl.Close()
	metrics.DecrementActiveSessions()
	r.logger.Info("Removed session", "sessionId", id)
	return true
}

// CloseAll tears every session down - shutdown path.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Controller)
	r.mu.Unlock()

	for id, ctrl := range sessions {
		ctrl.Close()
		metrics.DecrementActiveSessions()
		r.logger.Debug("Closed session on shutdown", "sessionId", id)
	}
}
