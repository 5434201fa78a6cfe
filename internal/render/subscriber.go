package render

import (
	"context"
	"sync"

	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/metrics"
	"github.com/akolanti/DocDesk/internal/session"
	"github.com/akolanti/DocDesk/pkg/logger_i"
)

var (
	registry    *session.Registry
	eventsChan  chan session.NavigationEvent
	stopChannel chan bool
	waitGroup   *sync.WaitGroup
	logger      *logger_i.Logger
)

// InitSubscriber starts the render warmer: a background task that follows
// navigation events and renders the target page ahead of the viewer's next
// request. The controller never repaints implicitly - this subscription is
// the only place a state change turns into pixels.
func InitSubscriber(reg *session.Registry, events chan session.NavigationEvent, stopChan chan bool, wg *sync.WaitGroup) {
	registry = reg
	eventsChan = events
	stopChannel = stopChan
	waitGroup = wg
	logger = logger_i.NewLogger("Render Warmer")
	logger.Info("Initializing render warmer")

	waitGroup.Add(1)
	go subscriber()
}

func subscriber() {
	defer waitGroup.Done()
	for {
		select {
		case ev := <-eventsChan:
			warmPage(ev)

		case <-stopChannel:
			logger.Info("Stop signal received - render warmer retired")
			return
		}
	}
}

func warmPage(ev session.NavigationEvent) {
	ctrl, found := registry.Get(ev.SessionID)
	if !found {
		logger.Debug("Session gone before warm", "sessionId", ev.SessionID)
		return
	}
	// A newer load already owns this session - the old position is garbage.
	if ctrl.Generation() != ev.Generation {
		metrics.IncrementStaleResultsDiscarded("warm_page")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.RenderTimeout)
	defer cancel()

	if _, err := ctrl.RenderPage(ctx, ev.Page, ev.Zoom); err != nil {
		//warming is best effort, the viewer path will retry on demand
		logger.Debug("Warm render skipped", "page", ev.Page, "err", err)
		return
	}
	logger.Debug("Warmed page", "sessionId", ev.SessionID, "page", ev.Page, "zoom", ev.Zoom)
}
