package session

import "github.com/akolanti/DocDesk/internal/metrics"

// NavigationEvent is raised whenever the visible page or zoom changes, or a
// document becomes Ready. A render task subscribes to these and pre-warms the
// page image for the new position; the controller itself never repaints as a
// side effect of a state change.
type NavigationEvent struct {
	SessionID  string
	Generation uint64
	Page       int
	Zoom       float64
}

// emitNavLocked drops the event rather than block - a warmer that is behind
// only costs a cold render, never a stuck state transition.
func (c *Controller) emitNavLocked() {
	if c.events == nil {
		return
	}
	ev := NavigationEvent{
		SessionID:  c.id,
		Generation: c.generation,
		Page:       c.currentPage,
		Zoom:       c.zoomFactor,
	}
	select {
	case c.events <- ev:
	default:
		metrics.IncrementNavEventsDropped()
		c.logger.Debug("Navigation event dropped", "page", ev.Page)
	}
}
