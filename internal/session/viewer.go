package session

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/domain/sessionModel"
	"github.com/akolanti/DocDesk/internal/metrics"
)

// GoToPage clamps n into [1, pageCount] and returns the resulting page. Out
// of range input is never an error. No-op unless a document is Ready; a
// repeated call with the same value raises no second navigation event.
func (c *Controller) GoToPage(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != sessionModel.StatusReady {
		return c.currentPage
	}
	clamped := clampInt(n, 1, c.pageCount)
	if clamped == c.currentPage {
		return c.currentPage
	}
	c.currentPage = clamped
	c.emitNavLocked()
	return c.currentPage
}

// SetZoom quantizes to 0.1 steps and clamps into [MinZoom, MaxZoom].
func (c *Controller) SetZoom(factor float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	clamped := clampZoom(factor)
	if clamped == c.zoomFactor {
		return c.zoomFactor
	}
	c.zoomFactor = clamped
	if c.status == sessionModel.StatusReady {
		c.emitNavLocked()
	}
	return c.zoomFactor
}

// SearchText scans pageTexts in page order for a case-insensitive substring
// match. First match wins and becomes the current page; no match leaves the
// current page alone. There is no in-page highlighting and results are not
// persisted beyond the stored query term.
func (c *Controller) SearchText(query string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != sessionModel.StatusReady {
		return c.currentPage, false
	}
	c.searchQuery = query
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return c.currentPage, false
	}
	for i, text := range c.pageTexts {
		if strings.Contains(strings.ToLower(text), needle) {
			page := i + 1
			if page != c.currentPage {
				c.currentPage = page
				c.emitNavLocked()
			}
			return page, true
		}
	}
	return c.currentPage, false
}

// RenderPage requests a rasterized page image from the renderer collaborator.
// The controller holds no image cache of its own - every navigation or zoom
// change re-requests, and the collaborator decides what staying cheap means.
// Inputs are clamped; viewer state is not mutated.
func (c *Controller) RenderPage(ctx context.Context, pageNumber int, zoom float64) ([]byte, error) {
	c.mu.Lock()
	if c.status != sessionModel.StatusReady {
		c.mu.Unlock()
		return nil, ErrNotReady
	}
	page := clampInt(pageNumber, 1, c.pageCount)
	scale := clampZoom(zoom)
	gen := c.generation
	handle := c.handle
	c.rendering = true
	c.mu.Unlock()

	start := time.Now()
	defer func() { metrics.CaptureOperationMetrics("render_page", time.Since(start)) }()

	renderCtx, cancel := context.WithTimeout(ctx, config.RenderTimeout)
	defer cancel()
	img, err := handle.Rasterize(renderCtx, page, scale)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		metrics.IncrementStaleResultsDiscarded("render_page")
		return nil, ErrSessionReplaced
	}
	c.rendering = false
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}
	return img, nil
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func clampZoom(factor float64) float64 {
	stepped := math.Round(factor/ZoomStep) * ZoomStep
	//keep the value exact at one decimal so equality checks behave
	stepped = math.Round(stepped*10) / 10
	if stepped < MinZoom {
		return MinZoom
	}
	if stepped > MaxZoom {
		return MaxZoom
	}
	return stepped
}
