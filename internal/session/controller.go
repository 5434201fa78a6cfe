package session

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"sync"
	"time"

	"github.com/akolanti/DocDesk/internal/ai"
	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/document"
	"github.com/akolanti/DocDesk/internal/domain/sessionModel"
	"github.com/akolanti/DocDesk/internal/metrics"
	"github.com/akolanti/DocDesk/pkg/logger_i"
)

const (
	MinZoom     = 0.5
	MaxZoom     = 3.0
	ZoomStep    = 0.1
	DefaultZoom = 1.0

	// PageSeparator joins page texts into the full document text. The full
	// text is always derived from pageTexts on demand - there is no second
	// copy to drift.
	PageSeparator = "\n\n--- page break ---\n\n"

	DraftExportFilename = "document-draft.md"

	extractionFailedMessage = "Failed to extract text from PDF."
	chatFallbackMessage     = "Sorry, I failed to process that."
)

/*
The controller is the sole owner and mutator of everything below: source
bytes, derived page texts, viewer state, draft and transcript. Collaborators
only ever see read-only copies per call. Long operations (load, render, AI
calls) run outside the lock; a generation counter decides on re-entry whether
their result still belongs to the live document or gets discarded.
*/
type Controller struct {
	mu sync.Mutex

	id         string
	generation uint64
	loadCancel context.CancelFunc

	status       sessionModel.Status
	errorMessage string
	documentName string
	sourceBytes  []byte
	handle       document.Handle
	pageCount    int
	pageTexts    []string

	currentPage int
	zoomFactor  float64
	searchQuery string

	draftContent string
	transcript   []sessionModel.Message

	transformBusy bool
	chatBusy      bool
	rendering     bool

	renderer  document.Renderer
	responder ai.Responder
	events    chan<- NavigationEvent

	logger *logger_i.Logger
}

func NewController(id string, renderer document.Renderer, responder ai.Responder, events chan<- NavigationEvent) *Controller {
	return &Controller{
		id:          id,
		status:      sessionModel.StatusEmpty,
		currentPage: 1,
		zoomFactor:  DefaultZoom,
		renderer:    renderer,
		responder:   responder,
		events:      events,
		logger:      logger_i.NewLogger("Session Controller").With("sessionId", id),
	}
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// LoadDocument ingests a fresh upload. A load over an existing session is an
// implicit full reset - viewer state, draft and transcript are discarded
// before extraction starts, never merged. A second load while one is in
// flight cancels and restarts: the older load commits nothing.
func (c *Controller) LoadDocument(ctx context.Context, name string, contentType string, data []byte) error {
	start := time.Now()
	defer func() { metrics.CaptureOperationMetrics("load_document", time.Since(start)) }()

	if !isPDFContentType(contentType) {
		c.mu.Lock()
		c.errorMessage = ErrInvalidInputFormat.Error()
		c.mu.Unlock()
		c.logger.Warn("Rejected upload", "contentType", contentType, "name", name)
		return ErrInvalidInputFormat
	}

	c.mu.Lock()
	if c.loadCancel != nil {
		c.loadCancel()
		c.loadCancel = nil
	}
	c.generation++
	gen := c.generation
	oldHandle := c.handle
	c.handle = nil
	c.resetLocked()
	c.status = sessionModel.StatusLoading
	c.documentName = name
	c.sourceBytes = data
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.LoadTimeout)
	c.loadCancel = cancel
	key := c.loadKeyLocked()
	c.mu.Unlock()

	if oldHandle != nil {
		oldHandle.Close()
	}

	handle, texts, err := c.extract(loadCtx, key, data)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		if handle != nil {
			handle.Close()
		}
		metrics.IncrementStaleResultsDiscarded("load_document")
		c.logger.Debug("Discarded stale load result", "generation", gen)
		return ErrSessionReplaced
	}
	cancel()
	c.loadCancel = nil

	if err != nil {
		c.logger.Error("Extraction failed", "name", name, "error", err)
		c.status = sessionModel.StatusFailed
		c.errorMessage = extractionFailedMessage
		c.sourceBytes = nil //a failed session retains no partial data
		return ErrExtractionFailure
	}

	c.handle = handle
	c.pageTexts = texts
	c.pageCount = len(texts)
	c.currentPage = 1
	c.status = sessionModel.StatusReady
	c.logger.Info("Document ready", "name", name, "pages", c.pageCount)
	c.emitNavLocked()
	return nil
}

func (c *Controller) extract(ctx context.Context, key string, data []byte) (document.Handle, []string, error) {
	handle, err := c.renderer.Open(ctx, key, data)
	if err != nil {
		return nil, nil, err
	}

	pageCount := handle.PageCount()
	texts := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			handle.Close()
			return nil, nil, err
		}
		content, err := handle.ExtractPageText(ctx, i)
		if err != nil {
			//an unreadable page keeps its slot so texts stays page-aligned
			c.logger.Warn("Page text unavailable", "page #", i, "error", err)
			content = ""
		}
		texts = append(texts, content)
	}
	return handle, texts, nil
}

// Close tears the session down to Empty: derived state gone, binary handle
// released, any in-flight collaborator result orphaned by the generation bump.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.loadCancel != nil {
		c.loadCancel()
		c.loadCancel = nil
	}
	c.generation++
	oldHandle := c.handle
	c.handle = nil
	c.resetLocked()
	c.status = sessionModel.StatusEmpty
	c.mu.Unlock()

	if oldHandle != nil {
		oldHandle.Close()
	}
	c.logger.Info("Session closed")
}

func (c *Controller) resetLocked() {
	c.status = sessionModel.StatusEmpty
	c.errorMessage = ""
	c.documentName = ""
	c.sourceBytes = nil
	c.pageCount = 0
	c.pageTexts = nil
	c.currentPage = 1
	c.zoomFactor = DefaultZoom
	c.searchQuery = ""
	c.draftContent = ""
	c.transcript = nil
	c.transformBusy = false
	c.chatBusy = false
	c.rendering = false
}

// loadKeyLocked scopes collaborator-internal caching to one load: a replaced
// document can never serve a page image rendered from its predecessor.
func (c *Controller) loadKeyLocked() string {
	return fmt.Sprintf("%s:g%d", c.id, c.generation)
}

func (c *Controller) Snapshot() sessionModel.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sessionModel.Snapshot{
		ID:            c.id,
		Status:        c.status,
		ErrorMessage:  c.errorMessage,
		DocumentName:  c.documentName,
		PageCount:     c.pageCount,
		CurrentPage:   c.currentPage,
		ZoomFactor:    c.zoomFactor,
		SearchQuery:   c.searchQuery,
		TransformBusy: c.transformBusy,
		ChatBusy:      c.chatBusy,
		Rendering:     c.rendering,
		HasDraft:      c.draftContent != "",
	}
}

// FullText is always the ordered join of pageTexts with PageSeparator.
func (c *Controller) FullText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return joinPages(c.pageTexts)
}

func joinPages(pageTexts []string) string {
	return strings.Join(pageTexts, PageSeparator)
}

func isPDFContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType == "application/pdf"
}
