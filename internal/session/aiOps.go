package session

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/domain/sessionModel"
	"github.com/akolanti/DocDesk/internal/metrics"
)

// RunTransform sends the full document text plus one instruction to the AI
// responder and overwrites the draft with the result. A failed call leaves
// the prior draft untouched and the session Ready - transform failures are
// local, never terminal.
func (c *Controller) RunTransform(ctx context.Context, actionPrompt string) (string, bool, error) {
	c.mu.Lock()
	fullText := joinPages(c.pageTexts)
	if fullText == "" {
		c.mu.Unlock()
		return "", false, ErrNoDocument
	}
	if c.transformBusy {
		c.mu.Unlock()
		return "", false, ErrTransformBusy
	}
	c.transformBusy = true
	gen := c.generation
	c.mu.Unlock()

	start := time.Now()
	defer func() { metrics.CaptureOperationMetrics("run_transform", time.Since(start)) }()

	aiCtx, cancel := context.WithTimeout(ctx, config.AIRequestTimeout)
	defer cancel()
	result, err := c.responder.Transform(aiCtx, fullText, actionPrompt)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		metrics.IncrementStaleResultsDiscarded("run_transform")
		return "", false, ErrSessionReplaced
	}
	c.transformBusy = false
	if err != nil {
		c.logger.Error("Transform failed, draft preserved", "error", err)
		return "", false, ErrTransformFailure
	}
	c.draftContent = result.Text
	return result.Text, result.WasTruncated, nil
}

// SendChatMessage appends the user turn, asks the responder with the prior
// transcript as grounding, then appends the reply - or the fixed fallback on
// failure, so a broken turn is visible in-transcript instead of thrown. One
// turn in flight at a time; a second call is rejected, keeping transcript
// order strict. Returns the two messages appended by this call.
func (c *Controller) SendChatMessage(ctx context.Context, text string) ([]sessionModel.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankMessage
	}

	c.mu.Lock()
	fullText := joinPages(c.pageTexts)
	if fullText == "" {
		c.mu.Unlock()
		return nil, ErrNoDocument
	}
	if c.chatBusy {
		c.mu.Unlock()
		return nil, ErrChatBusy
	}
	prior := slices.Clone(c.transcript)
	c.transcript = append(c.transcript, sessionModel.Message{Role: sessionModel.RoleUser, Content: text})
	c.chatBusy = true
	gen := c.generation
	c.mu.Unlock()

	start := time.Now()
	defer func() { metrics.CaptureOperationMetrics("send_chat_message", time.Since(start)) }()

	aiCtx, cancel := context.WithTimeout(ctx, config.AIRequestTimeout)
	defer cancel()
	result, err := c.responder.Converse(aiCtx, fullText, prior, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		metrics.IncrementStaleResultsDiscarded("send_chat_message")
		return nil, ErrSessionReplaced
	}
	c.chatBusy = false
	reply := sessionModel.Message{Role: sessionModel.RoleAssistant, Content: chatFallbackMessage}
	if err != nil {
		c.logger.Error("Chat turn failed, fallback appended", "error", err)
	} else {
		reply.Content = result.Text
	}
	c.transcript = append(c.transcript, reply)
	return slices.Clone(c.transcript[len(c.transcript)-2:]), nil
}

// ExportDraft returns the draft as Markdown bytes plus the fixed download
// filename. Pure - no state changes.
func (c *Controller) ExportDraft() ([]byte, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draftContent == "" {
		return nil, "", ErrEmptyDraft
	}
	return []byte(c.draftContent), DraftExportFilename, nil
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftContent
}

func (c *Controller) Transcript() []sessionModel.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.transcript)
}
