package session

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/akolanti/DocDesk/internal/ai"
	"github.com/akolanti/DocDesk/internal/document"
	"github.com/akolanti/DocDesk/internal/domain/sessionModel"
)

// MockHandle implements document.Handle
type MockHandle struct {
	Pages       []string
	OnRasterize func(ctx context.Context, pageNumber int, scale float64) ([]byte, error)
	Closed      atomic.Bool
}

func (h *MockHandle) PageCount() int {
	return len(h.Pages)
}

func (h *MockHandle) ExtractPageText(ctx context.Context, pageNumber int) (string, error) {
	if pageNumber < 1 || pageNumber > len(h.Pages) {
		return "", document.ErrPageOutOfRange
	}
	return h.Pages[pageNumber-1], nil
}

func (h *MockHandle) Rasterize(ctx context.Context, pageNumber int, scale float64) ([]byte, error) {
	if h.OnRasterize != nil {
		return h.OnRasterize(ctx, pageNumber, scale)
	}
	return []byte(fmt.Sprintf("png:%d@%.1f", pageNumber, scale)), nil
}

func (h *MockHandle) Close() {
	h.Closed.Store(true)
}

// MockRenderer implements document.Renderer
type MockRenderer struct {
	Pages  []string
	OnOpen func(ctx context.Context, key string, data []byte) (document.Handle, error)
}

func (r *MockRenderer) Open(ctx context.Context, key string, data []byte) (document.Handle, error) {
	if r.OnOpen != nil {
		return r.OnOpen(ctx, key, data)
	}
	return &MockHandle{Pages: r.Pages}, nil
}

// MockResponder implements ai.Responder
type MockResponder struct {
	OnTransform func(ctx context.Context, documentText string, instruction string) (ai.Result, error)
	OnConverse  func(ctx context.Context, documentText string, transcript []sessionModel.Message, message string) (ai.Result, error)
}

func (m *MockResponder) Transform(ctx context.Context, documentText string, instruction string) (ai.Result, error) {
	if m.OnTransform != nil {
		return m.OnTransform(ctx, documentText, instruction)
	}
	return ai.Result{Text: "mocked transform output"}, nil
}

func (m *MockResponder) Converse(ctx context.Context, documentText string, transcript []sessionModel.Message, message string) (ai.Result, error) {
	if m.OnConverse != nil {
		return m.OnConverse(ctx, documentText, transcript, message)
	}
	return ai.Result{Text: "mocked chat reply"}, nil
}

func newReadyController(t interface{ Fatalf(string, ...any) }, pages []string, responder ai.Responder) *Controller {
	if responder == nil {
		responder = &MockResponder{}
	}
	c := NewController("test-session", &MockRenderer{Pages: pages}, responder, nil)
	if err := c.LoadDocument(context.Background(), "test.pdf", "application/pdf", []byte("%PDF-fake")); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	return c
}
