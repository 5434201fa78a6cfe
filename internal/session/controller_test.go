package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akolanti/DocDesk/internal/document"
	"github.com/akolanti/DocDesk/internal/domain/sessionModel"
)

func TestLoadDocumentSuccess(t *testing.T) {
	pages := []string{"Q1 Revenue", "Q2 Revenue", "Summary"}
	c := newReadyController(t, pages, nil)

	snap := c.Snapshot()
	if snap.Status != sessionModel.StatusReady {
		t.Errorf("expected status Ready, got %q", snap.Status)
	}
	if snap.PageCount != 3 {
		t.Errorf("expected 3 pages, got %d", snap.PageCount)
	}
	if snap.CurrentPage != 1 {
		t.Errorf("expected current page 1, got %d", snap.CurrentPage)
	}
	if snap.ZoomFactor != DefaultZoom {
		t.Errorf("expected zoom %v, got %v", DefaultZoom, snap.ZoomFactor)
	}
	if snap.DocumentName != "test.pdf" {
		t.Errorf("expected document name test.pdf, got %q", snap.DocumentName)
	}

	want := strings.Join(pages, PageSeparator)
	if got := c.FullText(); got != want {
		t.Errorf("full text mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestLoadDocumentRejectsNonPDF(t *testing.T) {
	c := NewController("s1", &MockRenderer{Pages: []string{"x"}}, &MockResponder{}, nil)

	err := c.LoadDocument(context.Background(), "notes.txt", "text/plain", []byte("hello"))
	if !errors.Is(err, ErrInvalidInputFormat) {
		t.Fatalf("expected ErrInvalidInputFormat, got %v", err)
	}
	if snap := c.Snapshot(); snap.Status != sessionModel.StatusEmpty {
		t.Errorf("a rejected upload must not leave Empty, got %q", snap.Status)
	}
}

func TestLoadDocumentRejectionKeepsExistingDocument(t *testing.T) {
	c := newReadyController(t, []string{"keep me"}, nil)

	err := c.LoadDocument(context.Background(), "bad.png", "image/png", []byte("png"))
	if !errors.Is(err, ErrInvalidInputFormat) {
		t.Fatalf("expected ErrInvalidInputFormat, got %v", err)
	}
	snap := c.Snapshot()
	if snap.Status != sessionModel.StatusReady {
		t.Errorf("existing document must survive a rejected upload, got %q", snap.Status)
	}
	if c.FullText() != "keep me" {
		t.Errorf("existing text must survive a rejected upload")
	}
}

func TestLoadDocumentExtractionFailure(t *testing.T) {
	renderer := &MockRenderer{
		OnOpen: func(ctx context.Context, key string, data []byte) (document.Handle, error) {
			return nil, errors.New("corrupt xref table")
		},
	}
	c := NewController("s1", renderer, &MockResponder{}, nil)

	err := c.LoadDocument(context.Background(), "broken.pdf", "application/pdf", []byte("%PDF-broken"))
	if !errors.Is(err, ErrExtractionFailure) {
		t.Fatalf("expected ErrExtractionFailure, got %v", err)
	}
	snap := c.Snapshot()
	if snap.Status != sessionModel.StatusFailed {
		t.Errorf("expected status Failed, got %q", snap.Status)
	}
	if snap.ErrorMessage != "Failed to extract text from PDF." {
		t.Errorf("unexpected error message %q", snap.ErrorMessage)
	}
}

func TestLoadDocumentResetsPriorState(t *testing.T) {
	c := newReadyController(t, []string{"alpha", "beta"}, nil)

	c.GoToPage(2)
	c.SetZoom(2.0)
	if _, _, err := c.RunTransform(context.Background(), "summarize"); err != nil {
		t.Fatalf("RunTransform failed: %v", err)
	}
	if _, err := c.SendChatMessage(context.Background(), "hello"); err != nil {
		t.Fatalf("SendChatMessage failed: %v", err)
	}

	c.renderer = &MockRenderer{Pages: []string{"gamma"}}
	if err := c.LoadDocument(context.Background(), "next.pdf", "application/pdf", []byte("%PDF-next")); err != nil {
		t.Fatalf("second LoadDocument failed: %v", err)
	}

	snap := c.Snapshot()
	if snap.CurrentPage != 1 {
		t.Errorf("expected current page reset to 1, got %d", snap.CurrentPage)
	}
	if snap.ZoomFactor != DefaultZoom {
		t.Errorf("expected zoom reset to %v, got %v", DefaultZoom, snap.ZoomFactor)
	}
	if snap.SearchQuery != "" {
		t.Errorf("expected search query cleared, got %q", snap.SearchQuery)
	}
	if snap.HasDraft {
		t.Error("expected draft discarded on new upload")
	}
	if got := c.Transcript(); len(got) != 0 {
		t.Errorf("expected transcript discarded on new upload, got %d messages", len(got))
	}
	if c.FullText() != "gamma" {
		t.Errorf("expected new document text, got %q", c.FullText())
	}
}

func TestLoadDocumentCancelsInFlightLoad(t *testing.T) {
	started := make(chan struct{})
	block := make(chan struct{})
	renderer := &MockRenderer{}
	renderer.OnOpen = func(ctx context.Context, key string, data []byte) (document.Handle, error) {
		if strings.Contains(key, ":g1") {
			close(started)
			<-block
			return &MockHandle{Pages: []string{"old"}}, nil
		}
		return &MockHandle{Pages: []string{"new"}}, nil
	}
	c := NewController("s1", renderer, &MockResponder{}, nil)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- c.LoadDocument(context.Background(), "old.pdf", "application/pdf", []byte("%PDF-old"))
	}()

	//second load bumps the generation while the first is still extracting
	<-started
	if err := c.LoadDocument(context.Background(), "new.pdf", "application/pdf", []byte("%PDF-new")); err != nil {
		t.Fatalf("second LoadDocument failed: %v", err)
	}
	close(block)

	if err := <-firstDone; !errors.Is(err, ErrSessionReplaced) {
		t.Fatalf("expected first load to report ErrSessionReplaced, got %v", err)
	}
	snap := c.Snapshot()
	if snap.DocumentName != "new.pdf" {
		t.Errorf("expected the later upload to win, got %q", snap.DocumentName)
	}
	if c.FullText() != "new" {
		t.Errorf("expected text from the later upload, got %q", c.FullText())
	}
}

func TestCloseReleasesDocument(t *testing.T) {
	handle := &MockHandle{Pages: []string{"one"}}
	renderer := &MockRenderer{
		OnOpen: func(ctx context.Context, key string, data []byte) (document.Handle, error) {
			return handle, nil
		},
	}
	c := NewController("s1", renderer, &MockResponder{}, nil)
	if err := c.LoadDocument(context.Background(), "a.pdf", "application/pdf", []byte("%PDF-a")); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}

	c.Close()

	if !handle.Closed.Load() {
		t.Error("expected the document handle to be closed")
	}
	snap := c.Snapshot()
	if snap.Status != sessionModel.StatusEmpty {
		t.Errorf("expected status Empty after close, got %q", snap.Status)
	}
	if snap.PageCount != 0 {
		t.Errorf("expected no pages after close, got %d", snap.PageCount)
	}
}

func TestLoadEmitsNavigationEvent(t *testing.T) {
	events := make(chan NavigationEvent, 4)
	c := NewController("s1", &MockRenderer{Pages: []string{"a", "b"}}, &MockResponder{}, events)
	if err := c.LoadDocument(context.Background(), "a.pdf", "application/pdf", []byte("%PDF-a")); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}

	select {
	case ev := <-events:
		if ev.SessionID != "s1" || ev.Page != 1 || ev.Zoom != DefaultZoom {
			t.Errorf("unexpected event %+v", ev)
		}
		if ev.Generation != c.Generation() {
			t.Errorf("event generation %d does not match live generation %d", ev.Generation, c.Generation())
		}
	default:
		t.Fatal("expected a navigation event when the document became ready")
	}
}
