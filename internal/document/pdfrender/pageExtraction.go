package pdfrender

import (
	"context"
	"errors"
	"time"

	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/document"
	"github.com/dslipak/pdf"
)

func (h *docHandle) ExtractPageText(ctx context.Context, pageNumber int) (string, error) {
	if pageNumber < 1 || pageNumber > h.reader.NumPage() {
		return "", document.ErrPageOutOfRange
	}

	page := h.reader.Page(pageNumber)
	if page.V.IsNull() {
		h.logger.Debug("ExtractPageText", "page value is null", pageNumber)
		return "", nil
	}

	content, err := h.protectExtract(ctx, page)
	if err != nil {
		h.logger.Error("Error parsing page content", "page #", pageNumber, "Error", err)
		return "", err
	}
	return content, nil
}

// protectExtract runs the library call on its own goroutine - malformed
// content streams can spin, and a hung page must not hang the whole load.
func (h *docHandle) protectExtract(ctx context.Context, page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	timer := time.NewTimer(config.ExtractPageTimeout)
	defer timer.Stop()

	select {
	case r := <-resChan:
		return r.content, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		h.logger.Error("pageExtract", "timeout", config.ExtractPageTimeout)
		return "", errors.New("timeout")
	}
}
