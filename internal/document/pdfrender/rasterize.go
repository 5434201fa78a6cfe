package pdfrender

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"time"

	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/document"
	"github.com/akolanti/DocDesk/internal/metrics"
)

// Rasterize renders one page to PNG at the requested scale. Results are kept
// in the raster cache keyed by document key, page and scale - the session
// controller re-requests on every navigation and relies on this staying cheap.
func (h *docHandle) Rasterize(ctx context.Context, pageNumber int, scale float64) ([]byte, error) {
	if pageNumber < 1 || pageNumber > h.reader.NumPage() {
		return nil, document.ErrPageOutOfRange
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cacheKey := rasterKey(h.key, pageNumber, scale)
	if img, found := h.cache.Get(ctx, cacheKey); found {
		h.logger.Debug("Rasterize", "cache hit", cacheKey)
		return img, nil
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("rasterize", time.Since(start)) }()

	h.fzMu.Lock()
	if h.closed {
		h.fzMu.Unlock()
		return nil, fmt.Errorf("document handle closed")
	}
	//go-fitz pages are 0-indexed
	img, err := h.fz.ImageDPI(pageNumber-1, config.RenderBaseDPI*scale)
	h.fzMu.Unlock()
	if err != nil {
		h.logger.Error("Error rasterizing page", "page #", pageNumber, "error", err)
		return nil, fmt.Errorf("failed to rasterize page %d: %w", pageNumber, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode page %d: %w", pageNumber, err)
	}

	h.cache.Set(ctx, cacheKey, buf.Bytes())
	return buf.Bytes(), nil
}

func rasterKey(docKey string, pageNumber int, scale float64) string {
	//scale is quantized to 0.1 steps upstream, two decimals is lossless here
	return fmt.Sprintf("%s:p%d:z%.2f", docKey, pageNumber, scale)
}
