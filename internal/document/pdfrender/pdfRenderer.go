package pdfrender

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/DocDesk/internal/data/rasterCache"
	"github.com/akolanti/DocDesk/internal/document"
	"github.com/akolanti/DocDesk/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/gen2brain/go-fitz"
)

var pdfMagic = []byte("%PDF-")

type service struct {
	cache  rasterCache.Cache
	logger *logger_i.Logger
}

// NewService builds the PDF renderer/extractor. The cache holds rendered page
// images only; extracted text always goes back to the caller uncached.
func NewService(cache rasterCache.Cache) document.Renderer {
	return &service{
		cache:  cache,
		logger: logger_i.NewLogger("PDF Renderer"),
	}
}

func (s *service) Open(ctx context.Context, key string, data []byte) (document.Handle, error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		s.logger.Warn("Rejected document without PDF header", "key", key)
		return nil, document.ErrInvalidFormat
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.logger.Error("failed opening of pdf file", "error", err)
		return nil, fmt.Errorf("failed to open pdf: %w", document.ErrInvalidFormat)
	}

	fz, err := fitz.NewFromMemory(data)
	if err != nil {
		s.logger.Error("failed initializing raster document", "error", err)
		return nil, fmt.Errorf("failed to open pdf for rasterization: %w", document.ErrInvalidFormat)
	}

	return &docHandle{
		key:    key,
		reader: reader,
		fz:     fz,
		cache:  s.cache,
		logger: s.logger.With("docKey", key),
	}, nil
}

type docHandle struct {
	key    string
	reader *pdf.Reader
	fzMu   sync.Mutex //go-fitz documents are not safe for concurrent page access
	fz     *fitz.Document
	cache  rasterCache.Cache
	logger *logger_i.Logger
	closed bool
}

func (h *docHandle) PageCount() int {
	return h.reader.NumPage()
}

func (h *docHandle) Close() {
	h.fzMu.Lock()
	defer h.fzMu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	if err := h.fz.Close(); err != nil {
		h.logger.Error("Error closing raster document", "error", err)
	}
}
