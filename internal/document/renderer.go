package document

import (
	"context"
	"errors"
)

var (
	ErrInvalidFormat  = errors.New("invalid document format")
	ErrPageOutOfRange = errors.New("page number out of range")
)

// Handle is one opened document. The session controller is the only caller;
// it owns the source bytes and the handle lifetime.
type Handle interface {
	PageCount() int
	ExtractPageText(ctx context.Context, pageNumber int) (string, error)
	Rasterize(ctx context.Context, pageNumber int, scale float64) ([]byte, error)
	Close()
}

// Renderer opens raw document bytes. The key scopes any internal raster
// caching to one session generation so stale images never leak across loads.
type Renderer interface {
	Open(ctx context.Context, key string, data []byte) (Handle, error)
}
