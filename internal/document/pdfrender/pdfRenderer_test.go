package pdfrender

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/DocDesk/internal/data/rasterCache"
	"github.com/akolanti/DocDesk/internal/document"
)

func TestOpenRejectsNonPDF(t *testing.T) {
	svc := NewService(rasterCache.InitMemoryCache())

	tests := []struct {
		name string
		data []byte
	}{
		{"plain text", []byte("hello world")},
		{"png header", []byte{0x89, 'P', 'N', 'G'}},
		{"empty", nil},
		{"truncated magic", []byte("%PD")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Open(context.Background(), "k1", tc.data)
			if !errors.Is(err, document.ErrInvalidFormat) {
				t.Errorf("expected ErrInvalidFormat, got %v", err)
			}
		})
	}
}

func TestRasterKey(t *testing.T) {
	tests := []struct {
		docKey   string
		page     int
		scale    float64
		expected string
	}{
		{"sess-1:g1", 1, 1.0, "sess-1:g1:p1:z1.00"},
		{"sess-1:g1", 12, 2.5, "sess-1:g1:p12:z2.50"},
		{"sess-1:g2", 1, 1.0, "sess-1:g2:p1:z1.00"},
	}

	for _, tc := range tests {
		if got := rasterKey(tc.docKey, tc.page, tc.scale); got != tc.expected {
			t.Errorf("rasterKey(%q, %d, %v) = %q, expected %q", tc.docKey, tc.page, tc.scale, got, tc.expected)
		}
	}
}
