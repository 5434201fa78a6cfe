package session

import (
	"context"
	"testing"

	"github.com/akolanti/DocDesk/internal/domain/sessionModel"
)

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry(&MockRenderer{Pages: []string{"a"}}, &MockResponder{}, nil)

	ctrl := reg.Create("s1")
	if ctrl == nil {
		t.Fatal("expected a controller")
	}

	got, found := reg.Get("s1")
	if !found || got != ctrl {
		t.Fatal("expected to get the created controller back")
	}

	if _, found := reg.Get("missing"); found {
		t.Error("expected a miss for an unknown id")
	}

	if !reg.Remove("s1") {
		t.Error("expected Remove to report the session existed")
	}
	if reg.Remove("s1") {
		t.Error("expected a second Remove to be a no-op")
	}
	if _, found := reg.Get("s1"); found {
		t.Error("expected the session to be gone")
	}
}

func TestRegistryCloseAll(t *testing.T) {
	reg := NewRegistry(&MockRenderer{Pages: []string{"a"}}, &MockResponder{}, nil)

	first := reg.Create("s1")
	second := reg.Create("s2")
	if err := first.LoadDocument(context.Background(), "a.pdf", "application/pdf", []byte("%PDF-a")); err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}

	reg.CloseAll()

	if first.Snapshot().Status != sessionModel.StatusEmpty {
		t.Error("expected every session torn down to Empty")
	}
	if second.Snapshot().Status != sessionModel.StatusEmpty {
		t.Error("expected every session torn down to Empty")
	}
	if _, found := reg.Get("s1"); found {
		t.Error("expected the registry emptied")
	}
}
