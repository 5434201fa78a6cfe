package ai

import (
	"strings"
	"testing"

	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/domain/sessionModel"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		limit         int
		expected      string
		wantTruncated bool
	}{
		{"under limit", "short", 10, "short", false},
		{"exactly at limit", "12345", 5, "12345", false},
		{"over limit keeps prefix", "123456789", 5, "12345", true},
		{"zero limit disables", "anything", 0, "anything", false},
		{"negative limit disables", "anything", -1, "anything", false},
		{"empty text", "", 5, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, truncated := Truncate(tc.text, tc.limit)
			if got != tc.expected {
				t.Errorf("Truncate(%q, %d) = %q, expected %q", tc.text, tc.limit, got, tc.expected)
			}
			if truncated != tc.wantTruncated {
				t.Errorf("Truncate(%q, %d) truncated = %v, expected %v", tc.text, tc.limit, truncated, tc.wantTruncated)
			}
		})
	}

	t.Run("multibyte runes stay intact", func(t *testing.T) {
		got, truncated := Truncate("héllo wörld", 7)
		if !truncated {
			t.Fatal("expected truncation")
		}
		if !strings.HasPrefix("héllo wörld", got) {
			t.Errorf("truncated text %q is not a prefix of the input", got)
		}
		if strings.ContainsRune(got, '�') {
			t.Errorf("truncation split a rune: %q", got)
		}
	})
}

func TestHistoryWindow(t *testing.T) {
	makeTranscript := func(pairs int) []sessionModel.Message {
		var out []sessionModel.Message
		for i := 0; i < pairs; i++ {
			out = append(out,
				sessionModel.Message{Role: sessionModel.RoleUser, Content: "q"},
				sessionModel.Message{Role: sessionModel.RoleAssistant, Content: "a"},
			)
		}
		return out
	}

	t.Run("short transcript passes through", func(t *testing.T) {
		transcript := makeTranscript(2)
		if got := HistoryWindow(transcript); len(got) != 4 {
			t.Errorf("expected 4 messages, got %d", len(got))
		}
	})

	t.Run("long transcript keeps the tail", func(t *testing.T) {
		transcript := makeTranscript(config.ChatHistoryWindow + 3)
		transcript[len(transcript)-1].Content = "latest answer"

		got := HistoryWindow(transcript)
		if len(got) != config.ChatHistoryWindow*2 {
			t.Fatalf("expected %d messages, got %d", config.ChatHistoryWindow*2, len(got))
		}
		if got[len(got)-1].Content != "latest answer" {
			t.Error("window must keep the most recent messages")
		}
		if got[0].Role != sessionModel.RoleUser {
			t.Error("window must start on a user turn")
		}
	})

	t.Run("empty transcript", func(t *testing.T) {
		if got := HistoryWindow(nil); len(got) != 0 {
			t.Errorf("expected empty window, got %d messages", len(got))
		}
	})
}

func TestFormatHistory(t *testing.T) {
	transcript := []sessionModel.Message{
		{Role: sessionModel.RoleUser, Content: "What is this?"},
		{Role: sessionModel.RoleAssistant, Content: "A revenue report."},
	}

	got := FormatHistory(transcript)
	want := "User: What is this?\nAssistant: A revenue report.\n"
	if got != want {
		t.Errorf("FormatHistory = %q, expected %q", got, want)
	}

	if FormatHistory(nil) != "" {
		t.Error("expected empty output for an empty transcript")
	}
}

func TestLookupAction(t *testing.T) {
	for _, name := range []string{"summarize", "rewrite_formal", "rewrite_simple", "extract_data", "translate"} {
		prompt, ok := LookupAction(name)
		if !ok {
			t.Errorf("expected action %q to exist", name)
		}
		if prompt == "" {
			t.Errorf("expected a non-empty prompt for %q", name)
		}
	}

	if _, ok := LookupAction("make_coffee"); ok {
		t.Error("unknown actions must not resolve")
	}

	if len(ActionNames()) != 5 {
		t.Errorf("expected 5 actions, got %d", len(ActionNames()))
	}
}
