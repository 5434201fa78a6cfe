package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/domain/sessionModel"
)

// Result carries one generated text plus whether the document was cut down
// before submission. Truncation itself is silent - keep the prefix, drop the
// rest - but the flag lets callers surface it.
type Result struct {
	Text         string
	WasTruncated bool
}

// Responder is the AI collaborator. Transform is the one-shot path, Converse
// the multi-turn path; both receive read-only copies of the document text and
// never touch session state.
type Responder interface {
	Transform(ctx context.Context, documentText string, instruction string) (Result, error)
	Converse(ctx context.Context, documentText string, transcript []sessionModel.Message, message string) (Result, error)
}

func Truncate(text string, limit int) (string, bool) {
	if limit <= 0 || len(text) <= limit {
		return text, false
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text, false
	}
	return string(runes[:limit]), true
}

// HistoryWindow returns the transcript tail replayed into a conversational
// call: the most recent ChatHistoryWindow exchanges, oldest first.
func HistoryWindow(transcript []sessionModel.Message) []sessionModel.Message {
	max := config.ChatHistoryWindow * 2
	if len(transcript) <= max {
		return transcript
	}
	return transcript[len(transcript)-max:]
}

// FormatHistory flattens a transcript window into plain prompt lines for
// providers without a native message-list API shape.
func FormatHistory(transcript []sessionModel.Message) string {
	if len(transcript) == 0 {
		return ""
	}
	var b strings.Builder
	for _, msg := range transcript {
		label := "User"
		if msg.Role == sessionModel.RoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, msg.Content)
	}
	return b.String()
}
