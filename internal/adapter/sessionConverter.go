package adapter

import (
	"github.com/akolanti/DocDesk/internal/api"
	"github.com/akolanti/DocDesk/internal/domain/sessionModel"
)

func ToSessionResponse(snap sessionModel.Snapshot) api.SessionResponse {
	return api.SessionResponse{
		Id:            snap.ID,
		Status:        string(snap.Status),
		ErrorMessage:  snap.ErrorMessage,
		DocumentName:  snap.DocumentName,
		PageCount:     snap.PageCount,
		CurrentPage:   snap.CurrentPage,
		ZoomFactor:    snap.ZoomFactor,
		SearchQuery:   snap.SearchQuery,
		TransformBusy: snap.TransformBusy,
		ChatBusy:      snap.ChatBusy,
		Rendering:     snap.Rendering,
		HasDraft:      snap.HasDraft,
	}
}

func ToChatMessages(messages []sessionModel.Message) []api.ChatMessage {
	out := make([]api.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, api.ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return out
}

func ToTranscriptResponse(sessionId string, messages []sessionModel.Message) api.TranscriptResponse {
	return api.TranscriptResponse{
		SessionId: sessionId,
		Messages:  ToChatMessages(messages),
	}
}

func ToChatResponse(sessionId string, appended []sessionModel.Message) api.ChatResponse {
	return api.ChatResponse{
		SessionId: sessionId,
		Appended:  ToChatMessages(appended),
	}
}

func BadRequest(code int, message string) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: message,
	}
}
