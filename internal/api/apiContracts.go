package api

type SessionResponse struct {
	Id            string  `json:"id" example:"3f6c1e0a-55aa-4f3b-9f1c-2a77d1b1a001"`
	Status        string  `json:"status" example:"Ready"`
	ErrorMessage  string  `json:"error_message,omitempty" example:"Failed to extract text from PDF."`
	DocumentName  string  `json:"document_name,omitempty" example:"q3-report.pdf"`
	PageCount     int     `json:"page_count" example:"12"`
	CurrentPage   int     `json:"current_page" example:"1"`
	ZoomFactor    float64 `json:"zoom_factor" example:"1.0"`
	SearchQuery   string  `json:"search_query,omitempty"`
	TransformBusy bool    `json:"transform_busy"`
	ChatBusy      bool    `json:"chat_busy"`
	Rendering     bool    `json:"rendering"`
	HasDraft      bool    `json:"has_draft"`
}

type ChatMessage struct {
	Role    string `json:"role" example:"assistant"`
	Content string `json:"content"`
}

type TranscriptResponse struct {
	SessionId string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	SessionId string        `json:"session_id"`
	Appended  []ChatMessage `json:"appended"`
}

type ViewerResponse struct {
	CurrentPage int     `json:"current_page" example:"3"`
	ZoomFactor  float64 `json:"zoom_factor" example:"1.2"`
}

type SearchResponse struct {
	Found       bool   `json:"found"`
	Page        int    `json:"page"`
	Query       string `json:"query"`
	CurrentPage int    `json:"current_page"`
}

type TransformResponse struct {
	Draft        string `json:"draft"`
	WasTruncated bool   `json:"was_truncated"`
}

type DraftResponse struct {
	Draft string `json:"draft"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Bad Request"`
}

// requests---------------------

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"required"`
}

type PageRequest struct {
	Page int `json:"page" validate:"required"`
}

type ZoomRequest struct {
	Factor float64 `json:"factor" validate:"required"`
}

type TransformRequest struct {
	Action string `json:"action" validate:"required" example:"summarize"`
}
