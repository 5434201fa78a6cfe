package sessionModel

type Status string

const (
	StatusEmpty   Status = "Empty"
	StatusLoading Status = "Loading"
	StatusReady   Status = "Ready"
	StatusFailed  Status = "Failed"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. Entries are append-only for the life of a
// session - nothing edits or removes one once it is in.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Snapshot is a read-only copy of session state handed to the API layer.
type Snapshot struct {
	ID            string  `json:"id"`
	Status        Status  `json:"status"`
	ErrorMessage  string  `json:"error_message,omitempty"`
	DocumentName  string  `json:"document_name,omitempty"`
	PageCount     int     `json:"page_count"`
	CurrentPage   int     `json:"current_page"`
	ZoomFactor    float64 `json:"zoom_factor"`
	SearchQuery   string  `json:"search_query,omitempty"`
	TransformBusy bool    `json:"transform_busy"`
	ChatBusy      bool    `json:"chat_busy"`
	Rendering     bool    `json:"rendering"`
	HasDraft      bool    `json:"has_draft"`
}
