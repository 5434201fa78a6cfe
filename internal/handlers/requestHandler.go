package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/akolanti/DocDesk/internal/adapter"
	"github.com/akolanti/DocDesk/internal/adapter/utils"
	"github.com/akolanti/DocDesk/internal/ai"
	"github.com/akolanti/DocDesk/internal/api"
	"github.com/akolanti/DocDesk/internal/session"
)

// CreateSessionHandler godoc
// @Summary      Upload a document and open a session
// @Description  Receives a PDF via multipart/form-data, extracts its text and opens a new document session.
// @Tags         Sessions
// @Accept       multipart/form-data
// @Produce      json
// @Param        document_name  formData  string  false  "Display name, defaults to the uploaded filename"
// @Param        document       formData  file    true   "The PDF to load"
// @Success      201  {object}  api.SessionResponse
// @Failure      400  {object}  api.ErrorResponse "Non-PDF upload or bad form data"
// @Failure      422  {object}  api.SessionResponse "Extraction failed - session is in Failed state"
// @Router       /sessions [post]
func CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "addr", r.RemoteAddr)
		return
	}

	docName, contentType, data, ok := readUpload(w, r)
	if !ok {
		return
	}

	ctrl := CreateSession()
	err := ctrl.LoadDocument(r.Context(), docName, contentType, data)
	if errors.Is(err, session.ErrInvalidInputFormat) {
		//nothing was loaded, don't leave an empty shell behind
		RemoveSession(ctrl.ID())
		WriteErrorResponse(w, http.StatusBadRequest, "Only PDF documents are accepted")
		return
	}
	if err != nil {
		//Failed session stays addressable - a re-upload to it recovers
		writeJsonResponse(w, sessionErrorCode(err), adapter.ToSessionResponse(ctrl.Snapshot()))
		return
	}
	writeJsonResponse(w, http.StatusCreated, adapter.ToSessionResponse(ctrl.Snapshot()))
}

// ReplaceDocumentHandler godoc
// @Summary      Replace the session's document
// @Description  Fresh upload into an existing session: viewer state, draft and transcript are reset, never merged.
// @Tags         Sessions
// @Accept       multipart/form-data
// @Produce      json
// @Param        id        path      string  true  "Session ID"
// @Param        document  formData  file    true  "The PDF to load"
// @Success      200  {object}  api.SessionResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      422  {object}  api.SessionResponse
// @Router       /sessions/{id}/document [put]
func ReplaceDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctrl, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	docName, contentType, data, ok := readUpload(w, r)
	if !ok {
		return
	}

	err := ctrl.LoadDocument(r.Context(), docName, contentType, data)
	if errors.Is(err, session.ErrInvalidInputFormat) {
		WriteErrorResponse(w, http.StatusBadRequest, "Only PDF documents are accepted")
		return
	}
	if errors.Is(err, session.ErrSessionReplaced) {
		WriteErrorResponse(w, sessionErrorCode(err), "Superseded by a newer upload")
		return
	}
	if err != nil {
		writeJsonResponse(w, sessionErrorCode(err), adapter.ToSessionResponse(ctrl.Snapshot()))
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSessionResponse(ctrl.Snapshot()))
}

// GetSessionHandler godoc
// @Summary      Get session state
// @Tags         Sessions
// @Produce      json
// @Param        id  path  string  true  "Session ID"
// @Success      200  {object}  api.SessionResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /sessions/{id} [get]
func GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctrl, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSessionResponse(ctrl.Snapshot()))
}

// CloseSessionHandler godoc
// @Summary      Close a session
// @Description  Full teardown - derived text, draft, transcript and the binary handle are all released.
// @Tags         Sessions
// @Produce      json
// @Param        id  path  string  true  "Session ID"
// @Success      204  "Closed"
// @Failure      404  {object}  api.ErrorResponse
// @Router       /sessions/{id} [delete]
func CloseSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	if !RemoveSession(id) {
		WriteErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenderPageHandler godoc
// @Summary      Rasterize one page
// @Description  Renders the page as PNG at the given zoom. Page and zoom are clamped, never rejected.
// @Tags         Viewer
// @Produce      png
// @Param        id    path   string  true   "Session ID"
// @Param        page  path   int     true   "Page number, 1-indexed"
// @Param        zoom  query  number  false  "Zoom factor, default is the session's current zoom"
// @Success      200  {file}  file
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse "No document is ready"
// @Router       /sessions/{id}/pages/{page} [get]
func RenderPageHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctrl, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}

	page, err := strconv.Atoi(utils.GetChiURLParam(r, "page"))
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "page must be an integer")
		return
	}
	zoom := ctrl.Snapshot().ZoomFactor
	if raw := r.URL.Query().Get("zoom"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			zoom = parsed
		}
	}

	img, err := ctrl.RenderPage(r.Context(), page, zoom)
	if err != nil {
		WriteErrorResponse(w, sessionErrorCode(err), "Could not render page")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		logRH.Error("Error writing page image", "err", err)
	}
}

// GoToPageHandler godoc
// @Summary      Navigate to a page
// @Description  Clamps the target into [1, pageCount]. No-op unless a document is Ready.
// @Tags         Viewer
// @Accept       json
// @Produce      json
// @Param        id       path  string           true  "Session ID"
// @Param        request  body  api.PageRequest  true  "Target page"
// @Success      200  {object}  api.ViewerResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /sessions/{id}/page [post]
func GoToPageHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctrl, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req api.PageRequest
	if !decodeJsonBody(w, r, &req) {
		return
	}
	page := ctrl.GoToPage(req.Page)
	writeJsonResponse(w, http.StatusOK, api.ViewerResponse{CurrentPage: page, ZoomFactor: ctrl.Snapshot().ZoomFactor})
}

// SetZoomHandler godoc
// @Summary      Set the zoom factor
// @Description  Quantized to 0.1 steps and clamped into [0.5, 3.0].
// @Tags         Viewer
// @Accept       json
// @Produce      json
// @Param        id       path  string           true  "Session ID"
// @Param        request  body  api.ZoomRequest  true  "Target zoom"
// @Success      200  {object}  api.ViewerResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /sessions/{id}/zoom [post]
func SetZoomHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctrl, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req api.ZoomRequest
	if !decodeJsonBody(w, r, &req) {
		return
	}
	zoom := ctrl.SetZoom(req.Factor)
	writeJsonResponse(w, http.StatusOK, api.ViewerResponse{CurrentPage: ctrl.Snapshot().CurrentPage, ZoomFactor: zoom})
}

// SearchHandler godoc
// @Summary      Search the document text
// @Description  Case-insensitive substring search over page texts in page order; first match becomes the current page.
// @Tags         Viewer
// @Accept       json
// @Produce      json
// @Param        id       path  string             true  "Session ID"
// @Param        request  body  api.SearchRequest  true  "Search term"
// @Success      200  {object}  api.SearchResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /sessions/{id}/search [post]
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctrl, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req api.SearchRequest
	if !decodeJsonBody(w, r, &req) {
		return
	}
	page, found := ctrl.SearchText(req.Query)
	writeJsonResponse(w, http.StatusOK, api.SearchResponse{
		Found:       found,
		Page:        page,
		Query:       req.Query,
		CurrentPage: ctrl.Snapshot().CurrentPage,
	})
}

// TransformHandler godoc
// @Summary      Run a one-shot transform action
// @Description  Applies one of the fixed actions (summarize, rewrite_formal, rewrite_simple, extract_data, translate) to the whole document text and overwrites the draft.
// @Tags         AI
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Session ID"
// @Param        request  body  api.TransformRequest  true  "Action name"
// @Success      200  {object}  api.TransformResponse
// @Failure      400  {object}  api.ErrorResponse "Unknown action"
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse "No document text, or a transform already in flight"
// @Failure      502  {object}  api.ErrorResponse "Responder failure - prior draft preserved"
// @Router       /sessions/{id}/transform [post]
func TransformHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctrl, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req api.TransformRequest
	if !decodeJsonBody(w, r, &req) {
		return
	}
	prompt, known := ai.LookupAction(req.Action)
	if !known {
		WriteErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown action %q", req.Action))
		return
	}

	draft, truncated, err := ctrl.RunTransform(r.Context(), prompt)
	if errors.Is(err, session.ErrTransformFailure) {
		WriteErrorResponse(w, http.StatusBadGateway, "Transform failed - prior draft preserved")
		return
	}
	if err != nil {
		WriteErrorResponse(w, sessionErrorCode(err), err.Error())
		return
	}
	writeJsonResponse(w, http.StatusOK, api.TransformResponse{Draft: draft, WasTruncated: truncated})
}

// GetDraftHandler godoc
// @Summary      Get the current draft
// @Tags         AI
// @Produce      json
// @Param        id  path  string  true  "Session ID"
// @Success      200  {object}  api.DraftResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /sessions/{id}/draft [get]
func GetDraftHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctrl, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	writeJsonResponse(w, http.StatusOK, api.DraftResponse{Draft: ctrl.Draft()})
}

// ExportDraftHandler godoc
// @Summary      Download the draft as Markdown
// @Description  Streams the current draft tagged as Markdown under a fixed filename. Pure read, no state change.
// @Tags         AI
// @Produce      plain
// @Param        id  path  string  true  "Session ID"
// @Success      200  {file}  file
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse "Draft is empty"
// @Router       /sessions/{id}/draft/export [get]
func ExportDraftHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctrl, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	data, filename, err := ctrl.ExportDraft()
	if err != nil {
		WriteErrorResponse(w, sessionErrorCode(err), "Draft is empty")
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logRH.Error("Error writing draft export", "err", err)
	}
}

// ChatHandler godoc
// @Summary      Send a chat message about the document
// @Description  Appends the user turn, asks the AI responder with the prior transcript as grounding, appends the reply. A failed turn appends a fixed fallback message instead of erroring.
// @Tags         AI
// @Accept       json
// @Produce      json
// @Param        id       path  string           true  "Session ID"
// @Param        request  body  api.ChatRequest  true  "Chat message"
// @Success      200  {object}  api.ChatResponse
// @Failure      400  {object}  api.ErrorResponse "Blank message"
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse "A chat turn is already in flight"
// @Router       /sessions/{id}/chat [post]
func ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctrl, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req api.ChatRequest
	if !decodeJsonBody(w, r, &req) {
		return
	}

	appended, err := ctrl.SendChatMessage(r.Context(), req.Message)
	if err != nil {
		WriteErrorResponse(w, sessionErrorCode(err), err.Error())
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(ctrl.ID(), appended))
}

// GetTranscriptHandler godoc
// @Summary      Get the full chat transcript
// @Tags         AI
// @Produce      json
// @Param        id  path  string  true  "Session ID"
// @Success      200  {object}  api.TranscriptResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /sessions/{id}/transcript [get]
func GetTranscriptHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	ctrl, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToTranscriptResponse(ctrl.ID(), ctrl.Transcript()))
}
