package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/akolanti/DocDesk/internal/adapter"
	"github.com/akolanti/DocDesk/internal/adapter/utils"
	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/session"
)

func newSessionId() string {
	return utils.GetNewUUID()
}

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(httpCode, message))
}

func validateContext(ctx context.Context) bool {
	logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY).(string))
	if ctx.Err() != nil {
		logRH.Warn("context error", "err", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

// sessionFromRequest resolves {id} and writes the 404 itself on a miss.
func sessionFromRequest(w http.ResponseWriter, r *http.Request) (*session.Controller, bool) {
	id := utils.GetChiURLParam(r, "id")
	ctrl, found := LookupSession(id)
	if !found {
		logRH.Warn("Unknown session", "sessionId", id)
		WriteErrorResponse(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return ctrl, true
}

func decodeJsonBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the request body reader :", "err", err)
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		logRH.Warn("Bad request body", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	return true
}

// readUpload pulls the multipart document out of an upload request. Returns
// name, declared content type and raw bytes; writes its own error responses.
func readUpload(w http.ResponseWriter, r *http.Request) (string, string, []byte, bool) {
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
		return "", "", nil, false
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Could not retrieve file")
		return "", "", nil, false
	}
	defer fileReader.Close()

	docName := r.FormValue("document_name")
	if docName == "" {
		docName = fileMetadata.Filename
	}

	data, err := io.ReadAll(fileReader)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "Read error")
		return "", "", nil, false
	}

	return docName, fileMetadata.Header.Get("Content-Type"), data, true
}

func sessionErrorCode(err error) int {
	switch {
	case errors.Is(err, session.ErrInvalidInputFormat),
		errors.Is(err, session.ErrBlankMessage):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrExtractionFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrNotReady),
		errors.Is(err, session.ErrNoDocument),
		errors.Is(err, session.ErrEmptyDraft),
		errors.Is(err, session.ErrTransformBusy),
		errors.Is(err, session.ErrChatBusy):
		return http.StatusConflict
	case errors.Is(err, session.ErrSessionReplaced):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
