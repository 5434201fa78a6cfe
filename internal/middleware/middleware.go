package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/DocDesk/internal/handlers"
	"github.com/akolanti/DocDesk/internal/metrics"
	"github.com/akolanti/DocDesk/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

var CreateSessionHandler = Wrap(handlers.CreateSessionHandler)
var ReplaceDocumentHandler = Wrap(handlers.ReplaceDocumentHandler)
var GetSessionHandler = Wrap(handlers.GetSessionHandler)
var CloseSessionHandler = Wrap(handlers.CloseSessionHandler)
var RenderPageHandler = Wrap(handlers.RenderPageHandler)
var GoToPageHandler = Wrap(handlers.GoToPageHandler)
var SetZoomHandler = Wrap(handlers.SetZoomHandler)
var SearchHandler = Wrap(handlers.SearchHandler)
var TransformHandler = Wrap(handlers.TransformHandler)
var GetDraftHandler = Wrap(handlers.GetDraftHandler)
var ExportDraftHandler = Wrap(handlers.ExportDraftHandler)
var ChatHandler = Wrap(handlers.ChatHandler)
var GetTranscriptHandler = Wrap(handlers.GetTranscriptHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Info("New request received")
	re = injectTrace(re)
	re = authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails
	}
	re = rateLimiter(re)
	return re
}
