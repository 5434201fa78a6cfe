package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/DocDesk/internal/adapter/utils"
	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/middleware"
	"github.com/akolanti/DocDesk/internal/session"
	"github.com/akolanti/DocDesk/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WarmerStop       chan bool
	Group            *sync.WaitGroup
	Registry         *session.Registry
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Post("/sessions", middleware.CreateSessionHandler)
	r.Router.Get("/sessions/{id}", middleware.GetSessionHandler)
	r.Router.Delete("/sessions/{id}", middleware.CloseSessionHandler)
	r.Router.Put("/sessions/{id}/document", middleware.ReplaceDocumentHandler)
	r.Router.Get("/sessions/{id}/pages/{page}", middleware.RenderPageHandler)
	r.Router.Post("/sessions/{id}/page", middleware.GoToPageHandler)
	r.Router.Post("/sessions/{id}/zoom", middleware.SetZoomHandler)
	r.Router.Post("/sessions/{id}/search", middleware.SearchHandler)
	r.Router.Post("/sessions/{id}/transform", middleware.TransformHandler)
	r.Router.Get("/sessions/{id}/draft", middleware.GetDraftHandler)
	r.Router.Get("/sessions/{id}/draft/export", middleware.ExportDraftHandler)
	r.Router.Post("/sessions/{id}/chat", middleware.ChatHandler)
	r.Router.Get("/sessions/{id}/transcript", middleware.GetTranscriptHandler)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully: %s", "err", err)
		}

		//close the render warmer, then every live session
		close(shutdownParams.WarmerStop)
		shutdownParams.Group.Wait()
		shutdownParams.Registry.CloseAll()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
