// @title           DocDesk API
// @version         1.0
// @description     Browser document workspace backend - upload a PDF, page through rendered pages, search its text, and run AI transforms or chat over it.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/DocDesk/internal/ai"
	"github.com/akolanti/DocDesk/internal/ai/gemini"
	"github.com/akolanti/DocDesk/internal/ai/openaiprov"
	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/data/rasterCache"
	"github.com/akolanti/DocDesk/internal/document/pdfrender"
	"github.com/akolanti/DocDesk/internal/handlers"
	"github.com/akolanti/DocDesk/internal/render"
	"github.com/akolanti/DocDesk/internal/server"
	"github.com/akolanti/DocDesk/internal/session"
	"github.com/akolanti/DocDesk/pkg/logger_i"
)

var (
	listenAddr        string
	stopWarmerChannel chan bool
	warmerWaitGroup   sync.WaitGroup
)

func main() {

	config.Load()
	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//raster cache - redis first, in-memory fallback when redis is offline
	var cache rasterCache.Cache
	if redisCache := rasterCache.GetRedisCache(serviceContext); redisCache != nil {
		cache = redisCache
	} else {
		logger.Error("Redis is offline - using in-memory raster cache")
		cache = rasterCache.InitMemoryCache()
	}

	renderer := pdfrender.NewService(cache)

	var responder ai.Responder
	switch config.AIProvider {
	case "openai":
		responder = openaiprov.GetOpenAIClient(config.OpenAIAPIKey, config.OpenAIModelName)
	default:
		responder = gemini.GetGeminiClient(serviceContext, config.GeminiAPIKey, config.GeminiModelName)
	}
	if responder == nil {
		logger.Error("AI responder failed to initialize. Shutting down.", "provider", config.AIProvider)
		return
	}

	//navigation events feed the render warmer
	navEvents := make(chan session.NavigationEvent, config.NavEventBufferSize)
	stopWarmerChannel = make(chan bool, 1)

	registry := session.NewRegistry(renderer, responder, navEvents)
	handlers.InitSessionHandler(registry)
	render.InitSubscriber(registry, navEvents, stopWarmerChannel, &warmerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WarmerStop:       stopWarmerChannel,
		Group:            &warmerWaitGroup,
		Registry:         registry,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
