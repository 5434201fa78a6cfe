package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//uploads
	MaxUploadSize = 32 << 20 //32mb

	//document extraction
	ExtractPageTimeout = 10 * time.Second
	LoadTimeout        = 60 * time.Second

	//rendering
	RenderTimeout      = 15 * time.Second
	RenderBaseDPI      = 72.0
	RasterCacheTTL     = 10 * time.Minute
	NavEventBufferSize = 16

	//ai responder
	AIRequestTimeout  = 60 * time.Second
	TransformMaxChars = 15000
	ConverseMaxChars  = 20000
	ChatHistoryWindow = 5 //most recent turns replayed per conversational call

	ModelContext = "You are a document workspace assistant. Ground every answer in the supplied document text. If the document does not contain the answer, say you dont know."

	GeminiModelName = "gemini-2.5-flash-lite-preview-09-2025"
	OpenAIModelName = "gpt-4o-mini"

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisRasterCache = 0
)

// env backed settings - godotenv fills the process env first
var (
	NoAuthBypass  = false
	AuthToken     = ""
	RedisPassword = ""
	AIProvider    = "gemini" //gemini | openai
	GeminiAPIKey  = ""
	OpenAIAPIKey  = ""
)

func Load() {
	//a missing .env file is fine - the plain process env still applies
	_ = godotenv.Load()

	AuthToken = os.Getenv("DOCDESK_AUTH_TOKEN")
	NoAuthBypass = AuthToken == ""
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if p := os.Getenv("DOCDESK_AI_PROVIDER"); p != "" {
		AIProvider = p
	}
}
