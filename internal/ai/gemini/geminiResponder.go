package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/DocDesk/internal/ai"
	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/domain/sessionModel"
	"github.com/akolanti/DocDesk/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

func GetGeminiClient(ctx context.Context, apikey string, modelName string) ai.Responder {
	once.Do(func() {
		logger = logger_i.NewLogger("ai_gemini")
		newGeminiClient(ctx, apikey, modelName)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client, modelName: geminiClient.modelName}
}

func newGeminiClient(ctx context.Context, apikey string, modelName string) {

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: modelName}
		logger.Info("Gemini client created", "model", modelName)
		go closeClient(ctx, geminiClient)
	}

}

func (c *llmClient) Transform(ctx context.Context, documentText string, instruction string) (ai.Result, error) {
	text, truncated := ai.Truncate(documentText, config.TransformMaxChars)

	userPrompt := fmt.Sprintf("Document:\n%s\n\nInstruction: %s", text, instruction)

	answer, err := c.generate(ctx, userPrompt)
	if err != nil {
		return ai.Result{}, err
	}
	return ai.Result{Text: answer, WasTruncated: truncated}, nil
}

func (c *llmClient) Converse(ctx context.Context, documentText string, transcript []sessionModel.Message, message string) (ai.Result, error) {
	text, truncated := ai.Truncate(documentText, config.ConverseMaxChars)

	contextText := "Document:\n" + text
	if history := ai.FormatHistory(ai.HistoryWindow(transcript)); history != "" {
		contextText += "\n\nConversation so far:\n" + history
	}
	userPrompt := fmt.Sprintf("%s\n\nUser Question: %s", contextText, message)

	answer, err := c.generate(ctx, userPrompt)
	if err != nil {
		return ai.Result{}, err
	}
	return ai.Result{Text: answer, WasTruncated: truncated}, nil
}

func (c *llmClient) generate(ctx context.Context, userPrompt string) (string, error) {
	systemInstruction := &genai.Content{
		Parts: []*genai.Part{
			{Text: config.ModelContext},
		},
	}

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(userPrompt),
		contentConfig,
	)
	if err != nil {
		logger.Error("Gemini generation failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
}
