package openaiprov

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/DocDesk/internal/ai"
	"github.com/akolanti/DocDesk/internal/config"
	"github.com/akolanti/DocDesk/internal/domain/sessionModel"
	"github.com/akolanti/DocDesk/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var openaiClient *llmClient
var once sync.Once

func GetOpenAIClient(apikey string, modelName string) ai.Responder {
	once.Do(func() {
		logger = logger_i.NewLogger("ai_openai")
		if apikey == "" {
			logger.Error("OpenAI API key is empty")
			return
		}
		openaiClient = &llmClient{
			client:    openai.NewClient(option.WithAPIKey(apikey)),
			modelName: modelName,
		}
		logger.Info("OpenAI client created", "model", modelName)
	})

	if openaiClient == nil {
		return nil
	}
	return &llmClient{client: openaiClient.client, modelName: openaiClient.modelName}
}

func (c *llmClient) Transform(ctx context.Context, documentText string, instruction string) (ai.Result, error) {
	text, truncated := ai.Truncate(documentText, config.TransformMaxChars)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(config.ModelContext),
		openai.UserMessage(fmt.Sprintf("Document:\n%s\n\nInstruction: %s", text, instruction)),
	}

	answer, err := c.complete(ctx, messages)
	if err != nil {
		return ai.Result{}, err
	}
	return ai.Result{Text: answer, WasTruncated: truncated}, nil
}

func (c *llmClient) Converse(ctx context.Context, documentText string, transcript []sessionModel.Message, message string) (ai.Result, error) {
	text, truncated := ai.Truncate(documentText, config.ConverseMaxChars)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(config.ModelContext + "\n\nDocument:\n" + text),
	}
	for _, msg := range ai.HistoryWindow(transcript) {
		if msg.Role == sessionModel.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(msg.Content))
		} else {
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	answer, err := c.complete(ctx, messages)
	if err != nil {
		return ai.Result{}, err
	}
	return ai.Result{Text: answer, WasTruncated: truncated}, nil
}

func (c *llmClient) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.modelName),
		Messages: messages,
	})
	if err != nil {
		logger.Error("OpenAI generation failed", "error", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
