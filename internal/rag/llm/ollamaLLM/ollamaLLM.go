package ollamaLLM

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/rag/llm"
	"github.com/akolanti/CampusAI/internal/rag/prompt"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

type Options struct {
	ServerURL   string
	Model       string
	Temperature float64
	HTTPClient  *http.Client
}

type Client struct {
	model       llms.Model
	modelName   string
	temperature float64
	logger      *logger_i.Logger
}

func NewClient(opts Options) (*Client, error) {
	llmOptions := []ollama.Option{ollama.WithModel(opts.Model)}
	if opts.ServerURL != "" {
		llmOptions = append(llmOptions, ollama.WithServerURL(opts.ServerURL))
	}
	if opts.HTTPClient != nil {
		llmOptions = append(llmOptions, ollama.WithHTTPClient(opts.HTTPClient))
	}
	model, err := ollama.New(llmOptions...)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}
	return &Client{
		model:       model,
		modelName:   opts.Model,
		temperature: opts.Temperature,
		logger:      logger_i.NewLogger("llm_ollama"),
	}, nil
}

func (c *Client) Model() string {
	return c.modelName
}

func (c *Client) Stream(ctx context.Context, p prompt.Prompt, onDelta llm.DeltaFunc) error {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	_, err := c.model.GenerateContent(ctx, toMessages(p),
		llms.WithTemperature(c.temperature),
		llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			return onDelta(string(chunk))
		}),
	)
	if errors.Is(err, llm.ErrStopStream) {
		return nil
	}
	if err != nil {
		log.Error("Ollama generation failed", "error", err)
	}
	return err
}

func toMessages(p prompt.Prompt) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(p.Messages)+1)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, p.System))
	for _, t := range p.Messages {
		role := llms.ChatMessageTypeHuman
		if t.Role == commonModels.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, t.Text))
	}
	return messages
}
