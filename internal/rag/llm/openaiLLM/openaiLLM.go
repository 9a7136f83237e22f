package openaiLLM

import (
	"context"
	"errors"
	"net/http"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/rag/llm"
	"github.com/akolanti/CampusAI/internal/rag/prompt"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	HTTPClient  *http.Client
}

// Client streams chat completions from any OpenAI compatible endpoint.
type Client struct {
	api         openai.Client
	model       string
	temperature float64
	logger      *logger_i.Logger
}

func NewClient(opts Options) *Client {
	requestOptions := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		requestOptions = append(requestOptions, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		requestOptions = append(requestOptions, option.WithHTTPClient(opts.HTTPClient))
	}
	return &Client{
		api:         openai.NewClient(requestOptions...),
		model:       opts.Model,
		temperature: opts.Temperature,
		logger:      logger_i.NewLogger("llm_openai"),
	}
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) Stream(ctx context.Context, p prompt.Prompt, onDelta llm.DeltaFunc) error {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	stream := c.api.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toMessages(p),
		Temperature: openai.Float(c.temperature),
	})
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		if err := onDelta(chunk.Choices[0].Delta.Content); err != nil {
			if errors.Is(err, llm.ErrStopStream) {
				return nil
			}
			return err
		}
	}
	if err := stream.Err(); err != nil {
		log.Error("OpenAI stream failed", "error", err)
		return err
	}
	return nil
}

func toMessages(p prompt.Prompt) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(p.Messages)+1)
	messages = append(messages, openai.SystemMessage(p.System))
	for _, t := range p.Messages {
		if t.Role == commonModels.RoleAssistant {
			messages = append(messages, openai.AssistantMessage(t.Text))
			continue
		}
		messages = append(messages, openai.UserMessage(t.Text))
	}
	return messages
}
