package gemini

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
	"google.golang.org/genai"
)

type Options struct {
	APIKey      string
	Model       string
	Temperature float32
	HTTPClient  *http.Client
}

type Client struct {
	genAi       *genai.Client
	modelName   string
	temperature float32
	logger      *logger_i.Logger
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	logger := logger_i.NewLogger("llm_gemini")
	logger.Info("Gemini client created", "model", opts.Model)
	return &Client{genAi: c, modelName: opts.Model, temperature: opts.Temperature, logger: logger}, nil
}

func (c *Client) Model() string {
	return c.modelName
}

func (c *Client) Stream(ctx context.Context, p prompt.Prompt, onDelta llm.DeltaFunc) error {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(p.System, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
	}

	for resp, err := range c.genAi.Models.GenerateContentStream(ctx, c.modelName, toContents(p.Messages), contentConfig) {
		if err != nil {
			log.Error("Gemini stream failed", "error", err)
			return err
		}
		text := resp.Text()
		if text == "" {
			continue
		}
		if err := onDelta(text); err != nil {
			if errors.Is(err, llm.ErrStopStream) {
				return nil
			}
			return err
		}
	}
	return ctx.Err()
}

func toContents(turns []commonModels.ChatTurn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := genai.Role(genai.RoleUser)
		if t.Role == commonModels.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	return contents
}
