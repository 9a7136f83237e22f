package ollamaEmbedding

import (
	"context"
	"fmt"

	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
)

type Options struct {
	ServerURL string
	Model     string
}

// Client embeds with a local Ollama server, for development without a cloud key.
type Client struct {
	embedder embeddings.Embedder
	model    string
	logger   *logger_i.Logger
}

func NewClient(opts Options) (*Client, error) {
	llmOptions := []ollama.Option{ollama.WithModel(opts.Model)}
	if opts.ServerURL != "" {
		llmOptions = append(llmOptions, ollama.WithServerURL(opts.ServerURL))
	}
	llm, err := ollama.New(llmOptions...)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm, embeddings.WithStripNewLines(false))
	if err != nil {
		return nil, fmt.Errorf("creating ollama embedder: %w", err)
	}

	return &Client{
		embedder: embedder,
		model:    opts.Model,
		logger:   logger_i.NewLogger("ollama_embedding"),
	}, nil
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return c.embedder.EmbedQuery(ctx, query)
}

func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := c.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		c.logger.Warn("Error getting embeddings from Ollama", "error", err, "batch", len(texts))
		return nil, err
	}
	return vectors, nil
}
