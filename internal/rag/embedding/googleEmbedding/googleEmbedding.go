package googleEmbedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"google.golang.org/genai"
)

type Options struct {
	APIKey     string
	Model      string
	Dimensions int32
	HTTPClient *http.Client
}

type Client struct {
	genAi     *genai.Client
	model     string
	dimension int32
	logger    *logger_i.Logger
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("creating google embedding client: %w", err)
	}

	logger := logger_i.NewLogger("google_embedding")
	logger.Info("Google Embedding client created", "model", opts.Model, "dimensions", opts.Dimensions)
	return &Client{
		genAi:     c,
		model:     opts.Model,
		dimension: opts.Dimensions,
		logger:    logger,
	}, nil
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) IsRetryable(err error) bool {
	return IsRetryable(err)
}

func (c *Client) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := c.doCall(ctx, genai.Text(query), taskRetrievalQuery)
	if err != nil {
		log.Error("Error getting query embedding from Google", "error", err)
		return nil, err
	}
	if len(result.Embeddings) == 0 || result.Embeddings[0] == nil {
		return nil, fmt.Errorf("google embedding: empty response for query")
	}
	return result.Embeddings[0].Values, nil
}

// EmbedDocuments sends the whole batch in one request. Retries are the caller's concern.
func (c *Client) EmbedDocuments(ctx context.Context, chunks []string) ([][]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	res, err := c.doCall(ctx, getContent(chunks), taskRetrievalDocument)
	if err != nil {
		log.Warn("Error getting embeddings from Google", "error", err, "batch", len(chunks))
		return nil, err
	}

	embeddingResults := make([][]float32, 0, len(res.Embeddings))
	for _, r := range res.Embeddings {
		if r == nil {
			embeddingResults = append(embeddingResults, nil)
			continue
		}
		embeddingResults = append(embeddingResults, r.Values)
	}
	return embeddingResults, nil
}

func (c *Client) doCall(ctx context.Context, content []*genai.Content, taskType string) (*genai.EmbedContentResponse, error) {
	conf := &genai.EmbedContentConfig{TaskType: taskType}
	if c.dimension > 0 {
		dim := c.dimension
		conf.OutputDimensionality = &dim
	}
	return c.genAi.Models.EmbedContent(ctx, c.model, content, conf)
}
