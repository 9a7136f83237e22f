package openaiEmbedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int32
	HTTPClient *http.Client
}

// Client embeds through any OpenAI compatible /embeddings endpoint.
type Client struct {
	api        openai.Client
	model      string
	dimensions int32
	logger     *logger_i.Logger
}

func NewClient(opts Options) *Client {
	requestOptions := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		requestOptions = append(requestOptions, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		requestOptions = append(requestOptions, option.WithHTTPClient(opts.HTTPClient))
	}

	return &Client{
		api:        openai.NewClient(requestOptions...),
		model:      opts.Model,
		dimensions: opts.Dimensions,
		logger:     logger_i.NewLogger("openai_embedding"),
	}
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.EmbedDocuments(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("openai embedding: expected 1 vector, got %d", len(vectors))
	}
	return vectors[0], nil
}

func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	params := openai.EmbeddingNewParams{
		Model:          openai.EmbeddingModel(c.model),
		Input:          openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	}
	if c.dimensions > 0 {
		params.Dimensions = openai.Int(int64(c.dimensions))
	}

	resp, err := c.api.Embeddings.New(ctx, params)
	if err != nil {
		log.Warn("Error getting embeddings from OpenAI", "error", err, "batch", len(texts))
		return nil, err
	}

	data := resp.Data
	sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	out := make([][]float32, 0, len(data))
	for _, d := range data {
		v := make([]float32, len(d.Embedding))
		for i, f := range d.Embedding {
			v[i] = float32(f)
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Client) IsRetryable(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
