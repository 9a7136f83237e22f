package embedding

import (
	"context"
	"errors"
)

var (
	ErrEmptyEmbedding      = errors.New("embedding service returned an empty vector")
	ErrVectorCountMismatch = errors.New("embedding service returned a different number of vectors than inputs")
)

// DocumentEmbedder turns an ordered batch of texts into one vector per text, same order.
type DocumentEmbedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

type Embedder interface {
	DocumentEmbedder
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
	// Model is stored with every vector so mixed-model corpora never match across models.
	Model() string
}

// RetryClassifier is implemented by providers that can tell transient failures from permanent ones.
type RetryClassifier interface {
	IsRetryable(err error) bool
}
