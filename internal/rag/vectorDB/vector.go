package vectorDB

import (
	"context"
	"errors"
	"sort"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
)

var ErrInvalidQuery = errors.New("invalid match query")

type MatchQuery struct {
	Embedding []float32
	// Model restricts matches to vectors produced by the same embedding model. Empty matches any.
	Model     string
	CourseId  string
	Threshold float32
	Limit     int
}

func (q MatchQuery) Validate() error {
	switch {
	case len(q.Embedding) == 0:
		return errors.Join(ErrInvalidQuery, errors.New("empty query embedding"))
	case q.CourseId == "":
		return errors.Join(ErrInvalidQuery, errors.New("course id is required"))
	case q.Limit <= 0:
		return errors.Join(ErrInvalidQuery, errors.New("limit must be positive"))
	}
	return nil
}

type Writer interface {
	// InsertBatch persists one batch of rows. Batches are independent; a failure leaves earlier batches in place.
	InsertBatch(ctx context.Context, records []commonModels.ChunkRecord) error
	DeleteMaterial(ctx context.Context, materialId string) error
}

type Reader interface {
	// Match returns at most Limit rows of the course with similarity >= Threshold, most similar first.
	// No row above the threshold is an empty result, not an error.
	Match(ctx context.Context, query MatchQuery) ([]commonModels.RetrievalMatch, error)
}

type VectorStore interface {
	Writer
	Reader
	EnsureSchema(ctx context.Context) error
	Close() error
}

// FilterAndRank enforces the read contract on a raw result set: threshold, order, limit.
func FilterAndRank(matches []commonModels.RetrievalMatch, threshold float32, limit int) []commonModels.RetrievalMatch {
	out := make([]commonModels.RetrievalMatch, 0, len(matches))
	for _, m := range matches {
		if m.Similarity >= threshold {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
