package indexModel

import (
	"context"
	"time"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
)

type IndexStatus string

const (
	StatusIndexing IndexStatus = "indexing"
	StatusIndexed  IndexStatus = "indexed"
	StatusPartial  IndexStatus = "partial"
	StatusSkipped  IndexStatus = "skipped"
	StatusFailed   IndexStatus = "failed"
)

// PersistPolicy decides what happens to already embedded batches when a later batch
// exhausts its retries.
type PersistPolicy string

const (
	AllOrNothing PersistPolicy = "all_or_nothing"
	BestEffort   PersistPolicy = "best_effort"
)

type SkipReason string

const (
	SkipUnsupportedKind  SkipReason = "unsupported_kind"
	SkipExtractionFailed SkipReason = "extraction_failed"
	SkipNoText           SkipReason = "no_text"
)

type IndexReport struct {
	MaterialId     string               `json:"material_id"`
	CourseId       string               `json:"course_id"`
	Kind           commonModels.DocKind `json:"kind"`
	Status         IndexStatus          `json:"status"`
	SkipReason     SkipReason           `json:"skip_reason,omitempty"`
	Chunks         int                  `json:"chunks"`
	Embedded       int                  `json:"embedded"`
	Inserted       int                  `json:"inserted"`
	FailedBatches  int                  `json:"failed_batches"`
	EmbeddingModel string               `json:"embedding_model,omitempty"`
	Error          string               `json:"error,omitempty"`
	StartedAt      time.Time            `json:"started_at"`
	FinishedAt     time.Time            `json:"finished_at,omitempty"`
}

// Searchable reports whether at least part of the material can be retrieved.
func (r IndexReport) Searchable() bool {
	return r.Inserted > 0
}

type IndexStore interface {
	GetReport(ctx context.Context, materialId string) (IndexReport, bool)
	SaveReport(ctx context.Context, report IndexReport) error
	DeleteReport(ctx context.Context, materialId string)
}
