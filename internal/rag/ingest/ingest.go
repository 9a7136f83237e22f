package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/domain/indexModel"
	"github.com/akolanti/CampusAI/internal/metrics"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB"
	"github.com/akolanti/CampusAI/pkg/logger_i"
)

type TextExtractor interface {
	Extract(ctx context.Context, path string, kind commonModels.DocKind) (string, error)
}

// ChunkEmbedder is satisfied by *embedding.Batcher.
type ChunkEmbedder interface {
	Embed(ctx context.Context, chunks []string) ([][]float32, error)
}

type Options struct {
	Extractor       TextExtractor
	Chunker         Chunker
	Embedder        ChunkEmbedder
	EmbeddingModel  string
	Writer          vectorDB.Writer
	Reports         indexModel.IndexStore
	InsertBatchSize int
	Policy          indexModel.PersistPolicy
}

// Pipeline takes one stored material through extract, chunk, embed and insert.
type Pipeline struct {
	opts   Options
	logger *logger_i.Logger
}

func NewPipeline(opts Options) *Pipeline {
	if opts.InsertBatchSize <= 0 {
		opts.InsertBatchSize = config.InsertBatchSize
	}
	if opts.Policy == "" {
		opts.Policy = indexModel.AllOrNothing
	}
	if opts.Chunker.MaxSize <= 0 {
		opts.Chunker = NewChunker(0)
	}
	return &Pipeline{opts: opts, logger: logger_i.NewLogger("ingest")}
}

// Ingest indexes the file at path for material. The returned report is always populated;
// the error is non-nil only when embedding failed and nothing or only part of the material is searchable.
// Insert failures are reflected in the report status without an error.
func (p *Pipeline) Ingest(ctx context.Context, material commonModels.Material, path string) (indexModel.IndexReport, error) {
	log := p.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "materialId", material.Id)
	start := time.Now()

	report := indexModel.IndexReport{
		MaterialId:     material.Id,
		CourseId:       material.CourseId,
		Kind:           material.Kind,
		Status:         indexModel.StatusIndexing,
		EmbeddingModel: p.opts.EmbeddingModel,
		StartedAt:      start.UTC(),
	}
	p.save(ctx, report)

	report, err := p.run(ctx, material, path, report)
	report.FinishedAt = time.Now().UTC()
	if err != nil {
		report.Error = err.Error()
	}
	p.save(ctx, report)

	metrics.CaptureIngestion(string(report.Status), time.Since(start))
	log.Info("Ingestion finished", "status", report.Status, "chunks", report.Chunks, "inserted", report.Inserted, "failedBatches", report.FailedBatches)
	return report, err
}

func (p *Pipeline) run(ctx context.Context, material commonModels.Material, path string, report indexModel.IndexReport) (indexModel.IndexReport, error) {
	log := p.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "materialId", material.Id)

	if !material.Kind.Indexable() {
		return skip(report, indexModel.SkipUnsupportedKind), nil
	}

	text, err := p.opts.Extractor.Extract(ctx, path, material.Kind)
	if err != nil {
		log.Error("Text extraction failed", "kind", material.Kind, "error", err)
		return skip(report, indexModel.SkipExtractionFailed), nil
	}

	chunks := p.opts.Chunker.Chunks(material.Id, material.CourseId, text)
	report.Chunks = len(chunks)
	if len(chunks) == 0 {
		return skip(report, indexModel.SkipNoText), nil
	}
	log.Debug("Chunked material", "chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, embedErr := p.opts.Embedder.Embed(ctx, texts)
	report.Embedded = len(vectors)
	if embedErr != nil {
		log.Error("Embedding stopped", "embedded", len(vectors), "chunks", len(chunks), "policy", p.opts.Policy, "error", embedErr)
		if p.opts.Policy != indexModel.BestEffort || len(vectors) == 0 {
			report.Status = indexModel.StatusFailed
			return report, fmt.Errorf("material not indexed: %w", embedErr)
		}
	}

	records := make([]commonModels.ChunkRecord, len(vectors))
	for i := range vectors {
		records[i] = commonModels.ChunkRecord{
			Chunk:     chunks[i],
			Embedding: commonModels.EmbeddingVector{Values: vectors[i], Model: p.opts.EmbeddingModel},
		}
	}

	inserted, failedBatches := p.insert(ctx, records)
	report.Inserted = inserted
	report.FailedBatches = failedBatches
	metrics.AddChunksIndexed(inserted)

	switch {
	case inserted == 0:
		report.Status = indexModel.StatusFailed
	case embedErr != nil || failedBatches > 0:
		report.Status = indexModel.StatusPartial
	default:
		report.Status = indexModel.StatusIndexed
	}

	if embedErr != nil {
		return report, fmt.Errorf("material partially indexed: %w", embedErr)
	}
	return report, nil
}

// insert writes records in independent batches; a failed batch is logged and the rest continue.
func (p *Pipeline) insert(ctx context.Context, records []commonModels.ChunkRecord) (inserted, failedBatches int) {
	log := p.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	size := p.opts.InsertBatchSize

	for batch, start := 0, 0; start < len(records); batch, start = batch+1, start+size {
		end := min(start+size, len(records))
		callStart := time.Now()
		err := p.opts.Writer.InsertBatch(ctx, records[start:end])
		metrics.CaptureExecutionMetrics("vector_insert", time.Since(callStart))
		if err != nil {
			log.Error("Insert batch failed", "batch", batch, "rows", end-start, "error", err)
			metrics.IncrementInsertBatchFailures()
			failedBatches++
			continue
		}
		inserted += end - start
	}
	return inserted, failedBatches
}

func (p *Pipeline) save(ctx context.Context, report indexModel.IndexReport) {
	if p.opts.Reports == nil {
		return
	}
	if err := p.opts.Reports.SaveReport(ctx, report); err != nil {
		p.logger.Warn("Could not save index report", "materialId", report.MaterialId, "error", err)
	}
}

func skip(report indexModel.IndexReport, reason indexModel.SkipReason) indexModel.IndexReport {
	report.Status = indexModel.StatusSkipped
	report.SkipReason = reason
	return report
}
