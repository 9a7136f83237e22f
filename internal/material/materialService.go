package material

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/CampusAI/internal/adapter/utils"
	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/data/objectStore"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/domain/indexModel"
	"github.com/akolanti/CampusAI/internal/rag/ingest"
	"github.com/akolanti/CampusAI/pkg/logger_i"
)

var (
	ErrNoFile         = fmt.Errorf("%w: no file selected", commonModels.ErrInvalidInput)
	ErrCourseRequired = fmt.Errorf("%w: course is required", commonModels.ErrInvalidInput)
)

const (
	msgNoFile         = "No file selected"
	msgCourseRequired = "Course is required"
	msgUploadFailed   = "Failed to upload material. Please try again."
	msgNotFound       = "Material not found"
)

// UserMessage is the text shown to the uploader for an error returned by this package.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoFile):
		return msgNoFile
	case errors.Is(err, ErrCourseRequired):
		return msgCourseRequired
	case errors.Is(err, commonModels.ErrNotFound):
		return msgNotFound
	default:
		return msgUploadFailed
	}
}

type Indexer interface {
	Ingest(ctx context.Context, material commonModels.Material, path string) (indexModel.IndexReport, error)
}

type VectorRemover interface {
	DeleteMaterial(ctx context.Context, materialId string) error
}

type UploadInput struct {
	CourseId    string
	UploaderId  string
	Title       string
	Filename    string
	ContentType string
	Size        int64
	// Path is a local temporary copy of the upload, owned by the caller.
	Path string
}

type UploadResult struct {
	Success  string
	Material commonModels.Material
	Report   indexModel.IndexReport
}

type ServiceConfig struct {
	Materials commonModels.MaterialRepository
	Objects   objectStore.ObjectStore
	Indexer   Indexer
	Reports   indexModel.IndexStore
	Vectors   VectorRemover
	Now       func() time.Time
}

type Service struct {
	materials commonModels.MaterialRepository
	objects   objectStore.ObjectStore
	indexer   Indexer
	reports   indexModel.IndexStore
	vectors   VectorRemover
	now       func() time.Time
	logger    *logger_i.Logger
}

func InitMaterialService(cfg ServiceConfig) *Service {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		materials: cfg.Materials,
		objects:   cfg.Objects,
		indexer:   cfg.Indexer,
		reports:   cfg.Reports,
		vectors:   cfg.Vectors,
		now:       cfg.Now,
		logger:    logger_i.NewLogger("material_service"),
	}
}

// Upload stores the file, records the material and indexes it. Only storage and record failures
// fail the upload; the indexing outcome is reported in the result.
func (s *Service) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "courseId", in.CourseId)

	if in.Path == "" || in.Size <= 0 {
		return UploadResult{}, ErrNoFile
	}
	if strings.TrimSpace(in.CourseId) == "" {
		return UploadResult{}, ErrCourseRequired
	}

	now := s.now()
	key := objectStore.BuildKey(in.CourseId, in.Filename, now)
	url, err := s.objects.Put(ctx, key, in.Path, in.ContentType)
	if err != nil {
		log.Error("Upload Error", "step", "object_store", "key", key, "error", err)
		return UploadResult{}, fmt.Errorf("storing object: %w", err)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = in.Filename
	}
	m := commonModels.Material{
		Id:         utils.GetNewUUID(),
		CourseId:   in.CourseId,
		UploaderId: in.UploaderId,
		Title:      title,
		FileUrl:    url,
		ObjectKey:  key,
		FileType:   ingest.FileTypeLabel(in.ContentType),
		Kind:       ingest.DetectKind(in.ContentType, in.Filename),
		CreatedAt:  now.UTC(),
	}
	if err := s.materials.CreateMaterial(ctx, m); err != nil {
		log.Error("Upload Error", "step", "material_row", "error", err)
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			log.Warn("Could not remove orphaned object", "key", key, "error", delErr)
		}
		return UploadResult{}, fmt.Errorf("recording material: %w", err)
	}
	log.Info("Material stored", "materialId", m.Id, "kind", m.Kind, "key", key)

	report, err := s.indexer.Ingest(ctx, m, in.Path)
	if err != nil {
		log.Error("Indexing failed", "materialId", m.Id, "status", report.Status, "error", err)
	}
	return UploadResult{Success: successMessage(report), Material: m, Report: report}, nil
}

func successMessage(report indexModel.IndexReport) string {
	switch report.Status {
	case indexModel.StatusIndexed:
		return "Material uploaded and indexed successfully!"
	case indexModel.StatusPartial:
		return "Material uploaded. Only part of it could be indexed for the AI tutor."
	case indexModel.StatusSkipped:
		return "Material uploaded. It has no text the AI tutor can search."
	default:
		return "Material uploaded, but indexing failed. The AI tutor will not use it yet."
	}
}

// Delete removes the material's vectors, index report, stored object and record, in that order.
func (s *Service) Delete(ctx context.Context, materialId string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "materialId", materialId)

	m, err := s.materials.GetMaterial(ctx, materialId)
	if err != nil {
		return err
	}
	if err := s.vectors.DeleteMaterial(ctx, materialId); err != nil {
		log.Error("Deleting vectors failed", "error", err)
		return fmt.Errorf("deleting vectors: %w", err)
	}
	s.reports.DeleteReport(ctx, materialId)
	if m.ObjectKey != "" {
		if err := s.objects.Delete(ctx, m.ObjectKey); err != nil {
			log.Warn("Deleting stored object failed", "key", m.ObjectKey, "error", err)
		}
	}
	if err := s.materials.DeleteMaterial(ctx, materialId); err != nil {
		return err
	}
	log.Info("Material deleted", "courseId", m.CourseId)
	return nil
}

func (s *Service) List(ctx context.Context, courseId string) ([]commonModels.Material, error) {
	if strings.TrimSpace(courseId) == "" {
		return nil, ErrCourseRequired
	}
	return s.materials.ListMaterials(ctx, courseId)
}

func (s *Service) Get(ctx context.Context, materialId string) (commonModels.Material, error) {
	return s.materials.GetMaterial(ctx, materialId)
}

func (s *Service) IndexReport(ctx context.Context, materialId string) (indexModel.IndexReport, error) {
	report, found := s.reports.GetReport(ctx, materialId)
	if !found {
		return indexModel.IndexReport{}, commonModels.ErrNotFound
	}
	return report, nil
}
