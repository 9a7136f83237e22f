package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/domain/indexModel"
	"github.com/akolanti/CampusAI/internal/material"
	"github.com/akolanti/CampusAI/internal/rag"
	"github.com/akolanti/CampusAI/pkg/logger_i"
)

type MaterialService interface {
	Upload(ctx context.Context, in material.UploadInput) (material.UploadResult, error)
	Delete(ctx context.Context, materialId string) error
	List(ctx context.Context, courseId string) ([]commonModels.Material, error)
	IndexReport(ctx context.Context, materialId string) (indexModel.IndexReport, error)
}

type HandlerConfig struct {
	Materials           MaterialService
	Tutor               rag.Service
	TempDir             string
	MaxUploadBytes      int64
	MaxResponseDuration time.Duration
}

// Handler holds the HTTP endpoints. Every dependency is injected.
type Handler struct {
	materials           MaterialService
	tutor               rag.Service
	tempDir             string
	maxUploadBytes      int64
	maxResponseDuration time.Duration
	logger              *logger_i.Logger
}

func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = config.MaxUploadBytes
	}
	if cfg.MaxResponseDuration <= 0 {
		cfg.MaxResponseDuration = config.MaxResponseDuration
	}
	if cfg.TempDir == "" {
		cfg.TempDir = config.TempDirName
	}
	return &Handler{
		materials:           cfg.Materials,
		tutor:               cfg.Tutor,
		tempDir:             cfg.TempDir,
		maxUploadBytes:      cfg.MaxUploadBytes,
		maxResponseDuration: cfg.MaxResponseDuration,
		logger:              logger_i.NewLogger("handlers"),
	}
}

// GetHandler godoc
// @Summary      Health check
// @Tags         Health
// @Success      200
// @Router       /healthz [get]
func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
