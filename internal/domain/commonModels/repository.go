package commonModels

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

type MaterialRepository interface {
	CreateMaterial(ctx context.Context, material Material) error
	GetMaterial(ctx context.Context, materialId string) (Material, error)
	ListMaterials(ctx context.Context, courseId string) ([]Material, error)
	DeleteMaterial(ctx context.Context, materialId string) error
}
