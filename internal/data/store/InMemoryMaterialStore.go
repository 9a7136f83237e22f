package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
)

// InMemoryMaterialStore backs the material repository when no database is configured.
type InMemoryMaterialStore struct {
	mu        *sync.RWMutex
	materials map[string]commonModels.Material
}

func InitInMemoryMaterialStore() *InMemoryMaterialStore {
	return &InMemoryMaterialStore{
		mu:        new(sync.RWMutex),
		materials: make(map[string]commonModels.Material),
	}
}

func (store *InMemoryMaterialStore) CreateMaterial(ctx context.Context, material commonModels.Material) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, exists := store.materials[material.Id]; exists {
		return fmt.Errorf("material %s already exists", material.Id)
	}
	store.materials[material.Id] = material
	return nil
}

func (store *InMemoryMaterialStore) GetMaterial(ctx context.Context, materialId string) (commonModels.Material, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	material, found := store.materials[materialId]
	if !found {
		return commonModels.Material{}, commonModels.ErrNotFound
	}
	return material, nil
}

func (store *InMemoryMaterialStore) ListMaterials(ctx context.Context, courseId string) ([]commonModels.Material, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	result := make([]commonModels.Material, 0)
	for _, m := range store.materials {
		if m.CourseId == courseId {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (store *InMemoryMaterialStore) DeleteMaterial(ctx context.Context, materialId string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, found := store.materials[materialId]; !found {
		return commonModels.ErrNotFound
	}
	delete(store.materials, materialId)
	return nil
}
