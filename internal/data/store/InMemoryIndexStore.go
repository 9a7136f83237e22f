package store

import (
	"context"
	"sync"

	"github.com/akolanti/CampusAI/internal/domain/indexModel"
	"github.com/akolanti/CampusAI/pkg/logger_i"
)

type InMemoryIndexStore struct {
	mu        *sync.RWMutex
	reportMap map[string]indexModel.IndexReport
	logger    *logger_i.Logger
}

func InitInMemoryIndexStore() *InMemoryIndexStore {
	return &InMemoryIndexStore{
		mu:        new(sync.RWMutex),
		reportMap: make(map[string]indexModel.IndexReport),
		logger:    logger_i.NewLogger("InMem IndexStore"),
	}
}

func (store *InMemoryIndexStore) SaveReport(ctx context.Context, report indexModel.IndexReport) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.reportMap[report.MaterialId] = report
	store.logger.Debug("saved index report", "materialId", report.MaterialId, "status", report.Status)
	return nil
}

func (store *InMemoryIndexStore) GetReport(ctx context.Context, materialId string) (indexModel.IndexReport, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	result, found := store.reportMap[materialId]
	return result, found
}

func (store *InMemoryIndexStore) DeleteReport(ctx context.Context, materialId string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.reportMap, materialId)
}
