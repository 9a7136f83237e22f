package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/data/redisStore"
	"github.com/akolanti/CampusAI/internal/domain/indexModel"
	"github.com/akolanti/CampusAI/pkg/logger_i"
)

const indexKeyPrefix = "index:"

type RedisIndexStore struct {
	store  *redisStore.Store
	ttl    time.Duration
	logger *logger_i.Logger
}

func NewRedisIndexStore(store *redisStore.Store, ttl time.Duration) *RedisIndexStore {
	return &RedisIndexStore{
		store:  store,
		ttl:    ttl,
		logger: logger_i.NewLogger("IndexStore"),
	}
}

func indexKey(materialId string) string {
	return indexKeyPrefix + materialId
}

func (s *RedisIndexStore) SaveReport(ctx context.Context, report indexModel.IndexReport) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "materialId", report.MaterialId)
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, indexKey(report.MaterialId), data, s.ttl)
	if err == nil {
		log.Debug("Saved index report to Redis", "status", report.Status)
	}
	return err
}

func (s *RedisIndexStore) GetReport(ctx context.Context, materialId string) (indexModel.IndexReport, bool) {
	var report indexModel.IndexReport
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "materialId", materialId)

	val, err := s.store.Get(ctx, indexKey(materialId))
	if s.store.IsNil(err) {
		return report, false
	} else if err != nil {
		log.Error("Error reading index report", "error", err)
		return report, false
	}

	if err = json.Unmarshal([]byte(val), &report); err != nil {
		log.Error("Corrupt index report", "error", err)
		return report, false
	}
	return report, true
}

func (s *RedisIndexStore) DeleteReport(ctx context.Context, materialId string) {
	if err := s.store.Del(ctx, indexKey(materialId)); err != nil {
		s.logger.Error("Error deleting index report from Redis", "materialId", materialId, "error", err)
		return
	}
	s.logger.Debug("Index report deleted from Redis", "materialId", materialId)
}
