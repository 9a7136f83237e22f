package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/data/redisStore"
	"github.com/akolanti/CampusAI/internal/data/store"
	"github.com/akolanti/CampusAI/internal/domain/indexModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisIndexStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	indexStore := store.NewRedisIndexStore(redisStore.NewFromClient(client), time.Hour)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	report := indexModel.IndexReport{
		MaterialId: "mat-1",
		CourseId:   "course-a",
		Status:     indexModel.StatusIndexed,
		Chunks:     4,
		Embedded:   4,
		Inserted:   4,
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		if err := indexStore.SaveReport(ctx, report); err != nil {
			t.Fatalf("SaveReport failed: %v", err)
		}

		got, found := indexStore.GetReport(ctx, "mat-1")
		if !found {
			t.Fatal("report was saved but not found in Redis")
		}
		if got.Status != indexModel.StatusIndexed || got.Inserted != 4 || got.CourseId != "course-a" {
			t.Errorf("data mismatch: %+v", got)
		}
	})

	t.Run("TTL is applied", func(t *testing.T) {
		if ttl := mr.TTL("index:mat-1"); ttl != time.Hour {
			t.Errorf("expected 1h ttl, got %v", ttl)
		}
	})

	t.Run("Get missing report", func(t *testing.T) {
		if _, found := indexStore.GetReport(ctx, "ghost-id"); found {
			t.Error("expected found=false for a missing key")
		}
	})

	t.Run("Corrupt value is reported missing", func(t *testing.T) {
		mr.Set("index:broken", "{not json")
		if _, found := indexStore.GetReport(ctx, "broken"); found {
			t.Error("expected found=false for a corrupt value")
		}
	})

	t.Run("Delete report", func(t *testing.T) {
		indexStore.DeleteReport(ctx, "mat-1")
		if mr.Exists("index:mat-1") {
			t.Error("report still exists in Redis after DeleteReport")
		}
	})
}

func TestInMemoryIndexStore_ConcurrentAccess(t *testing.T) {
	indexStore := store.InitInMemoryIndexStore()
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = indexStore.SaveReport(ctx, indexModel.IndexReport{MaterialId: "shared", Status: indexModel.StatusIndexing})
			_, _ = indexStore.GetReport(ctx, "shared")
		}()
	}
	wg.Wait()

	if _, found := indexStore.GetReport(ctx, "shared"); !found {
		t.Fatal("expected the report to be stored")
	}
	indexStore.DeleteReport(ctx, "shared")
	if _, found := indexStore.GetReport(ctx, "shared"); found {
		t.Fatal("expected the report to be deleted")
	}
}
