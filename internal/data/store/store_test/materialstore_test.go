package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akolanti/CampusAI/internal/data/store"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
)

func TestInMemoryMaterialStore(t *testing.T) {
	materials := store.InitInMemoryMaterialStore()
	ctx := context.Background()
	now := time.Now()

	for _, m := range []commonModels.Material{
		{Id: "m1", CourseId: "course-a", Title: "Week 1", CreatedAt: now.Add(-time.Hour)},
		{Id: "m2", CourseId: "course-a", Title: "Week 2", CreatedAt: now},
		{Id: "m3", CourseId: "course-b", Title: "Other course", CreatedAt: now},
	} {
		if err := materials.CreateMaterial(ctx, m); err != nil {
			t.Fatalf("CreateMaterial(%s): %v", m.Id, err)
		}
	}

	if err := materials.CreateMaterial(ctx, commonModels.Material{Id: "m1"}); err == nil {
		t.Error("expected duplicate id to be rejected")
	}

	list, err := materials.ListMaterials(ctx, "course-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Id != "m2" || list[1].Id != "m1" {
		t.Errorf("expected course-a materials newest first, got %+v", list)
	}

	if err := materials.DeleteMaterial(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	if _, err := materials.GetMaterial(ctx, "m1"); !errors.Is(err, commonModels.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := materials.DeleteMaterial(ctx, "m1"); !errors.Is(err, commonModels.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
