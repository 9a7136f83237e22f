package chromemDB

import (
	"context"
	"math"
	"testing"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = "test-embedding"

// unitAt returns a 2-d unit vector whose cosine similarity with (1, 0) is sim.
func unitAt(sim float64) []float32 {
	return []float32{float32(sim), float32(math.Sqrt(1 - sim*sim))}
}

func record(course, material string, ordinal int, content string, vec []float32) commonModels.ChunkRecord {
	return commonModels.ChunkRecord{
		Chunk: commonModels.TextChunk{
			MaterialId: material,
			CourseId:   course,
			Ordinal:    ordinal,
			Content:    content,
		},
		Embedding: commonModels.EmbeddingVector{Values: vec, Model: testModel},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("", "test")
	require.NoError(t, err)
	return store
}

func query(course string, threshold float32, limit int) vectorDB.MatchQuery {
	return vectorDB.MatchQuery{
		Embedding: []float32{1, 0},
		Model:     testModel,
		CourseId:  course,
		Threshold: threshold,
		Limit:     limit,
	}
}

func TestMatch_ThresholdFilteringAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertBatch(ctx, []commonModels.ChunkRecord{
		record("course-a", "m1", 0, "half", unitAt(0.5)),
		record("course-a", "m1", 1, "low", unitAt(0.2)),
		record("course-a", "m1", 2, "mid", unitAt(0.35)),
	}))

	matches, err := store.Match(ctx, query("course-a", 0.3, 5))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "half", matches[0].Content)
	assert.Equal(t, "mid", matches[1].Content)
	assert.InDelta(t, 0.5, matches[0].Similarity, 1e-4)
	assert.InDelta(t, 0.35, matches[1].Similarity, 1e-4)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Similarity, float32(0.3))
	}
}

func TestMatch_CourseIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertBatch(ctx, []commonModels.ChunkRecord{
		record("course-b", "other", 0, "identical text from another course", unitAt(1)),
		record("course-a", "mine", 0, "my course text", unitAt(0.6)),
	}))

	matches, err := store.Match(ctx, query("course-a", 0, 10))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "mine", matches[0].MaterialId)

	none, err := store.Match(ctx, query("course-c", 0, 10))
	require.NoError(t, err)
	assert.Empty(t, none, "a course without materials gets an empty result, not an error")
}

func TestMatch_EmbeddingModelIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	legacy := record("course-a", "old", 0, "embedded with an older model", unitAt(0.9))
	legacy.Embedding.Model = "text-embedding-004"
	require.NoError(t, store.InsertBatch(ctx, []commonModels.ChunkRecord{
		legacy,
		record("course-a", "new", 0, "embedded with the current model", unitAt(0.7)),
	}))

	matches, err := store.Match(ctx, query("course-a", 0, 10))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "new", matches[0].MaterialId)
}

func TestMatch_LimitAndEmptyStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	empty, err := store.Match(ctx, query("course-a", 0.3, 5))
	require.NoError(t, err)
	assert.Empty(t, empty)

	var batch []commonModels.ChunkRecord
	for i, sim := range []float64{0.9, 0.8, 0.7, 0.6} {
		batch = append(batch, record("course-a", "m1", i, "chunk", unitAt(sim)))
	}
	require.NoError(t, store.InsertBatch(ctx, batch))

	matches, err := store.Match(ctx, query("course-a", 0.3, 2))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Ordinal)
	assert.Equal(t, 1, matches[1].Ordinal)
}

func TestDeleteMaterial(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertBatch(ctx, []commonModels.ChunkRecord{
		record("course-a", "keep", 0, "keep me", unitAt(0.8)),
		record("course-a", "drop", 0, "drop me", unitAt(0.9)),
		record("course-a", "drop", 1, "drop me too", unitAt(0.85)),
	}))

	require.NoError(t, store.DeleteMaterial(ctx, "drop"))

	matches, err := store.Match(ctx, query("course-a", 0, 10))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "keep", matches[0].MaterialId)
}

func TestMatch_RejectsInvalidQuery(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Match(context.Background(), vectorDB.MatchQuery{Embedding: []float32{1}, Limit: 1})
	assert.ErrorIs(t, err, vectorDB.ErrInvalidQuery)
}
