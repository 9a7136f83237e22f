package qdrantDB

import (
	"fmt"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

const (
	fieldContent        = "content"
	fieldMaterialId     = "material_id"
	fieldCourseId       = "course_id"
	fieldOrdinal        = "ordinal"
	fieldEmbeddingModel = "embedding_model"
)

var indexedFields = []string{fieldCourseId, fieldMaterialId, fieldEmbeddingModel}

// pointId is stable per (material, ordinal, model) so re-indexing a material overwrites its points.
func pointId(chunk commonModels.TextChunk, model string) string {
	key := fmt.Sprintf("%s/%d/%s", chunk.MaterialId, chunk.Ordinal, model)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

func toPoint(record commonModels.ChunkRecord) *qdrant.PointStruct {
	return &qdrant.PointStruct{
		Id:      qdrant.NewID(pointId(record.Chunk, record.Embedding.Model)),
		Vectors: qdrant.NewVectors(record.Embedding.Values...),
		Payload: qdrant.NewValueMap(map[string]any{
			fieldContent:        record.Chunk.Content,
			fieldMaterialId:     record.Chunk.MaterialId,
			fieldCourseId:       record.Chunk.CourseId,
			fieldOrdinal:        int64(record.Chunk.Ordinal),
			fieldEmbeddingModel: record.Embedding.Model,
		}),
	}
}

func fromScoredPoint(hit *qdrant.ScoredPoint) commonModels.RetrievalMatch {
	return commonModels.RetrievalMatch{
		MaterialId: hit.Payload[fieldMaterialId].GetStringValue(),
		Ordinal:    int(hit.Payload[fieldOrdinal].GetIntegerValue()),
		Content:    hit.Payload[fieldContent].GetStringValue(),
		Similarity: hit.Score,
	}
}

func courseFilter(courseId, model string) *qdrant.Filter {
	must := []*qdrant.Condition{qdrant.NewMatch(fieldCourseId, courseId)}
	if model != "" {
		must = append(must, qdrant.NewMatch(fieldEmbeddingModel, model))
	}
	return &qdrant.Filter{Must: must}
}

func materialFilter(materialId string) *qdrant.Filter {
	return &qdrant.Filter{Must: []*qdrant.Condition{qdrant.NewMatch(fieldMaterialId, materialId)}}
}
