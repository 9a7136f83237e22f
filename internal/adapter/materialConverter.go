package adapter

import (
	"strings"

	"github.com/akolanti/CampusAI/internal/api"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/domain/indexModel"
	"github.com/akolanti/CampusAI/internal/rag"
)

func ToMaterialResponse(m commonModels.Material) api.MaterialResponse {
	return api.MaterialResponse{
		Id:         m.Id,
		CourseId:   m.CourseId,
		UploaderId: m.UploaderId,
		Title:      m.Title,
		FileUrl:    m.FileUrl,
		FileType:   m.FileType,
		CreatedAt:  m.CreatedAt,
	}
}

func ToMaterialList(materials []commonModels.Material) api.MaterialListResponse {
	out := api.MaterialListResponse{Materials: make([]api.MaterialResponse, 0, len(materials))}
	for _, m := range materials {
		out.Materials = append(out.Materials, ToMaterialResponse(m))
	}
	return out
}

func ToIndexReportResponse(r indexModel.IndexReport) api.IndexReportResponse {
	res := api.IndexReportResponse{
		MaterialId:     r.MaterialId,
		Status:         string(r.Status),
		SkipReason:     string(r.SkipReason),
		Chunks:         r.Chunks,
		Inserted:       r.Inserted,
		FailedBatches:  r.FailedBatches,
		EmbeddingModel: r.EmbeddingModel,
		Error:          r.Error,
		StartedAt:      r.StartedAt,
	}
	if !r.FinishedAt.IsZero() {
		finished := r.FinishedAt
		res.FinishedAt = &finished
	}
	return res
}

func ToUploadResponse(success string, m commonModels.Material, r indexModel.IndexReport) api.UploadResponse {
	material := ToMaterialResponse(m)
	report := ToIndexReportResponse(r)
	return api.UploadResponse{Success: success, Material: &material, Indexing: &report}
}

// ToChatRequest keeps user and assistant turns. A message's text is its text parts joined,
// or its content when it has none.
func ToChatRequest(req api.ChatRequest) rag.ChatRequest {
	out := rag.ChatRequest{CourseId: strings.TrimSpace(req.CourseId)}
	for _, m := range req.Messages {
		role := commonModels.Role(strings.ToLower(m.Role))
		if role != commonModels.RoleUser && role != commonModels.RoleAssistant {
			continue
		}
		out.Messages = append(out.Messages, commonModels.ChatTurn{Role: role, Text: MessageText(m)})
	}
	return out
}

func MessageText(m api.UIMessage) string {
	var sb strings.Builder
	for _, p := range m.Parts {
		if p.Type == "text" {
			sb.WriteString(p.Text)
		}
	}
	if sb.Len() == 0 {
		return m.Content
	}
	return sb.String()
}
