package api

import "time"

// responses---------------------

type ErrorResponse struct {
	Error string `json:"error" example:"No file selected"`
}

type SuccessResponse struct {
	Success string `json:"success" example:"Material deleted"`
}

type MaterialResponse struct {
	Id         string    `json:"id" example:"0b7f9c1e-5d3a-4c7e-9a51-2f1d8c7b6a40"`
	CourseId   string    `json:"course_id" example:"bio-101"`
	UploaderId string    `json:"uploader_id,omitempty"`
	Title      string    `json:"title" example:"Week 1 - Cell biology"`
	FileUrl    string    `json:"file_url"`
	FileType   string    `json:"file_type" example:"pdf"`
	CreatedAt  time.Time `json:"created_at"`
}

type IndexReportResponse struct {
	MaterialId     string     `json:"material_id"`
	Status         string     `json:"status" example:"indexed"`
	SkipReason     string     `json:"skip_reason,omitempty" example:"no_text"`
	Chunks         int        `json:"chunks"`
	Inserted       int        `json:"inserted"`
	FailedBatches  int        `json:"failed_batches"`
	EmbeddingModel string     `json:"embedding_model,omitempty"`
	Error          string     `json:"error,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty"`
}

type UploadResponse struct {
	Success  string               `json:"success,omitempty" example:"Material uploaded and indexed successfully!"`
	Error    string               `json:"error,omitempty"`
	Material *MaterialResponse    `json:"material,omitempty"`
	Indexing *IndexReportResponse `json:"indexing,omitempty"`
}

type MaterialListResponse struct {
	Materials []MaterialResponse `json:"materials"`
}

// requests---------------------

// UIMessagePart is one part of a chat UI message. Only "text" parts carry text for the model.
type UIMessagePart struct {
	Type string `json:"type" example:"text"`
	Text string `json:"text,omitempty" example:"What is photosynthesis?"`
}

type UIMessage struct {
	Id      string          `json:"id,omitempty"`
	Role    string          `json:"role" validate:"required" example:"user"`
	Parts   []UIMessagePart `json:"parts,omitempty"`
	Content string          `json:"content,omitempty"`
}

type ChatRequest struct {
	Messages []UIMessage `json:"messages" validate:"required"`
	CourseId string      `json:"courseId" validate:"required" example:"bio-101"`
}
