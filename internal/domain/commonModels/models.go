package commonModels

import "time"

type DocKind string

const (
	PDF   DocKind = "pdf"
	DOCX  DocKind = "docx"
	OTHER DocKind = "other"
)

// Indexable reports whether text can be extracted from this kind.
func (k DocKind) Indexable() bool {
	return k == PDF || k == DOCX
}

type Material struct {
	Id         string    `json:"id"`
	CourseId   string    `json:"course_id"`
	UploaderId string    `json:"uploader_id,omitempty"`
	Title      string    `json:"title"`
	FileUrl    string    `json:"file_url"`
	ObjectKey  string    `json:"object_key"`
	FileType   string    `json:"file_type"`
	Kind       DocKind   `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}

// TextChunk is one bounded slice of a material's text. Ordinal is its zero-based position in the source.
type TextChunk struct {
	MaterialId string `json:"material_id"`
	CourseId   string `json:"course_id"`
	Ordinal    int    `json:"ordinal"`
	Content    string `json:"content"`
}

type EmbeddingVector struct {
	Values []float32 `json:"values"`
	Model  string    `json:"model"`
}

func (v EmbeddingVector) Dimension() int {
	return len(v.Values)
}

// ChunkRecord is the unit persisted in a vector store: one chunk and its embedding.
type ChunkRecord struct {
	Chunk     TextChunk
	Embedding EmbeddingVector
}

type RetrievalMatch struct {
	MaterialId string  `json:"material_id,omitempty"`
	Ordinal    int     `json:"ordinal"`
	Content    string  `json:"content"`
	Similarity float32 `json:"similarity"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type ChatTurn struct {
	Role Role
	Text string
}
