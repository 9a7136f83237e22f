package pgvectorDB

import "fmt"

// schemaStatements creates one row per chunk, cascading from materials, plus the match function.
func schemaStatements(dimension int) []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS material_embeddings (
	id bigserial PRIMARY KEY,
	material_id text NOT NULL REFERENCES materials(id) ON DELETE CASCADE,
	course_id text NOT NULL,
	ordinal integer NOT NULL,
	content text NOT NULL,
	embedding_model text NOT NULL,
	embedding vector(%d) NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now(),
	UNIQUE (material_id, ordinal, embedding_model)
)`, dimension),
		`CREATE INDEX IF NOT EXISTS material_embeddings_course_idx
	ON material_embeddings (course_id, embedding_model)`,
		`CREATE INDEX IF NOT EXISTS material_embeddings_embedding_idx
	ON material_embeddings USING hnsw (embedding vector_cosine_ops)`,
		fmt.Sprintf(`CREATE OR REPLACE FUNCTION match_material_embeddings(
	query_embedding vector(%d),
	match_threshold float,
	match_count int,
	filter_course_id text,
	filter_embedding_model text DEFAULT ''
)
RETURNS TABLE (material_id text, ordinal int, content text, similarity float)
LANGUAGE sql STABLE
AS $$
	SELECT me.material_id, me.ordinal, me.content, 1 - (me.embedding <=> query_embedding) AS similarity
	FROM material_embeddings me
	WHERE me.course_id = filter_course_id
		AND (filter_embedding_model = '' OR me.embedding_model = filter_embedding_model)
		AND 1 - (me.embedding <=> query_embedding) >= match_threshold
	ORDER BY me.embedding <=> query_embedding
	LIMIT match_count
$$`, dimension),
	}
}
