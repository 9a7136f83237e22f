package ingest

import (
	"regexp"
	"strings"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
)

var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

// Chunker splits text on paragraph boundaries into pieces of at most MaxSize characters.
type Chunker struct {
	MaxSize int
}

func NewChunker(maxSize int) Chunker {
	if maxSize <= 0 {
		maxSize = config.MaxChunkSize
	}
	return Chunker{MaxSize: maxSize}
}

// Split accumulates paragraphs greedily and hard-splits any paragraph that alone exceeds MaxSize.
// Whitespace-only pieces are dropped and order is preserved.
func (c Chunker) Split(text string) []string {
	limit := c.MaxSize
	if limit <= 0 {
		limit = config.MaxChunkSize
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	var chunks []string
	var buf strings.Builder
	bufLen := 0

	flush := func() {
		if bufLen == 0 {
			return
		}
		chunks = append(chunks, hardSplit(strings.TrimSpace(buf.String()), limit)...)
		buf.Reset()
		bufLen = 0
	}

	for _, p := range blankLine.Split(text, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		pLen := len([]rune(p))
		if bufLen > 0 && bufLen+2+pLen > limit {
			flush()
		}
		if bufLen > 0 {
			buf.WriteString("\n\n")
			bufLen += 2
		}
		buf.WriteString(p)
		bufLen += pLen
	}
	flush()
	return chunks
}

// Chunks splits text and numbers the pieces from zero.
func (c Chunker) Chunks(materialId, courseId, text string) []commonModels.TextChunk {
	parts := c.Split(text)
	out := make([]commonModels.TextChunk, 0, len(parts))
	for i, p := range parts {
		out = append(out, commonModels.TextChunk{
			MaterialId: materialId,
			CourseId:   courseId,
			Ordinal:    i,
			Content:    p,
		})
	}
	return out
}

func hardSplit(s string, limit int) []string {
	r := []rune(s)
	if len(r) <= limit {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return []string{s}
	}
	var out []string
	for start := 0; start < len(r); start += limit {
		piece := string(r[start:min(start+limit, len(r))])
		if strings.TrimSpace(piece) == "" {
			continue
		}
		out = append(out, piece)
	}
	return out
}
