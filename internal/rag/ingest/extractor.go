package ingest

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/gabriel-vasile/mimetype"
	"github.com/lu4p/cat/docxtxt"
)

var (
	ErrUnsupportedKind = errors.New("unsupported document kind")
	ErrNotDocx         = errors.New("content is not a docx document")
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// DetectKind trusts a specific content type and falls back to the file extension
// when the browser sent nothing useful. Legacy .doc files are OTHER.
func DetectKind(contentType, filename string) commonModels.DocKind {
	switch baseMediaType(contentType) {
	case mimePDF:
		return commonModels.PDF
	case mimeDOCX:
		return commonModels.DOCX
	case "", "application/octet-stream", "binary/octet-stream", "application/zip":
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".pdf":
			return commonModels.PDF
		case ".docx":
			return commonModels.DOCX
		}
	}
	return commonModels.OTHER
}

// FileTypeLabel is the subtype of the content type, e.g. "pdf", or "unknown".
func FileTypeLabel(contentType string) string {
	mt := baseMediaType(contentType)
	if _, sub, ok := strings.Cut(mt, "/"); ok && sub != "" {
		return sub
	}
	return "unknown"
}

func baseMediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

// Extractor turns a stored file into plain text.
type Extractor struct {
	PageTimeout time.Duration
	logger      *logger_i.Logger
}

func NewExtractor(pageTimeout time.Duration) *Extractor {
	if pageTimeout <= 0 {
		pageTimeout = config.PageExtractionTimeout
	}
	return &Extractor{PageTimeout: pageTimeout, logger: logger_i.NewLogger("extractor")}
}

func (e *Extractor) Extract(ctx context.Context, path string, kind commonModels.DocKind) (string, error) {
	switch kind {
	case commonModels.PDF:
		return e.extractPDF(ctx, path)
	case commonModels.DOCX:
		return extractDOCX(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (text string, err error) {
	log := e.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	// the parser panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	f, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	numPages := f.NumPage()
	log.Debug("extractPDF", "pages", numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := e.protectExtract(ctx, func() (string, error) { return page.GetPlainText(nil) })
		if err != nil {
			log.Warn("Skipping unreadable page", "page", i, "error", err)
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}

// protectExtract runs one page extraction, turning a panic or a stall past PageTimeout into an error.
func (e *Extractor) protectExtract(ctx context.Context, extract func() (string, error)) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{err: fmt.Errorf("page parser panic: %v", r)}
			}
		}()
		content, err := extract()
		resChan <- result{content, err}
	}()

	timer := time.NewTimer(e.PageTimeout)
	defer timer.Stop()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-timer.C:
		return "", errors.New("page extraction timeout")
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func extractDOCX(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read docx: %w", err)
	}
	if mt := mimetype.Detect(data); !mt.Is(mimeDOCX) {
		return "", fmt.Errorf("failed to extract docx: %w (detected %s)", ErrNotDocx, mt.String())
	}
	text, err := docxtxt.BytesToStr(data)
	if err != nil {
		return "", fmt.Errorf("failed to extract docx: %w", err)
	}
	return text, nil
}
