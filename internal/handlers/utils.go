package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/akolanti/CampusAI/internal/api"
	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// headers are already out
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{Error: message})
}

func traceLogger(log *logger_i.Logger, ctx context.Context) *logger_i.Logger {
	return log.With("traceId", ctx.Value(config.TRACE_ID_KEY))
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		traceLogger(logRH, ctx).Warn("context error", "error", ctx.Err())
		return false
	}
	return true
}

func getTargetDirectory(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	return dir, nil
}

// saveTemp copies an uploaded part to a temporary file the caller must remove.
func saveTemp(dir string, src multipart.File) (string, int64, error) {
	targetDir, err := getTargetDirectory(dir)
	if err != nil {
		return "", 0, err
	}
	dst, err := os.CreateTemp(targetDir, "upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("creating temp file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		_ = os.Remove(dst.Name())
		return "", 0, fmt.Errorf("writing temp file: %w", err)
	}
	return dst.Name(), n, nil
}
