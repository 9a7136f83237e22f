package handlers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/akolanti/CampusAI/internal/adapter"
	"github.com/akolanti/CampusAI/internal/adapter/utils"
	"github.com/akolanti/CampusAI/internal/api"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/material"
)

const multipartMemory = 8 << 20

// UploadMaterialHandler godoc
// @Summary      Upload a course material
// @Description  Stores the file, records the material and indexes its text for the AI tutor. Indexing problems never fail the upload; the outcome is in "indexing".
// @Tags         Materials
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file        formData  file    true   "PDF or DOCX file, up to 50MB"
// @Param        title       formData  string  false  "Display title"
// @Param        courseId    formData  string  true   "Course the material belongs to"
// @Param        uploaderId  formData  string  false  "Lecturer id"
// @Success      201  {object}  api.UploadResponse
// @Failure      400  {object}  api.UploadResponse  "No file selected, course missing or file too large"
// @Failure      500  {object}  api.UploadResponse  "Failed to upload material. Please try again."
// @Router       /api/v1/materials [post]
func (h *Handler) UploadMaterialHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	log := traceLogger(h.logger, r.Context())

	// embedding batches are throttled, so indexing can outlive the server write timeout
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Debug("Could not lift write deadline", "error", err)
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJsonResponse(w, http.StatusRequestEntityTooLarge, api.UploadResponse{Error: "File is too large"})
			return
		}
		writeJsonResponse(w, http.StatusBadRequest, api.UploadResponse{Error: "No file selected"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		writeJsonResponse(w, http.StatusBadRequest, api.UploadResponse{Error: "No file selected"})
		return
	}
	defer fileReader.Close()

	tempPath, size, err := saveTemp(h.tempDir, fileReader)
	if err != nil {
		log.Error("Upload Error", "step", "temp_file", "error", err)
		writeJsonResponse(w, http.StatusInternalServerError, api.UploadResponse{Error: material.UserMessage(err)})
		return
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			log.Warn("Error removing temp file", "path", tempPath, "error", err)
		}
	}()

	result, err := h.materials.Upload(r.Context(), material.UploadInput{
		CourseId:    r.FormValue("courseId"),
		UploaderId:  r.FormValue("uploaderId"),
		Title:       r.FormValue("title"),
		Filename:    fileMetadata.Filename,
		ContentType: fileMetadata.Header.Get("Content-Type"),
		Size:        size,
		Path:        tempPath,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, commonModels.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeJsonResponse(w, status, api.UploadResponse{Error: material.UserMessage(err)})
		return
	}

	writeJsonResponse(w, http.StatusCreated, adapter.ToUploadResponse(result.Success, result.Material, result.Report))
}

// ListMaterialsHandler godoc
// @Summary      List the materials of a course
// @Tags         Materials
// @Produce      json
// @Security     BearerAuth
// @Param        courseId  path      string  true  "Course id"
// @Success      200  {object}  api.MaterialListResponse
// @Router       /api/v1/courses/{courseId}/materials [get]
func (h *Handler) ListMaterialsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	materials, err := h.materials.List(r.Context(), utils.GetChiURLParam(r, "courseId"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToMaterialList(materials))
}

// GetIndexReportHandler godoc
// @Summary      Indexing outcome of a material
// @Tags         Materials
// @Produce      json
// @Security     BearerAuth
// @Param        materialId  path      string  true  "Material id"
// @Success      200  {object}  api.IndexReportResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/v1/materials/{materialId}/index [get]
func (h *Handler) GetIndexReportHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	report, err := h.materials.IndexReport(r.Context(), utils.GetChiURLParam(r, "materialId"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToIndexReportResponse(report))
}

// DeleteMaterialHandler godoc
// @Summary      Delete a material and its vectors
// @Tags         Materials
// @Produce      json
// @Security     BearerAuth
// @Param        materialId  path      string  true  "Material id"
// @Success      200  {object}  api.SuccessResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/v1/materials/{materialId} [delete]
func (h *Handler) DeleteMaterialHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	if err := h.materials.Delete(r.Context(), utils.GetChiURLParam(r, "materialId")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.SuccessResponse{Success: "Material deleted"})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, commonModels.ErrNotFound):
		WriteErrorResponse(w, http.StatusNotFound, "Material not found")
	case errors.Is(err, commonModels.ErrInvalidInput):
		WriteErrorResponse(w, http.StatusBadRequest, material.UserMessage(err))
	default:
		traceLogger(h.logger, r.Context()).Error("Material request failed", "path", r.URL.Path, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
