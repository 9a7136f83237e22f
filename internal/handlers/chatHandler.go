package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/akolanti/CampusAI/internal/adapter"
	"github.com/akolanti/CampusAI/internal/api"
)

const maxChatBodyBytes = 1 << 20

// ChatHandler godoc
// @Summary      Ask the course AI tutor
// @Description  Answers the latest user message from the course's materials and streams the answer as a UI message stream (server-sent events).
// @Tags         Chat
// @Accept       json
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        request  body      api.ChatRequest  true  "Conversation and course id"
// @Success      200      {string}  string           "UI message stream"
// @Failure      400      {object}  api.ErrorResponse
// @Failure      502      {object}  api.ErrorResponse
// @Router       /api/chat [post]
func (h *Handler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	log := traceLogger(h.logger, r.Context())

	var requestData api.ChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		log.Warn("Bad Chat Request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return
	}

	chatRequest := adapter.ToChatRequest(requestData)
	if chatRequest.CourseId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "courseId is required")
		return
	}
	if chatRequest.Question() == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "A user message is required")
		return
	}

	if err := http.NewResponseController(w).SetWriteDeadline(time.Now().Add(h.maxResponseDuration + 5*time.Second)); err != nil {
		log.Debug("Could not extend write deadline", "error", err)
	}

	stream := newUIStream(w)
	summary, err := h.tutor.Answer(r.Context(), chatRequest, stream.Delta)
	switch {
	case err == nil:
		if err := stream.Finish(); err != nil {
			log.Warn("Could not finish stream", "error", err)
		}
		log.Info("Answer streamed", "courseId", chatRequest.CourseId, "matches", summary.Matches, "fallback", summary.Fallback)
	case errors.Is(r.Context().Err(), context.Canceled):
		log.Info("Client disconnected, generation cancelled", "courseId", chatRequest.CourseId)
	case !stream.started:
		log.Error("Answer generation failed", "error", err)
		WriteErrorResponse(w, http.StatusBadGateway, "The AI tutor is unavailable. Please try again.")
	default:
		log.Error("Answer stream interrupted", "error", err)
		_ = stream.Fail("The answer was interrupted. Please try again.")
	}
}
