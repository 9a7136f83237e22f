package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/akolanti/CampusAI/internal/adapter/utils"
)

const uiMessageStreamHeader = "x-vercel-ai-ui-message-stream"

// uiStream writes a UI message stream: server-sent events carrying JSON parts,
// one text block per answer, terminated by [DONE].
type uiStream struct {
	w         http.ResponseWriter
	rc        *http.ResponseController
	messageId string
	textId    string
	started   bool
	textOpen  bool
}

func newUIStream(w http.ResponseWriter) *uiStream {
	return &uiStream{
		w:         w,
		rc:        http.NewResponseController(w),
		messageId: utils.GetNewUUID(),
		textId:    utils.GetNewUUID(),
	}
}

func (s *uiStream) start() error {
	if s.started {
		return nil
	}
	h := s.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	h.Set(uiMessageStreamHeader, "v1")
	s.w.WriteHeader(http.StatusOK)
	s.started = true
	return s.part(map[string]any{"type": "start", "messageId": s.messageId})
}

func (s *uiStream) Delta(text string) error {
	if err := s.start(); err != nil {
		return err
	}
	if !s.textOpen {
		if err := s.part(map[string]any{"type": "text-start", "id": s.textId}); err != nil {
			return err
		}
		s.textOpen = true
	}
	return s.part(map[string]any{"type": "text-delta", "id": s.textId, "delta": text})
}

func (s *uiStream) Finish() error {
	if err := s.start(); err != nil {
		return err
	}
	if s.textOpen {
		if err := s.part(map[string]any{"type": "text-end", "id": s.textId}); err != nil {
			return err
		}
		s.textOpen = false
	}
	if err := s.part(map[string]any{"type": "finish"}); err != nil {
		return err
	}
	return s.done()
}

func (s *uiStream) Fail(message string) error {
	if err := s.start(); err != nil {
		return err
	}
	if err := s.part(map[string]any{"type": "error", "errorText": message}); err != nil {
		return err
	}
	return s.done()
}

func (s *uiStream) part(v map[string]any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return s.rc.Flush()
}

func (s *uiStream) done() error {
	if _, err := fmt.Fprint(s.w, "data: [DONE]\n\n"); err != nil {
		return err
	}
	return s.rc.Flush()
}
