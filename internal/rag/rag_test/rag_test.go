package rag_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/rag"
	"github.com/akolanti/CampusAI/internal/rag/llm"
	"github.com/akolanti/CampusAI/internal/rag/prompt"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB"
)

func newService(e *MockEmbedder, v *MockVectorDB, l *MockLLM) rag.Service {
	return rag.NewService(rag.Options{
		Embedder:            e,
		Reader:              v,
		Streamer:            l,
		MatchThreshold:      0.3,
		MatchCount:          5,
		MaxResponseDuration: time.Second,
	})
}

func chat(courseId string, texts ...string) rag.ChatRequest {
	req := rag.ChatRequest{CourseId: courseId}
	for i, t := range texts {
		role := commonModels.RoleUser
		if i%2 == 1 {
			role = commonModels.RoleAssistant
		}
		req.Messages = append(req.Messages, commonModels.ChatTurn{Role: role, Text: t})
	}
	return req
}

func TestAnswer_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectFallback bool
		expectContext  string
		expectErr      bool
	}{
		{
			name: "Success_With_Context",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnMatch = func(ctx context.Context, q vectorDB.MatchQuery) ([]commonModels.RetrievalMatch, error) {
					return []commonModels.RetrievalMatch{{Content: "chlorophyll absorbs light", Similarity: 0.8}}, nil
				}
			},
			expectContext: "chlorophyll absorbs light",
		},
		{
			name: "No_Matches_Uses_Placeholder",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnMatch = func(ctx context.Context, q vectorDB.MatchQuery) ([]commonModels.RetrievalMatch, error) {
					return []commonModels.RetrievalMatch{}, nil
				}
			},
			expectContext: prompt.NoContext,
		},
		{
			name: "Embedding_Failure_Falls_Back",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnEmbedQuery = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectFallback: true,
			expectContext:  prompt.NoContext,
		},
		{
			name: "Vector_Search_Failure_Falls_Back",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnMatch = func(ctx context.Context, q vectorDB.MatchQuery) ([]commonModels.RetrievalMatch, error) {
					return nil, errors.New("db timeout")
				}
			},
			expectFallback: true,
			expectContext:  prompt.NoContext,
		},
		{
			name: "LLM_Failure_Is_Returned",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnStream = func(ctx context.Context, p prompt.Prompt, onDelta llm.DeltaFunc) error {
					return errors.New("provider down")
				}
			},
			expectContext: "default context",
			expectErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}
			tt.setupMocks(mEmbed, mVec, mLLM)

			s := newService(mEmbed, mVec, mLLM)
			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

			var answer strings.Builder
			summary, err := s.Answer(ctx, chat("bio-101", "What is photosynthesis?"), func(d string) error {
				answer.WriteString(d)
				return nil
			})

			if (err != nil) != tt.expectErr {
				t.Fatalf("err = %v, expectErr %v", err, tt.expectErr)
			}
			if summary.Fallback != tt.expectFallback {
				t.Errorf("Fallback got %v, want %v", summary.Fallback, tt.expectFallback)
			}
			if len(mLLM.Prompts) != 1 {
				t.Fatalf("expected one generation call, got %d", len(mLLM.Prompts))
			}
			if !strings.Contains(mLLM.Prompts[0].System, tt.expectContext) {
				t.Errorf("system prompt does not contain %q", tt.expectContext)
			}
			if !tt.expectErr && answer.String() != "mocked llm response" {
				t.Errorf("Answer got %q", answer.String())
			}
		})
	}
}

func TestAnswer_QueryUsesLatestUserMessageAndSettings(t *testing.T) {
	mEmbed := &MockEmbedder{}
	var embedded string
	mEmbed.OnEmbedQuery = func(ctx context.Context, text string) ([]float32, error) {
		embedded = text
		return []float32{1, 0}, nil
	}
	mVec := &MockVectorDB{}
	mLLM := &MockLLM{}

	_, err := newService(mEmbed, mVec, mLLM).Answer(context.Background(),
		chat("bio-101", "What is osmosis?", "Osmosis is...", "  And diffusion?  "),
		func(string) error { return nil })
	if err != nil {
		t.Fatal(err)
	}

	if embedded != "And diffusion?" {
		t.Errorf("embedded %q", embedded)
	}
	q := mVec.Queries[0]
	if q.CourseId != "bio-101" || q.Threshold != 0.3 || q.Limit != 5 || q.Model != "mock-embedding" {
		t.Errorf("unexpected query %+v", q)
	}
	if got := len(mLLM.Prompts[0].Messages); got != 3 {
		t.Errorf("history length got %d, want 3", got)
	}
}

func TestAnswer_InvalidInputNeverCallsProviders(t *testing.T) {
	for _, req := range []rag.ChatRequest{
		chat("", "question"),
		chat("bio-101", "   "),
		{CourseId: "bio-101"},
		{CourseId: "bio-101", Messages: []commonModels.ChatTurn{{Role: commonModels.RoleAssistant, Text: "hello"}}},
	} {
		mEmbed := &MockEmbedder{}
		mLLM := &MockLLM{}
		_, err := newService(mEmbed, &MockVectorDB{}, mLLM).Answer(context.Background(), req, func(string) error { return nil })

		if !errors.Is(err, commonModels.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if mEmbed.Calls != 0 || len(mLLM.Prompts) != 0 {
			t.Error("providers called for invalid input")
		}
	}
}

func TestAnswer_StreamStopsWhenConsumerFails(t *testing.T) {
	mLLM := &MockLLM{}
	calls := 0
	_, err := newService(&MockEmbedder{}, &MockVectorDB{}, mLLM).Answer(context.Background(), chat("c", "q"), func(string) error {
		calls++
		return errors.New("client went away")
	})

	if err == nil {
		t.Fatal("expected error when the client disconnects")
	}
	if calls != 1 {
		t.Errorf("expected generation to stop after the first delta, got %d", calls)
	}
}

func TestAnswer_BoundedByMaxResponseDuration(t *testing.T) {
	mLLM := &MockLLM{OnStream: func(ctx context.Context, p prompt.Prompt, onDelta llm.DeltaFunc) error {
		deadline, ok := ctx.Deadline()
		if !ok || time.Until(deadline) > time.Second {
			t.Errorf("generation context not bounded: %v %v", deadline, ok)
		}
		return nil
	}}
	if _, err := newService(&MockEmbedder{}, &MockVectorDB{}, mLLM).Answer(context.Background(), chat("c", "q"), func(string) error { return nil }); err != nil {
		t.Fatal(err)
	}
}

func TestSearch(t *testing.T) {
	mVec := &MockVectorDB{OnMatch: func(ctx context.Context, q vectorDB.MatchQuery) ([]commonModels.RetrievalMatch, error) {
		return nil, errors.New("db down")
	}}
	s := newService(&MockEmbedder{}, mVec, &MockLLM{})

	if _, err := s.Search(context.Background(), "c", "q"); err == nil {
		t.Error("search should surface retrieval errors")
	}
	if _, err := s.Search(context.Background(), "", "q"); !errors.Is(err, commonModels.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
