package googleEmbedding

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"grpc resource exhausted", status.Error(codes.ResourceExhausted, "quota"), true},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), true},
		{"grpc invalid argument", status.Error(codes.InvalidArgument, "bad"), false},
		{"api 429", genai.APIError{Code: 429}, true},
		{"api 503 wrapped", fmt.Errorf("embed: %w", genai.APIError{Code: 503}), true},
		{"api 400", genai.APIError{Code: 400}, false},
		{"api 403 pointer", &genai.APIError{Code: 403}, false},
		{"transport", errors.New("connection reset by peer"), true},
		{"deadline", context.DeadlineExceeded, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetContent(t *testing.T) {
	contents := getContent([]string{"first", "second"})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[1].Parts[0].Text != "second" {
		t.Errorf("order not kept: %q", contents[1].Parts[0].Text)
	}
}
