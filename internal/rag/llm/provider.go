package llm

import (
	"context"
	"errors"

	"github.com/akolanti/CampusAI/internal/rag/prompt"
)

// ErrStopStream can be returned from a delta callback to end generation early without an error.
var ErrStopStream = errors.New("stream stopped by consumer")

// DeltaFunc receives each text fragment as soon as the model produces it.
// Returning an error cancels generation.
type DeltaFunc func(delta string) error

type Streamer interface {
	Stream(ctx context.Context, p prompt.Prompt, onDelta DeltaFunc) error
	Model() string
}
