package outbound

import (
	"context"

	"github.com/dan-shah/bedtime-stories/domain"
)

type GenerateStoryRequest struct {
	Prompt    string
	ChildName string
	Theme     domain.Theme
	MinWords  int
	MaxWords  int
}

// Generate streams completion tokens; the token channel closes when the
// upstream stream ends, the error channel carries at most one error.
type StoryGeneratorPort interface {
	Generate(ctx context.Context, req GenerateStoryRequest) (<-chan string, <-chan error)
}
