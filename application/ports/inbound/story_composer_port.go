package inbound

import (
	"context"

	"github.com/dan-shah/bedtime-stories/domain"
)

// Compose drains the generator's token stream into a full story. onToken may
// be nil; when set it observes every token in arrival order.
type StoryComposerPort interface {
	Compose(ctx context.Context, req domain.GenerationRequest, onToken func(token string)) (domain.StoryResult, error)
}
