package inbound

import (
	"context"

	"github.com/dan-shah/bedtime-stories/domain"
)

type NarrationComposerPort interface {
	Compose(ctx context.Context, story domain.StoryResult, voiceID string) (domain.NarrationResult, error)
}
