package inbound

import (
	"context"

	"github.com/dan-shah/bedtime-stories/domain"
)

type IllustrationPlannerPort interface {
	Illustrate(ctx context.Context, story domain.StoryResult, model domain.ImageModel) (domain.IllustrationResult, error)
}
