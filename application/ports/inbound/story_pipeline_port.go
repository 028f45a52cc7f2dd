package inbound

import (
	"context"

	"github.com/dan-shah/bedtime-stories/domain"
)

type RunPipelineParams struct {
	Prompt     string
	Transcript string
	ChildName  string
	Theme      string
	VoiceID    string
	ImageModel string
}

type StoryPipelinePort interface {
	Run(ctx context.Context, params RunPipelineParams) (*domain.ResponseBundle, error)
	Stream(ctx context.Context, params RunPipelineParams) (<-chan domain.PipelineEvent, <-chan error)
}
