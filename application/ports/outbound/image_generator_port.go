package outbound

import (
	"context"

	"github.com/dan-shah/bedtime-stories/domain"
)

type GenerateImageParams struct {
	Prompt string
	Model  domain.ImageModel
}

type ImageGeneratorPort interface {
	Generate(ctx context.Context, params GenerateImageParams) ([]byte, error)
}
