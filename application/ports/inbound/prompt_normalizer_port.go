package inbound

import "github.com/dan-shah/bedtime-stories/domain"

type NormalizePromptParams struct {
	Prompt     string
	Transcript string
	ChildName  string
	Theme      string
	VoiceID    string
	ImageModel string
}

type PromptNormalizerPort interface {
	Normalize(params NormalizePromptParams) (domain.GenerationRequest, error)
}
