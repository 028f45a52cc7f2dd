package services

import (
	"strings"

	"github.com/dan-shah/bedtime-stories/application/ports/inbound"
	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/config"
	"github.com/dan-shah/bedtime-stories/domain"
	"github.com/google/uuid"
)

type promptNormalizer struct {
	logger            outbound.LoggerPort
	storyConfig       *config.StoryConfig
	defaultImageModel domain.ImageModel
}

func NewPromptNormalizer(logger outbound.LoggerPort, storyConfig *config.StoryConfig,
	defaultImageModel domain.ImageModel) inbound.PromptNormalizerPort {
	return &promptNormalizer{
		logger:            logger,
		storyConfig:       storyConfig,
		defaultImageModel: defaultImageModel,
	}
}

func (p *promptNormalizer) Normalize(params inbound.NormalizePromptParams) (domain.GenerationRequest, error) {
	// Transcript wins over typed text when both are present.
	prompt := strings.TrimSpace(params.Transcript)
	if prompt == "" {
		prompt = strings.TrimSpace(params.Prompt)
	}
	if prompt == "" {
		return domain.GenerationRequest{}, &domain.InvalidInputError{Reason: "story prompt is empty"}
	}
	prompt = truncateRunes(prompt, p.storyConfig.MaxPromptRunes)

	childName := truncateRunes(strings.TrimSpace(params.ChildName), p.storyConfig.MaxNameRunes)

	theme, err := domain.ParseTheme(strings.ToLower(strings.TrimSpace(params.Theme)))
	if err != nil {
		return domain.GenerationRequest{}, &domain.InvalidInputError{Reason: err.Error()}
	}

	voiceID := strings.TrimSpace(params.VoiceID)
	if voiceID == "" {
		voiceID = domain.DefaultVoiceID
	}
	if _, ok := domain.LookupVoice(voiceID); !ok {
		return domain.GenerationRequest{}, &domain.InvalidInputError{Reason: "unknown voice " + voiceID}
	}

	imageModel, err := domain.ParseImageModel(strings.TrimSpace(params.ImageModel), p.defaultImageModel)
	if err != nil {
		return domain.GenerationRequest{}, &domain.InvalidInputError{Reason: err.Error()}
	}

	req := domain.GenerationRequest{
		ID:         uuid.NewString(),
		ChildName:  childName,
		Theme:      theme,
		Prompt:     prompt,
		VoiceID:    voiceID,
		ImageModel: imageModel,
	}

	p.logger.DebugWithFields("normalized generation request", map[string]interface{}{
		"id":    req.ID,
		"theme": req.Theme,
		"voice": req.VoiceID,
		"model": req.ImageModel,
	})

	return req, nil
}

func truncateRunes(input string, limit int) string {
	runes := []rune(input)
	if len(runes) <= limit {
		return input
	}
	return strings.TrimSpace(string(runes[:limit]))
}
