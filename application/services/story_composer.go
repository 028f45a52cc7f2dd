package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dan-shah/bedtime-stories/application/ports/inbound"
	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/config"
	"github.com/dan-shah/bedtime-stories/domain"
)

type storyComposer struct {
	logger      outbound.LoggerPort
	generator   outbound.StoryGeneratorPort
	storyConfig *config.StoryConfig
}

func NewStoryComposer(logger outbound.LoggerPort, generator outbound.StoryGeneratorPort,
	storyConfig *config.StoryConfig) inbound.StoryComposerPort {
	return &storyComposer{
		logger:      logger,
		generator:   generator,
		storyConfig: storyConfig,
	}
}

func (s *storyComposer) Compose(ctx context.Context, req domain.GenerationRequest,
	onToken func(token string)) (domain.StoryResult, error) {
	tokenCh, errCh := s.generator.Generate(ctx, outbound.GenerateStoryRequest{
		Prompt:    req.Prompt,
		ChildName: req.ChildName,
		Theme:     req.Theme,
		MinWords:  s.storyConfig.MinWords,
		MaxWords:  s.storyConfig.MaxWords,
	})

	var builder strings.Builder

	for tokenCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return domain.StoryResult{}, &domain.GenerationError{Err: ctx.Err()}
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			s.logger.Error(err, "story stream failed")
			return domain.StoryResult{}, &domain.GenerationError{Err: err}
		case token, ok := <-tokenCh:
			if !ok {
				tokenCh = nil
				continue
			}
			builder.WriteString(token)
			if onToken != nil {
				onToken(token)
			}
		}
	}

	text := strings.TrimSpace(builder.String())
	if text == "" {
		return domain.StoryResult{}, &domain.GenerationError{Err: errors.New("upstream returned an empty story")}
	}

	wordCount := len(strings.Fields(text))
	conforming := wordCount >= s.storyConfig.MinWords && wordCount <= s.storyConfig.MaxWords
	if !conforming {
		s.logger.WarnWithFields("story outside target word band", map[string]interface{}{
			"story_id": req.ID,
			"words":    wordCount,
			"min":      s.storyConfig.MinWords,
			"max":      s.storyConfig.MaxWords,
		})
	}

	return domain.StoryResult{
		Text:       text,
		WordCount:  wordCount,
		Conforming: conforming,
	}, nil
}
