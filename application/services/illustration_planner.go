package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dan-shah/bedtime-stories/application/ports/inbound"
	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/config"
	"github.com/dan-shah/bedtime-stories/domain"
)

const scenePromptRunes = 200
const sceneStyleSuffix = ", illustrated in a soft children's book watercolor style"

type illustrationPlanner struct {
	logger         outbound.LoggerPort
	imageGenerator outbound.ImageGeneratorPort
	workerPool     outbound.TaskDispatcher
	sceneCount     int
}

func NewIllustrationPlanner(logger outbound.LoggerPort, imageGenerator outbound.ImageGeneratorPort,
	workerPool outbound.TaskDispatcher, storyConfig *config.StoryConfig) inbound.IllustrationPlannerPort {
	return &illustrationPlanner{
		logger:         logger,
		imageGenerator: imageGenerator,
		workerPool:     workerPool,
		sceneCount:     storyConfig.SceneCount,
	}
}

func (p *illustrationPlanner) Illustrate(ctx context.Context, story domain.StoryResult,
	model domain.ImageModel) (domain.IllustrationResult, error) {
	prompts := p.planScenes(story.Text)
	if len(prompts) == 0 {
		return domain.IllustrationResult{}, &domain.IllustrationError{Err: errors.New("no scenes to illustrate")}
	}

	images := make([][]byte, len(prompts))
	sceneErrs := make([]error, len(prompts))
	var wg sync.WaitGroup

	for i, prompt := range prompts {
		i, prompt := i, prompt
		wg.Add(1)
		err := p.workerPool.Submit(func() {
			defer wg.Done()
			content, err := p.imageGenerator.Generate(ctx, outbound.GenerateImageParams{
				Prompt: prompt,
				Model:  model,
			})
			if err != nil {
				sceneErrs[i] = err
				return
			}
			images[i] = content
		})
		if err != nil {
			wg.Done()
			sceneErrs[i] = err
		}
	}

	wg.Wait()

	// Failed scenes are dropped; surviving images keep story order.
	result := domain.IllustrationResult{}
	var firstErr error
	for i, content := range images {
		if sceneErrs[i] != nil {
			if firstErr == nil {
				firstErr = sceneErrs[i]
			}
			p.logger.ErrorWithFields(sceneErrs[i], "scene illustration failed", map[string]interface{}{
				"scene": i,
			})
			continue
		}
		result.Images = append(result.Images, content)
		result.PromptsUsed = append(result.PromptsUsed, prompts[i])
	}

	if len(result.Images) == 0 {
		return domain.IllustrationResult{}, &domain.IllustrationError{Err: firstErr}
	}

	return result, nil
}

// planScenes picks one sentence per equal section of the story, so three
// scenes land on the beginning, middle and end.
func (p *illustrationPlanner) planScenes(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	count := p.sceneCount
	if count > len(sentences) {
		count = len(sentences)
	}

	prompts := make([]string, 0, count)
	for i := 0; i < count; i++ {
		sentence := sentences[i*len(sentences)/count]
		prompts = append(prompts, truncateRunes(sentence, scenePromptRunes)+sceneStyleSuffix)
	}

	return prompts
}
