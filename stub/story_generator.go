package stub

import (
	"context"
	"fmt"
	"strings"

	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/domain"
)

type storyGenerator struct {
	logger     outbound.LoggerPort
	workerPool outbound.TaskDispatcher
}

// NewStoryGenerator streams a deterministic bedtime story so the service can
// run without an Anthropic key.
func NewStoryGenerator(workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) outbound.StoryGeneratorPort {
	return &storyGenerator{
		logger:     logger,
		workerPool: workerPool,
	}
}

func (s *storyGenerator) Generate(ctx context.Context, req outbound.GenerateStoryRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		for _, token := range storyTokens(req) {
			select {
			case <-ctx.Done():
				return
			case out <- token:
			}
		}
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

func storyTokens(req outbound.GenerateStoryRequest) []string {
	hero := req.ChildName
	if hero == "" {
		hero = "a sleepy little fox"
	}
	setting := "a quiet meadow"
	if req.Theme != domain.ThemeNone {
		setting = fmt.Sprintf("a land of %s", req.Theme)
	}

	opening := fmt.Sprintf("Once upon a time, %s drifted into %s, dreaming about %s. ", hero, setting, req.Prompt)
	middle := fmt.Sprintf("Step by gentle step, %s wandered on, and the stars hummed a soft lullaby above. ", hero)
	closing := fmt.Sprintf("At last %s curled up under a warm blanket of moonlight and fell fast asleep. The end.", hero)

	target := (req.MinWords + req.MaxWords) / 2
	var builder strings.Builder
	builder.WriteString(opening)
	for len(strings.Fields(builder.String()+closing)) < target {
		builder.WriteString(middle)
	}
	builder.WriteString(closing)

	words := strings.Fields(builder.String())
	tokens := make([]string, len(words))
	for i, word := range words {
		tokens[i] = word + " "
	}
	return tokens
}
