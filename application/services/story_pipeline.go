package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dan-shah/bedtime-stories/application/ports/inbound"
	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/domain"
)

type storyPipeline struct {
	logger              outbound.LoggerPort
	workerPool          outbound.TaskDispatcher
	normalizer          inbound.PromptNormalizerPort
	storyComposer       inbound.StoryComposerPort
	narrationComposer   inbound.NarrationComposerPort
	illustrationPlanner inbound.IllustrationPlannerPort
	mediaStore          outbound.MediaStorePort
}

// NewStoryPipeline wires the coordinator. mediaStore may be nil, which
// disables the archive step.
func NewStoryPipeline(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	normalizer inbound.PromptNormalizerPort, storyComposer inbound.StoryComposerPort,
	narrationComposer inbound.NarrationComposerPort, illustrationPlanner inbound.IllustrationPlannerPort,
	mediaStore outbound.MediaStorePort) inbound.StoryPipelinePort {
	return &storyPipeline{
		logger:              logger,
		workerPool:          workerPool,
		normalizer:          normalizer,
		storyComposer:       storyComposer,
		narrationComposer:   narrationComposer,
		illustrationPlanner: illustrationPlanner,
		mediaStore:          mediaStore,
	}
}

func (s *storyPipeline) Run(ctx context.Context, params inbound.RunPipelineParams) (*domain.ResponseBundle, error) {
	return s.run(ctx, params, nil)
}

func (s *storyPipeline) Stream(ctx context.Context, params inbound.RunPipelineParams) (<-chan domain.PipelineEvent, <-chan error) {
	out := make(chan domain.PipelineEvent)
	errCh := make(chan error, 1)

	emit := func(event domain.PipelineEvent) {
		select {
		case <-ctx.Done():
		case out <- event:
		}
	}

	err := s.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		if _, err := s.run(ctx, params, emit); err != nil {
			errCh <- err
		}
	})
	if err != nil {
		errCh <- err
		close(out)
		close(errCh)
	}

	return out, errCh
}

func (s *storyPipeline) run(ctx context.Context, params inbound.RunPipelineParams,
	emit func(domain.PipelineEvent)) (*domain.ResponseBundle, error) {
	emitState := func(storyID string, state domain.PipelineState) {
		s.logger.DebugWithFields("pipeline state", map[string]interface{}{
			"story_id": storyID,
			"state":    state,
		})
		if emit != nil {
			emit(domain.PipelineEvent{StoryID: storyID, Type: domain.EventStateChanged, State: state})
		}
	}

	emitState("", domain.StateNormalizing)
	req, err := s.normalizer.Normalize(inbound.NormalizePromptParams{
		Prompt:     params.Prompt,
		Transcript: params.Transcript,
		ChildName:  params.ChildName,
		Theme:      params.Theme,
		VoiceID:    params.VoiceID,
		ImageModel: params.ImageModel,
	})
	if err != nil {
		emitState("", domain.StateFailed)
		return nil, err
	}

	emitState(req.ID, domain.StateGenerating)
	var onToken func(string)
	if emit != nil {
		onToken = func(token string) {
			emit(domain.PipelineEvent{StoryID: req.ID, Type: domain.EventStoryToken, Token: token})
		}
	}
	story, err := s.storyComposer.Compose(ctx, req, onToken)
	if err != nil {
		emitState(req.ID, domain.StateFailed)
		return nil, err
	}
	if emit != nil {
		emit(domain.PipelineEvent{StoryID: req.ID, Type: domain.EventStoryReady})
	}

	// Story generation was the last fatal stage; from here the bundle only
	// degrades, it never disappears.
	emitState(req.ID, domain.StateRenderingMedia)
	bundle := &domain.ResponseBundle{
		StoryID: req.ID,
		Story:   story,
	}

	var narration domain.NarrationResult
	var illustration domain.IllustrationResult
	var narrationErr, illustrationErr error

	var wg sync.WaitGroup
	wg.Add(1)
	if err := s.workerPool.Submit(func() {
		defer wg.Done()
		narration, narrationErr = s.narrationComposer.Compose(ctx, story, req.VoiceID)
	}); err != nil {
		wg.Done()
		narrationErr = &domain.NarrationError{Err: err}
	}

	wg.Add(1)
	if err := s.workerPool.Submit(func() {
		defer wg.Done()
		illustration, illustrationErr = s.illustrationPlanner.Illustrate(ctx, story, req.ImageModel)
	}); err != nil {
		wg.Done()
		illustrationErr = &domain.IllustrationError{Err: err}
	}

	wg.Wait()

	if narrationErr != nil {
		s.logger.Error(narrationErr, "continuing without narration")
		bundle.AddWarning(narrationErr.Error())
		if emit != nil {
			emit(domain.PipelineEvent{StoryID: req.ID, Type: domain.EventWarning, Message: narrationErr.Error()})
		}
	} else {
		bundle.Narration = &narration
		if emit != nil {
			emit(domain.PipelineEvent{StoryID: req.ID, Type: domain.EventNarrationReady})
		}
	}

	if illustrationErr != nil {
		s.logger.Error(illustrationErr, "continuing without illustrations")
		bundle.AddWarning(illustrationErr.Error())
		if emit != nil {
			emit(domain.PipelineEvent{StoryID: req.ID, Type: domain.EventWarning, Message: illustrationErr.Error()})
		}
	} else {
		bundle.Illustration = &illustration
		if emit != nil {
			emit(domain.PipelineEvent{StoryID: req.ID, Type: domain.EventIllustrationReady})
		}
	}

	if s.mediaStore != nil {
		s.archiveMedia(ctx, bundle)
	}

	emitState(req.ID, domain.StateAssembled)
	if emit != nil {
		emit(domain.PipelineEvent{StoryID: req.ID, Type: domain.EventBundleReady, Bundle: bundle})
	}
	emitState(req.ID, domain.StateDelivered)

	return bundle, nil
}

// archiveMedia is best effort: upload failures degrade to warnings.
func (s *storyPipeline) archiveMedia(ctx context.Context, bundle *domain.ResponseBundle) {
	media := &domain.MediaURLs{}

	if bundle.Narration != nil {
		url, err := s.mediaStore.Save(ctx, outbound.StoreMediaParams{
			StoryID:     bundle.StoryID,
			Name:        "narration.mp3",
			ContentType: "audio/mpeg",
			Content:     bundle.Narration.Audio,
		})
		if err != nil {
			s.logger.Error(err, "failed to archive narration")
			bundle.AddWarning("narration archive failed")
		} else {
			media.NarrationURL = url
		}
	}

	if bundle.Illustration != nil {
		for i, image := range bundle.Illustration.Images {
			url, err := s.mediaStore.Save(ctx, outbound.StoreMediaParams{
				StoryID:     bundle.StoryID,
				Name:        fmt.Sprintf("scene_%d.png", i),
				ContentType: "image/png",
				Content:     image,
			})
			if err != nil {
				s.logger.Error(err, "failed to archive illustration")
				bundle.AddWarning("illustration archive failed")
				break
			}
			media.ImageURLs = append(media.ImageURLs, url)
		}
	}

	if media.NarrationURL != "" || len(media.ImageURLs) > 0 {
		bundle.Media = media
	}
}
