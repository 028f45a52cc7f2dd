package services

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/dan-shah/bedtime-stories/application/ports/inbound"
	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/domain"
)

type narrationComposer struct {
	logger      outbound.LoggerPort
	synthesizer outbound.SpeechSynthesizerPort
	workerPool  outbound.TaskDispatcher
	chunkRunes  int
	wordsPerMin int
}

func NewNarrationComposer(logger outbound.LoggerPort, synthesizer outbound.SpeechSynthesizerPort,
	workerPool outbound.TaskDispatcher, chunkRunes int, wordsPerMin int) inbound.NarrationComposerPort {
	return &narrationComposer{
		logger:      logger,
		synthesizer: synthesizer,
		workerPool:  workerPool,
		chunkRunes:  chunkRunes,
		wordsPerMin: wordsPerMin,
	}
}

func (n *narrationComposer) Compose(ctx context.Context, story domain.StoryResult,
	voiceID string) (domain.NarrationResult, error) {
	chunks := chunkSentences(story.Text, n.chunkRunes)
	if len(chunks) == 0 {
		return domain.NarrationResult{}, &domain.NarrationError{Err: errors.New("no narratable text")}
	}

	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Chunks synthesize concurrently; audio is reassembled by index so the
	// concatenation preserves sentence order.
	audio := make([][]byte, len(chunks))
	chunkErrs := make([]error, len(chunks))
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		i, chunk := i, chunk
		wg.Add(1)
		err := n.workerPool.Submit(func() {
			defer wg.Done()
			content, err := n.synthesizer.Synthesize(newCtx, outbound.SynthesizeSpeechParams{
				Text:    chunk,
				VoiceID: voiceID,
			})
			if err != nil {
				chunkErrs[i] = err
				cancel()
				return
			}
			audio[i] = content
		})
		if err != nil {
			wg.Done()
			chunkErrs[i] = err
			cancel()
		}
	}

	wg.Wait()

	for i, err := range chunkErrs {
		if err != nil {
			n.logger.ErrorWithFields(err, "narration chunk failed", map[string]interface{}{
				"chunk":  i,
				"chunks": len(chunks),
			})
			return domain.NarrationResult{}, &domain.NarrationError{Err: err}
		}
	}

	var buf bytes.Buffer
	for _, content := range audio {
		buf.Write(content)
	}

	duration := float64(story.WordCount) / float64(n.wordsPerMin) * 60

	n.logger.DebugWithFields("narration assembled", map[string]interface{}{
		"chunks":   len(chunks),
		"bytes":    buf.Len(),
		"duration": duration,
	})

	return domain.NarrationResult{
		Audio:           buf.Bytes(),
		VoiceID:         voiceID,
		DurationSeconds: duration,
	}, nil
}
