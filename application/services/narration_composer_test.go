package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/domain"
	"github.com/dan-shah/bedtime-stories/infrastructure/adapters"
)

type fakeSynthesizer struct {
	mu       sync.Mutex
	requests []outbound.SynthesizeSpeechParams
	failOn   string
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, params outbound.SynthesizeSpeechParams) ([]byte, error) {
	f.mu.Lock()
	f.requests = append(f.requests, params)
	f.mu.Unlock()
	if f.failOn != "" && strings.Contains(params.Text, f.failOn) {
		return nil, errors.New("synthesis rejected")
	}
	return []byte("<" + params.Text + ">"), nil
}

func newNarrationTestPool(t *testing.T) *ants.Pool {
	t.Helper()
	pool, err := ants.NewPool(10)
	require.NoError(t, err)
	t.Cleanup(pool.Release)
	return pool
}

func TestNarrationComposer_ConcatenatesChunksInOrder(t *testing.T) {
	synth := &fakeSynthesizer{}
	pool := newNarrationTestPool(t)
	logger := adapters.NewZerologWrapper("test")
	composer := NewNarrationComposer(logger, synth, pool, 40, 150)

	story := domain.StoryResult{
		Text:      "First the sun set. Then the owls woke. Finally everyone slept.",
		WordCount: 11,
	}

	narration, err := composer.Compose(context.Background(), story, domain.DefaultVoiceID)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultVoiceID, narration.VoiceID)
	assert.InDelta(t, 4.4, narration.DurationSeconds, 0.01)

	// Regardless of which chunk finished first, the audio must follow the
	// source sentence order.
	audio := string(narration.Audio)
	first := strings.Index(audio, "First the sun set.")
	then := strings.Index(audio, "Then the owls woke.")
	finally := strings.Index(audio, "Finally everyone slept.")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, then)
	require.NotEqual(t, -1, finally)
	assert.Less(t, first, then)
	assert.Less(t, then, finally)
}

func TestNarrationComposer_SingleChunkForShortText(t *testing.T) {
	synth := &fakeSynthesizer{}
	pool := newNarrationTestPool(t)
	logger := adapters.NewZerologWrapper("test")
	composer := NewNarrationComposer(logger, synth, pool, 2400, 150)

	story := domain.StoryResult{Text: "A short story.", WordCount: 3}
	narration, err := composer.Compose(context.Background(), story, domain.DefaultVoiceID)

	require.NoError(t, err)
	require.Len(t, synth.requests, 1)
	assert.Equal(t, []byte("<A short story.>"), narration.Audio)
}

func TestNarrationComposer_ChunkFailureIsNarrationError(t *testing.T) {
	synth := &fakeSynthesizer{failOn: "owls"}
	pool := newNarrationTestPool(t)
	logger := adapters.NewZerologWrapper("test")
	composer := NewNarrationComposer(logger, synth, pool, 40, 150)

	story := domain.StoryResult{
		Text:      "First the sun set. Then the owls woke. Finally everyone slept.",
		WordCount: 11,
	}

	_, err := composer.Compose(context.Background(), story, domain.DefaultVoiceID)

	var narrationErr *domain.NarrationError
	require.True(t, errors.As(err, &narrationErr))
}

func TestNarrationComposer_EmptyTextIsNarrationError(t *testing.T) {
	synth := &fakeSynthesizer{}
	pool := newNarrationTestPool(t)
	logger := adapters.NewZerologWrapper("test")
	composer := NewNarrationComposer(logger, synth, pool, 2400, 150)

	_, err := composer.Compose(context.Background(), domain.StoryResult{Text: "   "}, domain.DefaultVoiceID)

	var narrationErr *domain.NarrationError
	require.True(t, errors.As(err, &narrationErr))
}
