package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dan-shah/bedtime-stories/application/ports/inbound"
	"github.com/dan-shah/bedtime-stories/domain"
	"github.com/dan-shah/bedtime-stories/infrastructure/adapters"
	"github.com/dan-shah/bedtime-stories/infrastructure/gin_interface/dto"
)

type fakePipeline struct {
	bundle *domain.ResponseBundle
	err    error
}

func (f *fakePipeline) Run(_ context.Context, _ inbound.RunPipelineParams) (*domain.ResponseBundle, error) {
	return f.bundle, f.err
}

func (f *fakePipeline) Stream(_ context.Context, _ inbound.RunPipelineParams) (<-chan domain.PipelineEvent, <-chan error) {
	out := make(chan domain.PipelineEvent)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errCh)
		if f.err != nil {
			errCh <- f.err
			return
		}
		out <- domain.PipelineEvent{StoryID: f.bundle.StoryID, Type: domain.EventStateChanged, State: domain.StateGenerating}
		out <- domain.PipelineEvent{StoryID: f.bundle.StoryID, Type: domain.EventBundleReady, Bundle: f.bundle}
	}()
	return out, errCh
}

func testBundle() *domain.ResponseBundle {
	return &domain.ResponseBundle{
		StoryID: "story-1",
		Story: domain.StoryResult{
			Text:       "Mia met a dragon who was afraid of the dark.",
			WordCount:  10,
			Conforming: true,
		},
		Narration: &domain.NarrationResult{
			Audio:           []byte("mp3-bytes"),
			VoiceID:         domain.DefaultVoiceID,
			DurationSeconds: 4,
		},
	}
}

func newTestRouter(pipeline inbound.StoryPipelinePort, bundleCache *cache.Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := adapters.NewZerologWrapper("test")
	router := gin.New()
	NewStoryController(logger, pipeline, bundleCache).RegisterRoutes(router)
	return router
}

func postStory(t *testing.T, router *gin.Engine, path string, body dto.GenerateStoryRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStoryController_CreateStory(t *testing.T) {
	bundleCache := cache.New(time.Minute, time.Minute)
	router := newTestRouter(&fakePipeline{bundle: testBundle()}, bundleCache)

	rec := postStory(t, router, "/api/stories", dto.GenerateStoryRequest{
		Prompt:    "a dragon who is afraid of the dark",
		ChildName: "Mia",
		Theme:     "adventure",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.StoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "story-1", res.StoryID)
	assert.Contains(t, res.Story.Text, "Mia")
	require.NotNil(t, res.Narration)
	assert.NotEmpty(t, res.Narration.AudioBase64)

	_, cached := bundleCache.Get("story-1")
	assert.True(t, cached)
}

func TestStoryController_InvalidInputIsBadRequest(t *testing.T) {
	pipeline := &fakePipeline{err: &domain.InvalidInputError{Reason: "story prompt is empty"}}
	router := newTestRouter(pipeline, cache.New(time.Minute, time.Minute))

	rec := postStory(t, router, "/api/stories", dto.GenerateStoryRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "story prompt is empty")
}

func TestStoryController_GenerationErrorIsBadGateway(t *testing.T) {
	pipeline := &fakePipeline{err: &domain.GenerationError{Err: assert.AnError}}
	router := newTestRouter(pipeline, cache.New(time.Minute, time.Minute))

	rec := postStory(t, router, "/api/stories", dto.GenerateStoryRequest{Prompt: "a brave mouse"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestStoryController_StreamEmitsEvents(t *testing.T) {
	router := newTestRouter(&fakePipeline{bundle: testBundle()}, cache.New(time.Minute, time.Minute))

	rec := postStory(t, router, "/api/stories/stream", dto.GenerateStoryRequest{Prompt: "a brave mouse"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "event: state_changed")
	assert.Contains(t, body, "event: bundle_ready")
	assert.Contains(t, body, `"story_id":"story-1"`)
}

func TestStoryController_GetStory(t *testing.T) {
	bundleCache := cache.New(time.Minute, time.Minute)
	bundleCache.Set("story-1", testBundle(), cache.DefaultExpiration)
	router := newTestRouter(&fakePipeline{}, bundleCache)

	req := httptest.NewRequest(http.MethodGet, "/api/stories/story-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"story_id":"story-1"`)
}

func TestStoryController_GetStoryNotFound(t *testing.T) {
	router := newTestRouter(&fakePipeline{}, cache.New(time.Minute, time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/api/stories/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoryController_GetStoryAudio(t *testing.T) {
	bundleCache := cache.New(time.Minute, time.Minute)
	bundleCache.Set("story-1", testBundle(), cache.DefaultExpiration)
	router := newTestRouter(&fakePipeline{}, bundleCache)

	req := httptest.NewRequest(http.MethodGet, "/api/stories/story-1/audio", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "mp3-bytes", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "bedtime_story_")
}

func TestStoryController_GetStoryAudioWithoutNarration(t *testing.T) {
	bundle := testBundle()
	bundle.Narration = nil
	bundleCache := cache.New(time.Minute, time.Minute)
	bundleCache.Set("story-1", bundle, cache.DefaultExpiration)
	router := newTestRouter(&fakePipeline{}, bundleCache)

	req := httptest.NewRequest(http.MethodGet, "/api/stories/story-1/audio", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoryController_ListVoicesAndThemes(t *testing.T) {
	router := newTestRouter(&fakePipeline{}, cache.New(time.Minute, time.Minute))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/voices", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.DefaultVoiceID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/themes", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "adventure")
}

func TestStoryController_Health(t *testing.T) {
	router := newTestRouter(&fakePipeline{}, cache.New(time.Minute, time.Minute))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
