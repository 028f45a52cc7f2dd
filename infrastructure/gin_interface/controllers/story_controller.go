package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/dan-shah/bedtime-stories/application/ports/inbound"
	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/domain"
	"github.com/dan-shah/bedtime-stories/infrastructure/gin_interface/dto"
	"github.com/dan-shah/bedtime-stories/middleware"
)

type StoryController interface {
	CreateStory(c *gin.Context)
	StreamStory(c *gin.Context)
	GetStory(c *gin.Context)
	GetStoryAudio(c *gin.Context)
	ListVoices(c *gin.Context)
	ListThemes(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type storyController struct {
	logger      outbound.LoggerPort
	pipeline    inbound.StoryPipelinePort
	bundleCache *cache.Cache
}

func NewStoryController(logger outbound.LoggerPort, pipeline inbound.StoryPipelinePort,
	bundleCache *cache.Cache) StoryController {
	return &storyController{
		logger:      logger,
		pipeline:    pipeline,
		bundleCache: bundleCache,
	}
}

func (s *storyController) CreateStory(c *gin.Context) {
	var req dto.GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bundle, err := s.pipeline.Run(c.Request.Context(), toRunParams(req))
	if err != nil {
		s.respondPipelineError(c, err)
		return
	}

	s.bundleCache.Set(bundle.StoryID, bundle, cache.DefaultExpiration)
	c.JSON(http.StatusOK, dto.FromBundle(bundle))
}

func (s *storyController) StreamStory(c *gin.Context) {
	var req dto.GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, errCh := s.pipeline.Stream(c.Request.Context(), toRunParams(req))

	for events != nil || errCh != nil {
		select {
		case <-c.Request.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if event.Type == domain.EventBundleReady && event.Bundle != nil {
				s.bundleCache.Set(event.Bundle.StoryID, event.Bundle, cache.DefaultExpiration)
			}
			s.writeEvent(c, event)
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			s.writeEvent(c, domain.PipelineEvent{
				Type:    domain.EventWarning,
				State:   domain.StateFailed,
				Message: err.Error(),
			})
		}
	}
}

func (s *storyController) writeEvent(c *gin.Context, event domain.PipelineEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error(err, "failed to marshal pipeline event")
		return
	}
	if _, err := fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event.Type, payload); err != nil {
		s.logger.Error(err, "failed to write pipeline event")
		return
	}
	c.Writer.Flush()
}

func (s *storyController) GetStory(c *gin.Context) {
	bundle, ok := s.lookupBundle(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromBundle(bundle))
}

func (s *storyController) GetStoryAudio(c *gin.Context) {
	bundle, ok := s.lookupBundle(c)
	if !ok {
		return
	}
	if bundle.Narration == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story has no narration"})
		return
	}

	voiceName := bundle.Narration.VoiceID
	if voice, ok := domain.LookupVoice(bundle.Narration.VoiceID); ok {
		voiceName = voice.Name
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "bedtime_story_"+voiceName+".mp3"))
	c.Data(http.StatusOK, "audio/mpeg", bundle.Narration.Audio)
}

func (s *storyController) ListVoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"voices": domain.Voices(), "default_voice_id": domain.DefaultVoiceID})
}

func (s *storyController) ListThemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": domain.Themes()})
}

func (s *storyController) RegisterRoutes(g *gin.Engine) {
	g.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	g.POST("/api/stories", s.CreateStory)
	g.POST("/api/stories/stream", middleware.SSEHeaders(), s.StreamStory)
	g.GET("/api/stories/:id", s.GetStory)
	g.GET("/api/stories/:id/audio", s.GetStoryAudio)
	g.GET("/api/voices", s.ListVoices)
	g.GET("/api/themes", s.ListThemes)
}

func (s *storyController) lookupBundle(c *gin.Context) (*domain.ResponseBundle, bool) {
	id := c.Param("id")
	cached, ok := s.bundleCache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return nil, false
	}
	bundle, ok := cached.(*domain.ResponseBundle)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "corrupt cache entry"})
		return nil, false
	}
	return bundle, true
}

func (s *storyController) respondPipelineError(c *gin.Context, err error) {
	var invalidInput *domain.InvalidInputError
	if errors.As(err, &invalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidInput.Error()})
		return
	}

	var generation *domain.GenerationError
	if errors.As(err, &generation) {
		s.logger.Error(err, "story generation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "story generation failed, please try again"})
		return
	}

	s.logger.Error(err, "pipeline failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func toRunParams(req dto.GenerateStoryRequest) inbound.RunPipelineParams {
	return inbound.RunPipelineParams{
		Prompt:     req.Prompt,
		Transcript: req.Transcript,
		ChildName:  req.ChildName,
		Theme:      req.Theme,
		VoiceID:    req.VoiceID,
		ImageModel: req.ImageModel,
	}
}
