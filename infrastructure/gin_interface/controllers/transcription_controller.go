package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/infrastructure/gin_interface/dto"
)

type TranscriptionController interface {
	CreateTranscription(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type transcriptionController struct {
	logger      outbound.LoggerPort
	transcriber outbound.TranscriberPort
}

func NewTranscriptionController(logger outbound.LoggerPort,
	transcriber outbound.TranscriberPort) TranscriptionController {
	return &transcriptionController{
		logger:      logger,
		transcriber: transcriber,
	}
}

func (t *transcriptionController) CreateTranscription(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		t.logger.Error(err, "failed to open uploaded audio")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read audio file"})
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			t.logger.Error(err, "failed to close uploaded audio")
		}
	}()

	audio, err := io.ReadAll(file)
	if err != nil {
		t.logger.Error(err, "failed to read uploaded audio")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read audio file"})
		return
	}

	text, err := t.transcriber.Transcribe(c.Request.Context(), outbound.TranscribeParams{
		Audio:    audio,
		Filename: fileHeader.Filename,
	})
	if err != nil {
		t.logger.Error(err, "transcription failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "transcription failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, dto.TranscriptionResponse{Text: text})
}

func (t *transcriptionController) RegisterRoutes(g *gin.Engine) {
	g.POST("/api/transcriptions", t.CreateTranscription)
}
