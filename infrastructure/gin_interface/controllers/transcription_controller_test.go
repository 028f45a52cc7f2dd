package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/infrastructure/adapters"
)

type fakeTranscriber struct {
	text string
	err  error
	got  outbound.TranscribeParams
}

func (f *fakeTranscriber) Transcribe(_ context.Context, params outbound.TranscribeParams) (string, error) {
	f.got = params
	return f.text, f.err
}

func newTranscriptionRouter(transcriber outbound.TranscriberPort) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := adapters.NewZerologWrapper("test")
	router := gin.New()
	NewTranscriptionController(logger, transcriber).RegisterRoutes(router)
	return router
}

func TestTranscriptionController_CreateTranscription(t *testing.T) {
	transcriber := &fakeTranscriber{text: "a sleepy dragon who forgot how to breathe fire"}
	router := newTranscriptionRouter(transcriber)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "idea.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("RIFF-fake-wav"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/transcriptions", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a sleepy dragon")
	assert.Equal(t, "idea.wav", transcriber.got.Filename)
	assert.Equal(t, []byte("RIFF-fake-wav"), transcriber.got.Audio)
}

func TestTranscriptionController_MissingFile(t *testing.T) {
	router := newTranscriptionRouter(&fakeTranscriber{})

	req := httptest.NewRequest(http.MethodPost, "/api/transcriptions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTranscriptionController_UpstreamFailure(t *testing.T) {
	router := newTranscriptionRouter(&fakeTranscriber{err: assert.AnError})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "idea.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("RIFF"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/transcriptions", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
