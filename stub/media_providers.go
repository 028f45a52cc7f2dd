package stub

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"

	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
)

type speechSynthesizer struct{}

func NewSpeechSynthesizer() outbound.SpeechSynthesizerPort {
	return &speechSynthesizer{}
}

// Synthesize returns a recognizable placeholder instead of real audio; the
// length tracks the input so chunk-ordering behavior stays observable.
func (s *speechSynthesizer) Synthesize(_ context.Context, params outbound.SynthesizeSpeechParams) ([]byte, error) {
	payload := append([]byte("ID3"), []byte(params.Text)...)
	return payload, nil
}

type imageGenerator struct{}

func NewImageGenerator() outbound.ImageGeneratorPort {
	return &imageGenerator{}
}

func (g *imageGenerator) Generate(_ context.Context, _ outbound.GenerateImageParams) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 25, G: 25, B: 80, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type transcriber struct{}

func NewTranscriber() outbound.TranscriberPort {
	return &transcriber{}
}

func (t *transcriber) Transcribe(_ context.Context, _ outbound.TranscribeParams) (string, error) {
	return "a sleepy dragon who forgot how to breathe fire", nil
}
