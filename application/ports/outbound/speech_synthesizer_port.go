package outbound

import "context"

type SynthesizeSpeechParams struct {
	Text    string
	VoiceID string
}

type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, params SynthesizeSpeechParams) ([]byte, error)
}
