package outbound

import "context"

type TranscribeParams struct {
	Audio    []byte
	Filename string
}

type TranscriberPort interface {
	Transcribe(ctx context.Context, params TranscribeParams) (string, error)
}
