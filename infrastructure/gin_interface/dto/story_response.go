package dto

import (
	"encoding/base64"

	"github.com/dan-shah/bedtime-stories/domain"
)

type StoryResponse struct {
	StoryID      string               `json:"story_id"`
	Story        StoryPayload         `json:"story"`
	Narration    *NarrationPayload    `json:"narration,omitempty"`
	Illustration *IllustrationPayload `json:"illustration,omitempty"`
	Media        *domain.MediaURLs    `json:"media,omitempty"`
	Warnings     []string             `json:"warnings,omitempty"`
}

type StoryPayload struct {
	Text       string `json:"text"`
	WordCount  int    `json:"word_count"`
	Conforming bool   `json:"conforming"`
}

type NarrationPayload struct {
	AudioBase64     string  `json:"audio_base64"`
	VoiceID         string  `json:"voice_id"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type IllustrationPayload struct {
	ImagesBase64 []string `json:"images_base64"`
	PromptsUsed  []string `json:"prompts_used"`
}

func FromBundle(bundle *domain.ResponseBundle) StoryResponse {
	res := StoryResponse{
		StoryID: bundle.StoryID,
		Story: StoryPayload{
			Text:       bundle.Story.Text,
			WordCount:  bundle.Story.WordCount,
			Conforming: bundle.Story.Conforming,
		},
		Media:    bundle.Media,
		Warnings: bundle.Warnings,
	}

	if bundle.Narration != nil {
		res.Narration = &NarrationPayload{
			AudioBase64:     base64.StdEncoding.EncodeToString(bundle.Narration.Audio),
			VoiceID:         bundle.Narration.VoiceID,
			DurationSeconds: bundle.Narration.DurationSeconds,
		}
	}

	if bundle.Illustration != nil {
		payload := &IllustrationPayload{
			PromptsUsed: bundle.Illustration.PromptsUsed,
		}
		for _, image := range bundle.Illustration.Images {
			payload.ImagesBase64 = append(payload.ImagesBase64, base64.StdEncoding.EncodeToString(image))
		}
		res.Illustration = payload
	}

	return res
}
