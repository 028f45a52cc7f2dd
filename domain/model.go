package domain

type GenerationRequest struct {
	ID         string
	ChildName  string
	Theme      Theme
	Prompt     string
	VoiceID    string
	ImageModel ImageModel
}

type StoryResult struct {
	Text       string `json:"text"`
	WordCount  int    `json:"word_count"`
	Conforming bool   `json:"conforming"`
}

type NarrationResult struct {
	Audio           []byte  `json:"audio"`
	VoiceID         string  `json:"voice_id"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type IllustrationResult struct {
	Images      [][]byte `json:"images"`
	PromptsUsed []string `json:"prompts_used"`
}

type MediaURLs struct {
	NarrationURL string   `json:"narration_url,omitempty"`
	ImageURLs    []string `json:"image_urls,omitempty"`
}

type ResponseBundle struct {
	StoryID      string              `json:"story_id"`
	Story        StoryResult         `json:"story"`
	Narration    *NarrationResult    `json:"narration,omitempty"`
	Illustration *IllustrationResult `json:"illustration,omitempty"`
	Media        *MediaURLs          `json:"media,omitempty"`
	Warnings     []string            `json:"warnings,omitempty"`
}

func (b *ResponseBundle) AddWarning(msg string) {
	b.Warnings = append(b.Warnings, msg)
}
