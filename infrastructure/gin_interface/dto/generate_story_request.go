package dto

type GenerateStoryRequest struct {
	Prompt     string `json:"prompt"`
	Transcript string `json:"transcript"`
	ChildName  string `json:"child_name"`
	Theme      string `json:"theme"`
	VoiceID    string `json:"voice_id"`
	ImageModel string `json:"image_model"`
}
