package domain

type PipelineState string

const (
	StateIdle           PipelineState = "idle"
	StateNormalizing    PipelineState = "normalizing"
	StateGenerating     PipelineState = "generating_story"
	StateRenderingMedia PipelineState = "rendering_media"
	StateAssembled      PipelineState = "assembled"
	StateDelivered      PipelineState = "delivered"
	StateFailed         PipelineState = "failed"
)

type PipelineEventType string

const (
	EventStateChanged      PipelineEventType = "state_changed"
	EventStoryToken        PipelineEventType = "story_token"
	EventStoryReady        PipelineEventType = "story_ready"
	EventNarrationReady    PipelineEventType = "narration_ready"
	EventIllustrationReady PipelineEventType = "illustration_ready"
	EventWarning           PipelineEventType = "warning"
	EventBundleReady       PipelineEventType = "bundle_ready"
)

type PipelineEvent struct {
	StoryID string            `json:"story_id"`
	Type    PipelineEventType `json:"type"`
	State   PipelineState     `json:"state,omitempty"`
	Token   string            `json:"token,omitempty"`
	Message string            `json:"message,omitempty"`
	Bundle  *ResponseBundle   `json:"bundle,omitempty"`
}
