package talks

import "talkstudio/internal/domain"

// Wire shapes of the talks service. Field names follow the remote API.

type voiceConfigPayload struct {
	Style string `json:"style"`
}

type scriptProviderPayload struct {
	Type        string              `json:"type"`
	VoiceID     string              `json:"voice_id"`
	VoiceConfig *voiceConfigPayload `json:"voice_config,omitempty"`
}

type scriptPayload struct {
	Type      string                 `json:"type"`
	Input     string                 `json:"input,omitempty"`
	AudioURL  string                 `json:"audio_url,omitempty"`
	Subtitles string                 `json:"subtitles"`
	SSML      string                 `json:"ssml"`
	Provider  *scriptProviderPayload `json:"provider,omitempty"`
}

type talkConfigPayload struct {
	Fluent  string `json:"fluent"`
	Stitch  bool   `json:"stitch,omitempty"`
	Persist bool   `json:"persist,omitempty"`
	Webhook string `json:"webhook,omitempty"`
}

type createTalkPayload struct {
	SourceURL string            `json:"source_url"`
	Script    scriptPayload     `json:"script"`
	Config    talkConfigPayload `json:"config"`
	DriverURL string            `json:"driver_url,omitempty"`
}

type talkResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	ResultURL string `json:"result_url"`
	Error     *struct {
		Kind        string `json:"kind"`
		Description string `json:"description"`
	} `json:"error"`
}

// Talk is one remote generation job as reported by the service.
type Talk struct {
	ID          string           `json:"id"`
	Status      domain.JobStatus `json:"status"`
	RawStatus   string           `json:"rawStatus"`
	ResultURL   string           `json:"resultUrl,omitempty"`
	ErrorDetail string           `json:"errorDetail,omitempty"`

	// Raw keeps the unparsed response body for the debug log pane.
	Raw string `json:"-"`
}

// Credits reports the account balance returned by the connection test call.
type Credits struct {
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}

// mapRemoteStatus folds the service's status strings onto the job enum.
// Unknown statuses are treated as still in flight so polling continues.
func mapRemoteStatus(raw string) domain.JobStatus {
	switch raw {
	case "created", "queued":
		return domain.JobStatusCreated
	case "started":
		return domain.JobStatusStarted
	case "done":
		return domain.JobStatusDone
	case "error", "failed", "rejected":
		return domain.JobStatusFailed
	default:
		return domain.JobStatusCreated
	}
}
