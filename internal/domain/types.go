package domain

// JobStatus tracks the lifecycle of a single talk generation job.
type JobStatus string

const (
	JobStatusIdle      JobStatus = "idle"
	JobStatusCreated   JobStatus = "created"
	JobStatusStarted   JobStatus = "started"
	JobStatusDone      JobStatus = "done"
	JobStatusFailed    JobStatus = "error"
	JobStatusCancelled JobStatus = "cancelled"
)

// Settings contains the API credentials persisted in the local config file.
// The JSON field names are part of the config file contract.
type Settings struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ScriptType selects between a synthesized text script and a prerecorded audio script.
type ScriptType string

const (
	ScriptTypeText  ScriptType = "text"
	ScriptTypeAudio ScriptType = "audio"
)

// TalkRequest carries one user submission; immutable once sent.
type TalkRequest struct {
	SourceURL     string     `json:"sourceUrl"`
	ScriptType    ScriptType `json:"scriptType"`
	Text          string     `json:"text,omitempty"`
	AudioURL      string     `json:"audioUrl,omitempty"`
	VoiceProvider string     `json:"voiceProvider,omitempty"`
	VoiceID       string     `json:"voiceId,omitempty"`
	VoiceStyle    string     `json:"voiceStyle,omitempty"`
	DriverURL     string     `json:"driverUrl,omitempty"`
	Stitch        bool       `json:"stitch,omitempty"`
	Persist       bool       `json:"persist,omitempty"`
	WebhookURL    string     `json:"webhookUrl,omitempty"`
}

// Job stores the remote talk identity and lifecycle status.
type Job struct {
	ID        string    `json:"id"`
	Status    JobStatus `json:"status"`
	ResultURL string    `json:"resultUrl,omitempty"`
}

// ConnectionTest reports the outcome of an API credential check.
type ConnectionTest struct {
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
	Remaining int    `json:"remaining,omitempty"`
	Total     int    `json:"total,omitempty"`
}

// MediaCheck reports whether a preview URL points at usable media.
type MediaCheck struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
