package domain

// DriverOption describes one built-in driver animation preset.
type DriverOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// VoicePreset describes one suggested TTS provider voice.
type VoicePreset struct {
	Provider string   `json:"provider"`
	VoiceID  string   `json:"voiceId"`
	Name     string   `json:"name"`
	Styles   []string `json:"styles,omitempty"`
	Default  bool     `json:"default,omitempty"`
}
