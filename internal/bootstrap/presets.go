package bootstrap

import "talkstudio/internal/domain"

// Voice defaults used when a text script omits provider details.
const (
	DefaultVoiceProvider = "microsoft"
	DefaultVoiceID       = "en-US-JennyNeural"
)

// Default media shown in the create form on first launch.
const (
	DefaultSourceImageURL = "https://d-id-public-bucket.s3.us-west-2.amazonaws.com/alice.jpg"
	DefaultAudioURL       = "https://d-id-public-bucket.s3.us-west-2.amazonaws.com/webrtc.mp3"
)

var driverCatalog = []domain.DriverOption{
	{
		ID:          "lively-01",
		Name:        "Lively 1",
		URL:         "bank://lively/driver-01",
		Description: "Energetic head movement.",
	},
	{
		ID:          "lively-02",
		Name:        "Lively 2",
		URL:         "bank://lively/driver-02",
		Description: "Animated, frequent gestures.",
	},
	{
		ID:          "lively-05",
		Name:        "Lively 5",
		URL:         "bank://lively/driver-05",
		Description: "Lightly animated delivery.",
	},
	{
		ID:          "serious-03",
		Name:        "Serious 3",
		URL:         "bank://serious/driver-03",
		Description: "Calm, newsreader-style delivery.",
	},
	{
		ID:          "happy-04",
		Name:        "Happy 4",
		URL:         "bank://happy/driver-04",
		Description: "Smiling, upbeat delivery.",
	},
}

var voicePresetCatalog = []domain.VoicePreset{
	{
		Provider: "microsoft",
		VoiceID:  "en-US-JennyNeural",
		Name:     "Jenny (US English)",
		Styles:   []string{"Cheerful", "Friendly", "Excited", "Sad"},
		Default:  true,
	},
	{
		Provider: "microsoft",
		VoiceID:  "en-US-GuyNeural",
		Name:     "Guy (US English)",
		Styles:   []string{"Cheerful", "Newscast"},
	},
	{
		Provider: "microsoft",
		VoiceID:  "en-GB-SoniaNeural",
		Name:     "Sonia (British English)",
	},
	{
		Provider: "amazon",
		VoiceID:  "Joanna",
		Name:     "Joanna (US English)",
	},
	{
		Provider: "amazon",
		VoiceID:  "Matthew",
		Name:     "Matthew (US English)",
	},
	{
		Provider: "google",
		VoiceID:  "en-US-Wavenet-F",
		Name:     "Wavenet F (US English)",
	},
}

// GetDrivers returns built-in driver animation presets for the create form.
func (a *App) GetDrivers() []domain.DriverOption {
	drivers := make([]domain.DriverOption, len(driverCatalog))
	copy(drivers, driverCatalog)
	return drivers
}

// GetVoicePresets returns suggested voices grouped by TTS provider.
func (a *App) GetVoicePresets() []domain.VoicePreset {
	presets := make([]domain.VoicePreset, len(voicePresetCatalog))
	copy(presets, voicePresetCatalog)
	return presets
}
