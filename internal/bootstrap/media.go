package bootstrap

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"talkstudio/internal/domain"
)

// mediaClient issues short preview-validation requests.
var mediaClient = &http.Client{Timeout: 10 * time.Second}

// ValidateImageURL checks an avatar image URL is reachable before submit.
func (a *App) ValidateImageURL(rawURL string) domain.MediaCheck {
	return validateImageURL(mediaClient, rawURL)
}

// ValidateAudioURL checks an audio script URL points at an MP3 file.
func (a *App) ValidateAudioURL(rawURL string) domain.MediaCheck {
	return validateAudioURL(mediaClient, rawURL)
}

func validateImageURL(client *http.Client, rawURL string) domain.MediaCheck {
	trimmed := strings.TrimSpace(rawURL)
	if !isHTTPURL(trimmed) {
		return domain.MediaCheck{Message: "Enter a valid URL starting with http:// or https://."}
	}

	resp, err := client.Head(trimmed)
	if err != nil {
		return domain.MediaCheck{Message: fmt.Sprintf("Image is not reachable: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.MediaCheck{Message: fmt.Sprintf("Image is not reachable: status %d", resp.StatusCode)}
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return domain.MediaCheck{Message: "URL does not point at an image file."}
	}

	return domain.MediaCheck{OK: true, Message: "Valid avatar image."}
}

func validateAudioURL(client *http.Client, rawURL string) domain.MediaCheck {
	trimmed := strings.TrimSpace(rawURL)
	if !isHTTPURL(trimmed) {
		return domain.MediaCheck{Message: "Enter a valid URL starting with http:// or https://."}
	}

	resp, err := client.Head(trimmed)
	if err != nil {
		return domain.MediaCheck{Message: fmt.Sprintf("Audio is not reachable: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.MediaCheck{Message: fmt.Sprintf("Audio is not reachable: status %d", resp.StatusCode)}
	}

	// The service only accepts MP3 audio scripts.
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "mp3") && !strings.Contains(contentType, "mpeg") {
		return domain.MediaCheck{Message: "Only MP3 audio files are supported."}
	}

	return domain.MediaCheck{OK: true, Message: "Valid MP3 audio file."}
}

func isHTTPURL(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}
