package talks

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"talkstudio/internal/domain"
)

const requestTimeout = 30 * time.Second

// Client calls the remote talks HTTP API with a fixed set of credentials.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client

	// downloadClient has no request timeout; result downloads are bounded
	// by the caller's context instead.
	downloadClient *http.Client
}

// NewClient builds a client from loaded settings. The key is sent as a
// Basic credential with an empty password, as the service expects.
func NewClient(settings domain.Settings) *Client {
	return &Client{
		baseURL:        strings.TrimRight(strings.TrimSpace(settings.URL), "/"),
		authHeader:     "Basic " + base64.StdEncoding.EncodeToString([]byte(settings.Key+":")),
		httpClient:     &http.Client{Timeout: requestTimeout},
		downloadClient: &http.Client{},
	}
}

// CreateTalk submits one generation job and returns the remote talk with a
// non-empty id. Malformed requests fail with ErrValidation before any call.
func (c *Client) CreateTalk(ctx context.Context, req domain.TalkRequest) (Talk, error) {
	payload, err := buildCreatePayload(req)
	if err != nil {
		return Talk{}, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Talk{}, fmt.Errorf("encode talk payload: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/talks", bytes.NewReader(body))
	if err != nil {
		return Talk{}, err
	}

	talk, err := decodeTalk(data)
	if err != nil {
		return Talk{}, err
	}
	if talk.ID == "" {
		return Talk{}, fmt.Errorf("%w: response is missing the talk id", ErrService)
	}
	if talk.RawStatus == "" {
		talk.Status = domain.JobStatusCreated
		talk.RawStatus = "created"
	}

	return talk, nil
}

// GetTalk fetches the current status of one talk.
func (c *Client) GetTalk(ctx context.Context, id string) (Talk, error) {
	talkID := strings.TrimSpace(id)
	if talkID == "" {
		return Talk{}, fmt.Errorf("%w: talk id is required", ErrValidation)
	}

	data, err := c.do(ctx, http.MethodGet, "/talks/"+talkID, nil)
	if err != nil {
		return Talk{}, err
	}

	return decodeTalk(data)
}

// Credits issues the lightweight authenticated call used to test a key.
func (c *Client) Credits(ctx context.Context) (Credits, error) {
	data, err := c.do(ctx, http.MethodGet, "/credits", nil)
	if err != nil {
		return Credits{}, err
	}

	var credits Credits
	if err := json.Unmarshal(data, &credits); err != nil {
		return Credits{}, fmt.Errorf("%w: unexpected credits response", ErrService)
	}

	return credits, nil
}

// do issues one authenticated API request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.authHeader)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newAPIError(resp.StatusCode, data)
	}

	return data, nil
}

// decodeTalk parses a talk response and maps the remote status.
func decodeTalk(data []byte) (Talk, error) {
	var resp talkResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Talk{}, fmt.Errorf("%w: unexpected talk response", ErrService)
	}

	talk := Talk{
		ID:        resp.ID,
		Status:    mapRemoteStatus(resp.Status),
		RawStatus: resp.Status,
		ResultURL: resp.ResultURL,
		Raw:       string(data),
	}
	if resp.Error != nil {
		talk.ErrorDetail = resp.Error.Description
		if talk.ErrorDetail == "" {
			talk.ErrorDetail = resp.Error.Kind
		}
	}

	return talk, nil
}

// buildCreatePayload validates a submission and shapes it for the wire.
func buildCreatePayload(req domain.TalkRequest) (createTalkPayload, error) {
	sourceURL := strings.TrimSpace(req.SourceURL)
	if sourceURL == "" {
		return createTalkPayload{}, fmt.Errorf("%w: source image url is required", ErrValidation)
	}

	script := scriptPayload{
		Type:      string(req.ScriptType),
		Subtitles: "false",
		SSML:      "false",
	}

	switch req.ScriptType {
	case domain.ScriptTypeText:
		script.Input = strings.TrimSpace(req.Text)
		if script.Input == "" {
			return createTalkPayload{}, fmt.Errorf("%w: text script is required", ErrValidation)
		}
		if provider := strings.TrimSpace(req.VoiceProvider); provider != "" {
			script.Provider = &scriptProviderPayload{
				Type:    provider,
				VoiceID: strings.TrimSpace(req.VoiceID),
			}
			if style := strings.TrimSpace(req.VoiceStyle); style != "" {
				script.Provider.VoiceConfig = &voiceConfigPayload{Style: style}
			}
		}
	case domain.ScriptTypeAudio:
		script.AudioURL = strings.TrimSpace(req.AudioURL)
		if script.AudioURL == "" {
			return createTalkPayload{}, fmt.Errorf("%w: audio url is required", ErrValidation)
		}
	default:
		return createTalkPayload{}, fmt.Errorf("%w: unknown script type: %q", ErrValidation, req.ScriptType)
	}

	return createTalkPayload{
		SourceURL: sourceURL,
		Script:    script,
		Config: talkConfigPayload{
			Fluent:  "false",
			Stitch:  req.Stitch,
			Persist: req.Persist,
			Webhook: strings.TrimSpace(req.WebhookURL),
		},
		DriverURL: strings.TrimSpace(req.DriverURL),
	}, nil
}
