// Package zai is a minimal HTTP client for the ZAI image generations API. It
// covers only the single call this service makes: prompt in, one base64
// encoded image out.
package zai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"server/internal/infra"
)

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("zai: api key is required")

// Options configures the ZAI client.
type Options struct {
	APIKey         string
	BaseURL        string
	Model          string
	DefaultSize    string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the ZAI image generation endpoint.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	defaultSize string
	httpClient  *http.Client
	logger      *infra.Logger
}

// ImageRequest captures the inputs for one generation call.
type ImageRequest struct {
	Prompt string
	Size   string
}

// ImageAsset is the decoded result from the API.
type ImageAsset struct {
	Data   []byte
	Format string
}

type generationRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size,omitempty"`
}

type generationResponse struct {
	Data []struct {
		Base64 string `json:"base64"`
		URL    string `json:"url,omitempty"`
	} `json:"data"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 45 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.z.ai/api/paas/v4"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "cogview-3-flash"
	}
	defaultSize := strings.TrimSpace(opts.DefaultSize)
	if defaultSize == "" {
		defaultSize = "1024x1024"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:      strings.TrimSpace(opts.APIKey),
		baseURL:     baseURL,
		model:       model,
		defaultSize: defaultSize,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// GenerateImage invokes the API once and returns the decoded image bytes.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageAsset, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingAPIKey
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, errors.New("zai: prompt is required")
	}
	size := strings.TrimSpace(req.Size)
	if size == "" {
		size = c.defaultSize
	}

	body, err := json.Marshal(generationRequest{Model: c.model, Prompt: prompt, Size: size})
	if err != nil {
		return nil, fmt.Errorf("zai: encode request: %w", err)
	}
	endpoint := c.baseURL + "/images/generations"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("zai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("zai: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("zai: read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var detail errorResponse
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Error.Message != "" {
			return nil, fmt.Errorf("zai: %s (%s)", detail.Error.Message, detail.Error.Code)
		}
		return nil, fmt.Errorf("zai: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded generationResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("zai: decode response: %w", err)
	}
	if decoded.Code != "" {
		return nil, fmt.Errorf("zai: %s (%s)", decoded.Message, decoded.Code)
	}
	if len(decoded.Data) == 0 || strings.TrimSpace(decoded.Data[0].Base64) == "" {
		return nil, errors.New("zai: response contained no image data")
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(decoded.Data[0].Base64))
	if err != nil {
		return nil, fmt.Errorf("zai: decode image payload: %w", err)
	}

	c.logger.Debug().
		Str("model", c.model).
		Str("size", size).
		Int("bytes", len(data)).
		Msg("zai image generated")

	return &ImageAsset{Data: data, Format: sniffFormat(data)}, nil
}

func sniffFormat(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return "image/jpeg"
	default:
		return "image/png"
	}
}
