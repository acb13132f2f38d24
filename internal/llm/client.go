package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"cinemood/internal/metrics"
)

// ErrNotConfigured is returned when the client has no API key.
var ErrNotConfigured = errors.New("language model API key not configured")

// Request is one completion call.
type Request struct {
	// Operation labels logs and metrics.
	Operation       string
	Input           []Message
	Temperature     *float64
	MaxOutputTokens int
	// Vision selects the vision-capable model.
	Vision bool
}

// Client calls an OpenAI-compatible Responses endpoint.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	visionModel string
	http        *http.Client
}

// NewClient creates a new language-model client.
func NewClient(apiKey, baseURL, model, visionModel string) *Client {
	return &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		visionModel: visionModel,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Configured reports whether the client has an API key.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type responsesRequest struct {
	Model           string    `json:"model"`
	Input           []Message `json:"input"`
	Temperature     *float64  `json:"temperature,omitempty"`
	MaxOutputTokens int       `json:"max_output_tokens,omitempty"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the request and decodes the reply.
func (c *Client) Complete(ctx context.Context, req Request) (Reply, error) {
	if !c.Configured() {
		return Reply{}, ErrNotConfigured
	}

	model := c.model
	if req.Vision && c.visionModel != "" {
		model = c.visionModel
	}

	start := time.Now()
	reply, err := c.do(ctx, responsesRequest{
		Model:           model,
		Input:           req.Input,
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxOutputTokens,
	})
	metrics.UpstreamDuration.WithLabelValues("openai", req.Operation).Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.UpstreamRequests.WithLabelValues("openai", req.Operation, result).Inc()

	if err == nil {
		slog.Debug("language model replied", "operation", req.Operation, "model", model, "shape", reply.Shape.String())
	}
	return reply, err
}

func (c *Client) do(ctx context.Context, body responsesRequest) (Reply, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Reply{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return Reply{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			return Reply{}, fmt.Errorf("language model API returned status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return Reply{}, fmt.Errorf("language model API returned status %d", resp.StatusCode)
	}

	return DecodeReply(data)
}
