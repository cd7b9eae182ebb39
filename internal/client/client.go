// Package client is the review gateway client shared by the terminal UI and
// the command-line tool.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sevigo/snapreview/internal/core"
)

const maxErrorBody = 4096

// APIError is returned when the gateway answers with a non-2xx status.
type APIError struct {
	StatusCode int
	// Message is the gateway's review text, empty if the body had none.
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("review gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("review gateway returned status %d: %s", e.StatusCode, e.Message)
}

// Client talks to a review gateway.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the gateway at baseURL. A nil httpClient means
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// Review submits code for review and returns the review text.
func (c *Client) Review(ctx context.Context, code, language string) (string, error) {
	payload, err := json.Marshal(core.ReviewRequest{Code: code, Language: language})
	if err != nil {
		return "", fmt.Errorf("encoding review request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/review", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating review request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending review request", "url", req.URL.String(), "language", language, "code_bytes", len(code))
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending review request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var parsed core.ReviewResponse
		if json.Unmarshal(body, &parsed) == nil {
			apiErr.Message = strings.TrimSpace(parsed.Review)
		}
		return "", apiErr
	}

	var parsed core.ReviewResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding review response: %w", err)
	}
	return parsed.Review, nil
}

// Health calls the gateway's liveness route and returns its text.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", fmt.Errorf("creating health request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending health request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return "", fmt.Errorf("reading health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return strings.TrimSpace(string(body)), nil
}

// ErrorMessage returns the text a user should see for err: the gateway's
// message when it sent one, otherwise fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return fallback
}
