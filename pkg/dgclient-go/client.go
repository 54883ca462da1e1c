// Package dgclient is a lightweight Go client for the DeepGuard API.
package dgclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds client configuration for talking to a DeepGuard server.
//
// BaseURL should point to the DeepGuard HTTP endpoint, for example:
//   - http://localhost:8080
//   - https://deepguard.your-company.com
//
// Optional HTTPClient can be provided to customize timeouts, proxies, etc.
// If nil, a default client with 60s timeout will be used.
type Config struct {
	BaseURL    string
	APIKey     string // X-API-Key for authenticated endpoints
	AdminKey   string // Optional X-ADMIN-KEY for admin endpoints
	HTTPClient *http.Client
}

// Client is a lightweight DeepGuard API client.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	adminKey   string
	httpClient *http.Client
}

// New creates a new DeepGuard client with the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is required")
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid BaseURL: %w", err)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}

	return &Client{
		baseURL:    u,
		apiKey:     cfg.APIKey,
		adminKey:   cfg.AdminKey,
		httpClient: hc,
	}, nil
}

// APIError represents an HTTP/API level error returned by DeepGuard.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("deepguard api error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("deepguard api error: status=%d body=%s", e.StatusCode, string(e.Body))
}

// AnalysisResult is the scored outcome of a URL analysis.
type AnalysisResult struct {
	Score      float64                `json:"score"`
	IsDeepfake bool                   `json:"is_deepfake"`
	Confidence string                 `json:"confidence"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// AnalyzeResponse mirrors the POST /analyze-url response payload.
type AnalyzeResponse struct {
	ID             uint           `json:"id"`
	Result         AnalysisResult `json:"result"`
	ProcessingTime int64          `json:"processing_time"`
}

// AnalyzeURL analyzes a media URL for deepfake indicators and records the
// result under the caller's account.
func (c *Client) AnalyzeURL(ctx context.Context, mediaURL string) (*AnalyzeResponse, error) {
	return postJSON[AnalyzeResponse](ctx, c, "/analyze-url", map[string]string{"url": mediaURL})
}

// PublicAnalyzeResponse mirrors the POST /analyze-url-public envelope.
type PublicAnalyzeResponse struct {
	Success        bool            `json:"success"`
	Result         *AnalysisResult `json:"result,omitempty"`
	ProcessingTime int64           `json:"processing_time,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
	Error          string          `json:"error,omitempty"`
	Details        string          `json:"details,omitempty"`
}

// AnalyzeURLPublic calls the unauthenticated analyze endpoint. Nothing is
// persisted server-side.
func (c *Client) AnalyzeURLPublic(ctx context.Context, mediaURL string) (*PublicAnalyzeResponse, error) {
	return postJSON[PublicAnalyzeResponse](ctx, c, "/analyze-url-public", map[string]string{"url": mediaURL})
}

// Breach is one historical breach record.
type Breach struct {
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Domain      string    `json:"domain"`
	BreachDate  time.Time `json:"breach_date"`
	PwnCount    int64     `json:"pwn_count"`
	DataClasses []string  `json:"data_classes"`
	IsVerified  bool      `json:"is_verified"`
	IsSensitive bool      `json:"is_sensitive"`
}

// RecoveryStep is a suggested remediation action.
type RecoveryStep struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Status        string                 `json:"status"`
	Priority      int                    `json:"priority"`
	EstimatedTime string                 `json:"estimated_time"`
	ActionType    string                 `json:"action_type"`
	ActionData    map[string]interface{} `json:"action_data,omitempty"`
}

// BreachResult mirrors a breach lookup response.
type BreachResult struct {
	Subject          string         `json:"subject"`
	SubjectType      string         `json:"subject_type"`
	IsBreached       bool           `json:"is_breached"`
	Breaches         []Breach       `json:"breaches"`
	TotalBreaches    int            `json:"total_breaches"`
	RiskLevel        string         `json:"risk_level"`
	MostRecentBreach *Breach        `json:"most_recent_breach,omitempty"`
	RecoverySteps    []RecoveryStep `json:"recovery_steps,omitempty"`
	DetectedAt       time.Time      `json:"detected_at"`
}

// CheckEmail looks up an email address against known breaches.
func (c *Client) CheckEmail(ctx context.Context, email string) (*BreachResult, error) {
	return postJSON[BreachResult](ctx, c, "/breach/check-email", map[string]string{"email": email})
}

// CheckPhone looks up a phone number against known breaches.
func (c *Client) CheckPhone(ctx context.Context, phone string) (*BreachResult, error) {
	return postJSON[BreachResult](ctx, c, "/breach/check-phone", map[string]string{"phone": phone})
}

// postJSON is a small helper for POSTing JSON and decoding the JSON response
// into a target type.
func postJSON[T any](ctx context.Context, c *Client, path string, body interface{}) (*T, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return do[T](c, req)
}

// getJSON is a helper for GET requests decoding JSON.
func getJSON[T any](ctx context.Context, c *Client, path string) (*T, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return do[T](c, req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if c.adminKey != "" {
		req.Header.Set("X-ADMIN-KEY", c.adminKey)
	}
	return req, nil
}

func do[T any](c *Client, req *http.Request) (*T, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: respBody}
	}

	var out T
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return &out, nil
}
