// Package payment proxies the card-payment gateway for subscription checkout.
// The gateway holds card data; this service only initializes transactions and
// verifies their outcome by reference.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"deepguard/internal/models"
)

// ClientConfig configures the gateway client.
type ClientConfig struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Client talks to a Paystack-compatible payment gateway.
type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		http:      &http.Client{Timeout: timeout},
	}
}

// InitResult is the checkout handle returned by the gateway.
type InitResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// VerifyResult is the settled state of a transaction at the gateway.
type VerifyResult struct {
	Reference string
	Status    string // success | failed | abandoned | pending
	Amount    int64
	Raw       models.JSONMap
}

// gateway envelope: every response carries status/message, data varies.
type gatewayEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
}

// Initialize opens a transaction at the gateway and returns the checkout
// handle the client is redirected to. Amount is in the smallest currency
// unit. Gateway rejection or transport failure maps to ErrLookupFailed; the
// transaction state stays unknown, never assumed.
func (c *Client) Initialize(ctx context.Context, email string, amount int64, reference string) (*InitResult, error) {
	body, err := json.Marshal(map[string]interface{}{
		"email":     email,
		"amount":    amount,
		"reference": reference,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal initialize request: %w", err)
	}

	env, err := c.call(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var data initData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: malformed gateway response", models.ErrLookupFailed)
	}
	log.Printf("[payment] Initialized transaction %s for %s", data.Reference, email)
	return &InitResult{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify fetches the settled state of a transaction by reference.
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	if reference == "" {
		return nil, fmt.Errorf("%w: reference is required", models.ErrValidation)
	}

	env, err := c.call(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var data verifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: malformed gateway response", models.ErrLookupFailed)
	}

	var raw models.JSONMap
	_ = json.Unmarshal(env.Data, &raw)

	log.Printf("[payment] Verified transaction %s: %s", reference, data.Status)
	return &VerifyResult{
		Reference: data.Reference,
		Status:    data.Status,
		Amount:    data.Amount,
		Raw:       raw,
	}, nil
}

func (c *Client) call(ctx context.Context, method, path string, body io.Reader) (*gatewayEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: payment gateway unreachable: %v", models.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading gateway response: %v", models.ErrLookupFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[payment] Gateway returned %d for %s %s", resp.StatusCode, method, path)
		return nil, fmt.Errorf("%w: payment gateway returned %d", models.ErrLookupFailed, resp.StatusCode)
	}

	var env gatewayEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed gateway response", models.ErrLookupFailed)
	}
	if !env.Status {
		return nil, fmt.Errorf("%w: gateway rejected request: %s", models.ErrLookupFailed, env.Message)
	}
	return &env, nil
}
