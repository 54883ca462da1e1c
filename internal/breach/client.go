// Package breach implements the breach detection service: a client for an
// HIBP-compatible breach-data provider plus the risk policy and recovery
// guidance layered on top of it.
package breach

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"deepguard/internal/models"
)

// ClientConfig holds configuration for the breach-data provider client.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to an HIBP-compatible breached-account API.
type Client struct {
	config ClientConfig
	http   *http.Client
}

// NewClient creates a breach-data provider client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: timeout},
	}
}

// providerBreach mirrors the provider's wire format. Breach dates arrive as
// bare dates, added/modified as full timestamps.
type providerBreach struct {
	Name               string   `json:"Name"`
	Title              string   `json:"Title"`
	Domain             string   `json:"Domain"`
	BreachDate         string   `json:"BreachDate"`
	AddedDate          string   `json:"AddedDate"`
	ModifiedDate       string   `json:"ModifiedDate"`
	PwnCount           int64    `json:"PwnCount"`
	Description        string   `json:"Description"`
	DataClasses        []string `json:"DataClasses"`
	IsVerified         bool     `json:"IsVerified"`
	IsFabricated       bool     `json:"IsFabricated"`
	IsSensitive        bool     `json:"IsSensitive"`
	IsRetired          bool     `json:"IsRetired"`
	IsSpamList         bool     `json:"IsSpamList"`
	IsMalware          bool     `json:"IsMalware"`
	IsSubscriptionFree bool     `json:"IsSubscriptionFree"`
}

// BreachedAccount queries the provider for every breach the subject appears in.
//
// A 404 is the provider's "clean" answer and returns an empty slice. Any other
// failure (transport error, timeout, rate limit that survives the retry, or
// an unexpected status) returns ErrLookupFailed. It is never collapsed into
// an empty result: "could not check" and "checked, found nothing" are
// different answers.
func (c *Client) BreachedAccount(ctx context.Context, subject string) ([]models.BreachData, error) {
	endpoint := fmt.Sprintf("%s/breachedaccount/%s?truncateResponse=false",
		c.config.BaseURL, url.PathEscape(subject))

	for attempt := 1; attempt <= 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("build breach request: %w", err)
		}
		if c.config.APIKey != "" {
			req.Header.Set("hibp-api-key", c.config.APIKey)
		}
		req.Header.Set("User-Agent", "DeepGuard-Monitor")

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == 1 && ctx.Err() == nil {
				time.Sleep(500 * time.Millisecond)
				continue
			}
			return nil, fmt.Errorf("breach provider unreachable: %w: %v", models.ErrLookupFailed, err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			var entries []providerBreach
			if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
				resp.Body.Close()
				return nil, fmt.Errorf("decode breach response: %w: %v", models.ErrLookupFailed, err)
			}
			resp.Body.Close()
			return mapBreaches(entries), nil

		case http.StatusNotFound:
			resp.Body.Close()
			return []models.BreachData{}, nil

		case http.StatusTooManyRequests:
			resp.Body.Close()
			if attempt == 1 {
				log.Printf("[breach] Rate limit hit, backing off and retrying")
				select {
				case <-time.After(1600 * time.Millisecond):
					continue
				case <-ctx.Done():
					return nil, fmt.Errorf("breach lookup cancelled: %w: %v", models.ErrLookupFailed, ctx.Err())
				}
			}
			return nil, fmt.Errorf("breach provider rate limited: %w", models.ErrLookupFailed)

		default:
			resp.Body.Close()
			if attempt == 1 {
				time.Sleep(500 * time.Millisecond)
				continue
			}
			return nil, fmt.Errorf("breach provider returned status %d: %w", resp.StatusCode, models.ErrLookupFailed)
		}
	}

	return nil, models.ErrLookupFailed
}

// mapBreaches converts provider entries into the domain shape.
func mapBreaches(entries []providerBreach) []models.BreachData {
	breaches := make([]models.BreachData, 0, len(entries))
	for _, e := range entries {
		breaches = append(breaches, models.BreachData{
			ID:                 e.Name,
			Name:               e.Name,
			Title:              e.Title,
			Domain:             e.Domain,
			BreachDate:         parseProviderDate(e.BreachDate),
			AddedDate:          parseProviderDate(e.AddedDate),
			ModifiedDate:       parseProviderDate(e.ModifiedDate),
			PwnCount:           e.PwnCount,
			Description:        e.Description,
			DataClasses:        e.DataClasses,
			IsVerified:         e.IsVerified,
			IsFabricated:       e.IsFabricated,
			IsSensitive:        e.IsSensitive,
			IsRetired:          e.IsRetired,
			IsSpamList:         e.IsSpamList,
			IsMalware:          e.IsMalware,
			IsSubscriptionFree: e.IsSubscriptionFree,
		})
	}
	return breaches
}

// parseProviderDate accepts both full timestamps and bare dates.
// Unparseable values yield the zero time rather than failing the lookup.
func parseProviderDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
