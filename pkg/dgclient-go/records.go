package dgclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Detection is a stored detection record.
type Detection struct {
	ID           uint                   `json:"ID"`
	SourceRef    string                 `json:"source_ref"`
	Score        float64                `json:"score"`
	IsDeepfake   bool                   `json:"is_deepfake"`
	Confidence   string                 `json:"confidence"`
	Details      map[string]interface{} `json:"details,omitempty"`
	ProcessingMS int64                  `json:"processing_ms"`
}

// CreateDetection records a detection result directly, without running an
// analysis.
func (c *Client) CreateDetection(ctx context.Context, sourceRef string, score float64) (*Detection, error) {
	return postJSON[Detection](ctx, c, "/detections", map[string]interface{}{
		"source_ref": sourceRef,
		"score":      score,
	})
}

// ListDetections returns the caller's detection records, newest first.
func (c *Client) ListDetections(ctx context.Context) ([]Detection, error) {
	out, err := getJSON[[]Detection](ctx, c, "/detections")
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// GetDetection fetches one detection record by ID.
func (c *Client) GetDetection(ctx context.Context, id uint) (*Detection, error) {
	return getJSON[Detection](ctx, c, fmt.Sprintf("/detections/%d", id))
}

// DeleteDetection removes a detection record.
func (c *Client) DeleteDetection(ctx context.Context, id uint) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/detections/%d", id), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return nil
}

// Alert is a monitoring alert.
type Alert struct {
	ID        uint                   `json:"ID"`
	AlertType string                 `json:"alert_type"`
	Severity  string                 `json:"severity"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Read      bool                   `json:"read"`
}

// AlertList pairs alerts with the unread count.
type AlertList struct {
	Alerts []Alert `json:"alerts"`
	Unread int     `json:"unread"`
}

// ListAlerts returns the caller's alerts plus the unread count.
func (c *Client) ListAlerts(ctx context.Context) (*AlertList, error) {
	return getJSON[AlertList](ctx, c, "/alerts")
}

// MarkAlertRead marks one alert read.
func (c *Client) MarkAlertRead(ctx context.Context, id uint) error {
	_, err := postJSON[map[string]bool](ctx, c, fmt.Sprintf("/alerts/%d/read", id), struct{}{})
	return err
}

// MarkAllAlertsRead marks every unread alert read.
func (c *Client) MarkAllAlertsRead(ctx context.Context) error {
	_, err := postJSON[map[string]bool](ctx, c, "/alerts/read-all", struct{}{})
	return err
}

// Summary is the dashboard aggregate snapshot.
type Summary struct {
	Status         string         `json:"status"`
	GeneratedAt    time.Time      `json:"generated_at"`
	TotalChecks    int            `json:"total_checks"`
	EmailChecks    int            `json:"email_checks"`
	PhoneChecks    int            `json:"phone_checks"`
	URLAnalyses    int            `json:"url_analyses"`
	BreachedChecks int            `json:"breached_checks"`
	BreachRate     float64        `json:"breach_rate"`
	RiskHistogram  map[string]int `json:"risk_histogram"`
}

// GetSummary fetches the analytics summary.
func (c *Client) GetSummary(ctx context.Context) (*Summary, error) {
	return getJSON[Summary](ctx, c, "/analytics/summary")
}

// TrendPoint is one day in a trend series.
type TrendPoint struct {
	Date         string `json:"date"`
	Detections   int    `json:"detections"`
	BreachChecks int    `json:"breach_checks"`
	Breached     int    `json:"breached"`
}

// TrendSeries is the dense daily series ending today. A "degraded" status
// means a backend read failed and the zero counts are not real.
type TrendSeries struct {
	Status string       `json:"status"`
	Days   int          `json:"days"`
	Trends []TrendPoint `json:"trends"`
}

// GetTrends fetches the daily trend series for the given window.
func (c *Client) GetTrends(ctx context.Context, days int) (*TrendSeries, error) {
	path := "/analytics/trends"
	if days > 0 {
		path = fmt.Sprintf("%s?days=%d", path, days)
	}
	return getJSON[TrendSeries](ctx, c, path)
}

// Checkout is the gateway checkout handle returned by InitializePayment.
type Checkout struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// InitializePayment starts checkout for a paid plan ("starter" or
// "professional").
func (c *Client) InitializePayment(ctx context.Context, email, plan string) (*Checkout, error) {
	return postJSON[Checkout](ctx, c, "/payments/initialize", map[string]string{
		"email": email,
		"plan":  plan,
	})
}

// PaymentStatus reports a verified transaction and the resulting plan.
type PaymentStatus struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Plan      string `json:"plan,omitempty"`
	Credits   int    `json:"credits,omitempty"`
}

// VerifyPayment settles a transaction by reference.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*PaymentStatus, error) {
	return getJSON[PaymentStatus](ctx, c, "/payments/verify/"+strings.TrimSpace(reference))
}
