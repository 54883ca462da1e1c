package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"deepguard/internal/models"
)

// WebhookSink forwards high-severity alerts to an external webhook (SIEM,
// chat, pager). Delivery is fire-and-forget with a short timeout; the alert
// is already persisted before the sink sees it.
type WebhookSink struct {
	endpoint string
	http     *http.Client
}

// NewWebhookSink creates a sink for the given endpoint. An empty endpoint
// returns nil, which the service treats as disabled.
func NewWebhookSink(endpoint string) *WebhookSink {
	if endpoint == "" {
		return nil
	}
	return &WebhookSink{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 2 * time.Second},
	}
}

// Publish delivers one alert event to the webhook.
func (s *WebhookSink) Publish(ctx context.Context, alert *models.MonitoringAlert) {
	payload, err := json.Marshal(map[string]interface{}{
		"event":      "deepguard.alert",
		"alert_type": alert.AlertType,
		"severity":   alert.Severity,
		"title":      alert.Title,
		"message":    alert.Message,
		"metadata":   alert.Metadata,
		"user_id":    alert.UserID,
		"created_at": alert.CreatedAt,
	})
	if err != nil {
		log.Printf("[alerts] Webhook payload marshal failed: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		log.Printf("[alerts] Webhook request error: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		log.Printf("[alerts] Webhook delivery failed: %v", err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
}
