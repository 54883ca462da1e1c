package models

import "time"

// AnalyzeURLRequest is the payload for POST /analyze-url and /analyze-url-public.
type AnalyzeURLRequest struct {
	URL string `json:"url"`
}

// AnalysisResult is the scored outcome embedded in analyze responses.
type AnalysisResult struct {
	Score      float64        `json:"score"`
	IsDeepfake bool           `json:"is_deepfake"`
	Confidence ConfidenceBand `json:"confidence"`
	Details    JSONMap        `json:"details"`
}

// AnalyzeURLResponse is the authenticated analyze response.
type AnalyzeURLResponse struct {
	ID             uint           `json:"id"`
	Result         AnalysisResult `json:"result"`
	ProcessingTime int64          `json:"processing_time"`
}

// PublicAnalyzeResponse wraps the public endpoint result in a success envelope.
type PublicAnalyzeResponse struct {
	Success        bool            `json:"success"`
	Result         *AnalysisResult `json:"result,omitempty"`
	ProcessingTime int64           `json:"processing_time,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
	Error          string          `json:"error,omitempty"`
	Details        string          `json:"details,omitempty"`
}

// BreachLookupRequest is the payload for POST /breach/check-email and check-phone.
type BreachLookupRequest struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// BreachDetectionResult is the wire shape of one breach lookup outcome.
// The "checked and clean" case (IsBreached=false) is only ever produced by a
// provider answer; lookup failures surface as errors, never as this type.
type BreachDetectionResult struct {
	Subject          string         `json:"subject"`
	SubjectType      SubjectType    `json:"subject_type"`
	IsBreached       bool           `json:"is_breached"`
	Breaches         []BreachData   `json:"breaches"`
	TotalBreaches    int            `json:"total_breaches"`
	RiskLevel        RiskLevel      `json:"risk_level"`
	MostRecentBreach *BreachData    `json:"most_recent_breach,omitempty"`
	RecoverySteps    []RecoveryStep `json:"recovery_steps,omitempty"`
	DetectedAt       time.Time      `json:"detected_at"`
}

// CreateDetectionRequest is the payload for POST /detections.
type CreateDetectionRequest struct {
	SourceRef    string  `json:"source_ref"`
	Score        float64 `json:"score"`
	Details      JSONMap `json:"details,omitempty"`
	ProcessingMS int64   `json:"processing_ms,omitempty"`
}

// UpdateDetectionRequest is the payload for PATCH /detections/{id}.
// Nil fields are left unchanged; SourceRef is immutable and not updatable.
type UpdateDetectionRequest struct {
	Score        *float64 `json:"score,omitempty"`
	Details      JSONMap  `json:"details,omitempty"`
	ProcessingMS *int64   `json:"processing_ms,omitempty"`
}

// CreateAlertRequest is the payload for POST /alerts.
type CreateAlertRequest struct {
	AlertType AlertType `json:"alert_type"`
	Severity  RiskLevel `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Metadata  JSONMap   `json:"metadata,omitempty"`
}

// InitializePaymentRequest is the payload for POST /payments/initialize.
type InitializePaymentRequest struct {
	Email    string  `json:"email"`
	Amount   int64   `json:"amount"` // smallest currency unit
	Plan     Plan    `json:"plan"`
	Metadata JSONMap `json:"metadata,omitempty"`
}

// InitializePaymentResponse echoes the gateway checkout handle.
type InitializePaymentResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifyPaymentResponse reports the settled transaction and resulting plan.
type VerifyPaymentResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Plan      Plan   `json:"plan,omitempty"`
	Credits   int    `json:"credits,omitempty"`
}
