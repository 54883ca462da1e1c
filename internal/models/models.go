package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// RiskLevel is the 4-point severity scale applied to breach exposure.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ConfidenceBand is the coarse bucket summarizing a numeric detection score.
type ConfidenceBand string

const (
	BandLow    ConfidenceBand = "low"
	BandMedium ConfidenceBand = "medium"
	BandHigh   ConfidenceBand = "high"
)

// AlertType classifies a monitoring alert.
type AlertType string

const (
	AlertDetection AlertType = "detection"
	AlertThreshold AlertType = "threshold"
	AlertSystem    AlertType = "system"
	AlertSecurity  AlertType = "security"
)

// Plan tiers and their credit allotments per billing period.
type Plan string

const (
	PlanFree         Plan = "free"
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
)

// CreditsForPlan returns the API-call quota for a plan tier.
func CreditsForPlan(p Plan) int {
	switch p {
	case PlanStarter:
		return 1000
	case PlanProfessional:
		return 10000
	default:
		return 10
	}
}

// JSONMap is an opaque JSON object column (alert metadata, analysis details,
// gateway responses). Only the fields the core itself reads are validated;
// everything else passes through untouched.
type JSONMap map[string]interface{}

// Value implements driver.Valuer so gorm can persist the map as JSONB.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = JSONMap{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for JSONMap")
	}
}

// DetectionResult is one persisted analysis outcome.
//
// IsDeepfake and Confidence are derived from Score at write time by the
// scoring package; they are never accepted from callers directly.
type DetectionResult struct {
	gorm.Model
	UserID       uint           `gorm:"index;not null" json:"user_id"`
	SourceRef    string         `gorm:"not null" json:"source_ref"` // file name or URL; immutable
	Score        float64        `gorm:"not null" json:"score"`
	IsDeepfake   bool           `json:"is_deepfake"`
	Confidence   ConfidenceBand `gorm:"type:varchar(8)" json:"confidence"`
	Details      JSONMap        `gorm:"type:jsonb" json:"details"`
	ProcessingMS int64          `json:"processing_ms"`
}

// BreachData is one historical breach record returned by the breach-data
// provider. Stored as a JSONB element inside BreachCheck, not its own table.
type BreachData struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Title              string    `json:"title"`
	Domain             string    `json:"domain"`
	BreachDate         time.Time `json:"breach_date"`
	AddedDate          time.Time `json:"added_date"`
	ModifiedDate       time.Time `json:"modified_date"`
	PwnCount           int64     `json:"pwn_count"`
	Description        string    `json:"description"`
	DataClasses        []string  `json:"data_classes"`
	IsVerified         bool      `json:"is_verified"`
	IsFabricated       bool      `json:"is_fabricated"`
	IsSensitive        bool      `json:"is_sensitive"`
	IsRetired          bool      `json:"is_retired"`
	IsSpamList         bool      `json:"is_spam_list"`
	IsMalware          bool      `json:"is_malware"`
	IsSubscriptionFree bool      `json:"is_subscription_free"`
}

// BreachList is an ordered JSONB column of BreachData entries.
type BreachList []BreachData

// Value implements driver.Valuer.
func (l BreachList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *BreachList) Scan(src interface{}) error {
	if src == nil {
		*l = BreachList{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for BreachList")
	}
}

// SubjectType distinguishes email and phone breach checks.
type SubjectType string

const (
	SubjectEmail SubjectType = "email"
	SubjectPhone SubjectType = "phone"
)

// BreachCheck is the persisted aggregate outcome of one breach lookup.
//
// Invariants maintained by the breach service:
//   - IsBreached == (TotalBreaches > 0)
//   - TotalBreaches == len(Breaches)
//   - MostRecent* reflect the max-by-BreachDate element when non-empty
type BreachCheck struct {
	gorm.Model
	UserID         uint        `gorm:"index;not null" json:"user_id"`
	Subject        string      `gorm:"index;not null" json:"subject"`
	SubjectType    SubjectType `gorm:"type:varchar(8);not null" json:"subject_type"`
	IsBreached     bool        `json:"is_breached"`
	TotalBreaches  int         `json:"total_breaches"`
	RiskLevel      RiskLevel   `gorm:"type:varchar(8)" json:"risk_level"`
	Breaches       BreachList  `gorm:"type:jsonb" json:"breaches"`
	MostRecentName string      `json:"most_recent_name,omitempty"`
	MostRecentDate *time.Time  `json:"most_recent_date,omitempty"`
	DetectedAt     time.Time   `json:"detected_at"`
}

// MonitoringAlert is a derived notification tied to a triggering event.
// The reference lives in Metadata only; there is no foreign-key enforcement.
type MonitoringAlert struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	AlertType AlertType `gorm:"type:varchar(16);not null" json:"alert_type"`
	Severity  RiskLevel `gorm:"type:varchar(8);not null" json:"severity"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `json:"message"`
	Metadata  JSONMap   `gorm:"type:jsonb" json:"metadata"`
	Read      bool      `gorm:"index;default:false" json:"read"`
}

// StepStatus tracks remediation progress.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in-progress"
	StepCompleted  StepStatus = "completed"
)

// ActionType classifies how a recovery step is carried out.
type ActionType string

const (
	ActionInternal ActionType = "internal"
	ActionExternal ActionType = "external"
	ActionGuided   ActionType = "guided"
)

// RecoveryStep is an ordered remediation action derived from a breach alert.
// Steps travel inside breach responses and alert metadata as JSON values.
type RecoveryStep struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Icon          string     `json:"icon"`
	Status        StepStatus `json:"status"`
	Priority      int        `json:"priority"`
	EstimatedTime string     `json:"estimated_time"`
	ActionType    ActionType `json:"action_type"`
	ActionData    JSONMap    `json:"action_data,omitempty"`
}

// PaymentTransaction records one gateway transaction.
type PaymentTransaction struct {
	gorm.Model
	UserID          uint    `gorm:"index;not null" json:"user_id"`
	Reference       string  `gorm:"uniqueIndex:idx_transactions_reference;not null" json:"reference"`
	Email           string  `gorm:"not null" json:"email"`
	AmountKobo      int64   `gorm:"not null" json:"amount"`
	Plan            Plan    `gorm:"type:varchar(16)" json:"plan"`
	Status          string  `gorm:"default:'pending'" json:"status"` // pending, success, failed
	GatewayResponse JSONMap `gorm:"type:jsonb" json:"gateway_response,omitempty"`
}

// UserPlan holds the active subscription tier and credit quota for a user.
type UserPlan struct {
	gorm.Model
	UserID       uint       `gorm:"uniqueIndex:idx_user_plans_user;not null" json:"user_id"`
	Plan         Plan       `gorm:"type:varchar(16);default:'free'" json:"plan"`
	CreditsLimit int        `json:"credits_limit"`
	CreditsUsed  int        `json:"credits_used"`
	RenewsAt     *time.Time `json:"renews_at,omitempty"`
}

// UsageLog records one metered API action.
type UsageLog struct {
	gorm.Model
	UserID       uint   `gorm:"index;not null" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	CreditsSpent int    `gorm:"default:1" json:"credits_spent"`
	Detail       string `json:"detail,omitempty"`
}

// APIKey maps an opaque key to its owning user.
type APIKey struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	Key      string `gorm:"uniqueIndex:idx_api_keys_key;not null" json:"-"`
	Label    string `json:"label"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
