// Package analytics computes dashboard aggregates over detection and breach
// records. Reads are best-effort: a failure degrades the result instead of
// failing the dashboard, and degraded results are explicitly marked so they
// can never be mistaken for a real empty dataset.
package analytics

import (
	"context"
	"log"
	"sort"
	"time"

	"deepguard/internal/models"
	"deepguard/internal/scoring"
)

// Status marks whether an aggregate was computed from real reads.
type Status string

const (
	StatusOK       Status = "ok"
	StatusDegraded Status = "degraded"
)

// Summary is the aggregate snapshot rendered by the dashboard.
type Summary struct {
	Status         Status                   `json:"status"`
	GeneratedAt    time.Time                `json:"generated_at"`
	TotalChecks    int                      `json:"total_checks"`
	EmailChecks    int                      `json:"email_checks"`
	PhoneChecks    int                      `json:"phone_checks"`
	URLAnalyses    int                      `json:"url_analyses"`
	BreachedChecks int                      `json:"breached_checks"`
	BreachRate     float64                  `json:"breach_rate"`
	RiskHistogram  map[models.RiskLevel]int `json:"risk_histogram"`
	TopBreaches    []BreachCount            `json:"top_breaches"`
}

// BreachCount pairs a breach name with how often it appeared across checks.
type BreachCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TrendPoint is one day in a trend series.
type TrendPoint struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Detections   int    `json:"detections"`
	BreachChecks int    `json:"breach_checks"`
	Breached     int    `json:"breached"`
}

// TrendSeries is a dense daily series with the same status marker the
// summary carries, so a failed read never looks like a quiet week.
type TrendSeries struct {
	Status Status       `json:"status"`
	Days   int          `json:"days"`
	Points []TrendPoint `json:"trends"`
}

// CheckReader lists an owner's breach checks. *repository.BreachChecks
// satisfies it.
type CheckReader interface {
	List(ctx context.Context, userID uint) ([]models.BreachCheck, error)
}

// DetectionReader lists an owner's detection results. *repository.Detections
// satisfies it.
type DetectionReader interface {
	List(ctx context.Context, userID uint) ([]models.DetectionResult, error)
}

// Aggregator computes summaries and trend series for one owner's records.
type Aggregator struct {
	checks     CheckReader
	detections DetectionReader
}

// New creates an aggregator over the given readers.
func New(checks CheckReader, detections DetectionReader) *Aggregator {
	return &Aggregator{checks: checks, detections: detections}
}

// Summary computes the aggregate snapshot for an owner.
//
// The two reads are independent queries, not a transaction; a record inserted
// between them may be undercounted for one request. That skew is accepted.
// On any read failure the summary comes back zeroed with Status=degraded;
// numbers are never fabricated.
func (a *Aggregator) Summary(ctx context.Context, userID uint) Summary {
	s := Summary{
		Status:        StatusOK,
		GeneratedAt:   time.Now().UTC(),
		RiskHistogram: make(map[models.RiskLevel]int),
	}

	checks, err := a.checks.List(ctx, userID)
	if err != nil {
		log.Printf("[analytics] Breach check read failed for user %d: %v", userID, err)
		s.Status = StatusDegraded
		return s
	}

	detections, err := a.detections.List(ctx, userID)
	if err != nil {
		log.Printf("[analytics] Detection read failed for user %d: %v", userID, err)
		s.Status = StatusDegraded
		return s
	}

	breachNames := make(map[string]int)
	for _, c := range checks {
		switch c.SubjectType {
		case models.SubjectPhone:
			s.PhoneChecks++
		default:
			s.EmailChecks++
		}
		if c.IsBreached {
			s.BreachedChecks++
		}
		s.RiskHistogram[c.RiskLevel]++
		for _, b := range c.Breaches {
			breachNames[b.Name]++
		}
	}

	s.URLAnalyses = len(detections)
	for _, d := range detections {
		// Detection scores map onto the same 4-level scale for the histogram.
		s.RiskHistogram[riskForScore(d.Score)]++
	}

	s.TotalChecks = s.EmailChecks + s.PhoneChecks + s.URLAnalyses
	if s.TotalChecks > 0 {
		s.BreachRate = float64(s.BreachedChecks) / float64(s.TotalChecks) * 100
	}

	s.TopBreaches = rankBreaches(breachNames)
	return s
}

// Trends returns exactly `days` entries with consecutive calendar dates
// ending today, zero-filled for days without records. Charts assume a dense
// series; a sparse one would misalign their axes. A read failure keeps the
// series dense but marks it degraded, because an all-zero week produced by a
// broken read is not the same answer as a genuinely quiet week.
func (a *Aggregator) Trends(ctx context.Context, userID uint, days int) TrendSeries {
	if days <= 0 {
		days = 7
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	points := make([]TrendPoint, days)
	index := make(map[string]*TrendPoint, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-days+1).Format("2006-01-02")
		points[i] = TrendPoint{Date: date}
		index[date] = &points[i]
	}
	series := TrendSeries{Status: StatusOK, Days: days, Points: points}

	checks, err := a.checks.List(ctx, userID)
	if err != nil {
		log.Printf("[analytics] Trend breach read failed for user %d: %v", userID, err)
		series.Status = StatusDegraded
		return series
	}
	detections, err := a.detections.List(ctx, userID)
	if err != nil {
		log.Printf("[analytics] Trend detection read failed for user %d: %v", userID, err)
		series.Status = StatusDegraded
		return series
	}

	for _, c := range checks {
		if p, ok := index[c.CreatedAt.UTC().Format("2006-01-02")]; ok {
			p.BreachChecks++
			if c.IsBreached {
				p.Breached++
			}
		}
	}
	for _, d := range detections {
		if p, ok := index[d.CreatedAt.UTC().Format("2006-01-02")]; ok {
			p.Detections++
		}
	}

	return series
}

// rankBreaches sorts breach names by count desc, then name asc for stability.
func rankBreaches(counts map[string]int) []BreachCount {
	ranked := make([]BreachCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, BreachCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// criticalScoreThreshold promotes near-certain detections to the critical
// histogram bucket. The confidence bands themselves come from the scoring
// package; this constant only splits the high band for dashboard display.
const criticalScoreThreshold = 90

// riskForScore buckets a detection score onto the breach risk scale.
func riskForScore(score float64) models.RiskLevel {
	if score > criticalScoreThreshold {
		return models.RiskCritical
	}
	switch scoring.Band(score) {
	case models.BandHigh:
		return models.RiskHigh
	case models.BandMedium:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
